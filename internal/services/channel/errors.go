package channel

// ChannelError is a custom error type for queue channel errors
type ChannelError string

// Error implements the error interface
func (e ChannelError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionStopped   ChannelError = "channel session is stopped"
	ErrUnknownChannel   ChannelError = "channel is not a queue channel"
	ErrDuplicateChannel ChannelError = "channel registered twice"
	ErrMissingChannelID ChannelError = "channel ID cannot be empty"
	ErrInvalidCapacity  ChannelError = "capacity must be at least 2"
	ErrNilConfig        ChannelError = "config cannot be nil"
	ErrNilRandom        ChannelError = "random source cannot be nil"
	ErrNilClock         ChannelError = "clock cannot be nil"
	ErrNilUUIDGenerator ChannelError = "UUID generator cannot be nil"
	ErrNilMessenger     ChannelError = "messenger cannot be nil"
	ErrNilReporter      ChannelError = "reporter cannot be nil"
	ErrNilMatchService  ChannelError = "match service cannot be nil"
	ErrNilMessaging     ChannelError = "messaging service cannot be nil"
	ErrInvalidInterval  ChannelError = "render interval must be positive"
)
