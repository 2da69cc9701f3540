package command

// CommandError is a custom error type for command dispatch errors
type CommandError string

// Error implements the error interface
func (e CommandError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig       CommandError = "config cannot be nil"
	ErrNilSessions     CommandError = "sessions cannot be nil"
	ErrNilMatchService CommandError = "match service cannot be nil"
	ErrNilMessaging    CommandError = "messaging service cannot be nil"
	ErrUnknownCommand  CommandError = "unknown command"
	ErrDuplicate       CommandError = "command registered twice"
)
