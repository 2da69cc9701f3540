package match

// MatchError is a custom error type for match lifecycle errors
type MatchError string

// Error implements the error interface
func (e MatchError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrMatchNotFound  MatchError = "match not found"
	ErrMatchBusy      MatchError = "match is already being provisioned or released"
	ErrAmbiguousMatch MatchError = "match reference matches more than one match"
	ErrInvalidMatch   MatchError = "match must have an ID and two non-empty teams"
	ErrNilConfig      MatchError = "config cannot be nil"
	ErrNilResources   MatchError = "resources port cannot be nil"
	ErrNilMessenger   MatchError = "messenger cannot be nil"
	ErrNilReporter    MatchError = "reporter cannot be nil"
	ErrNilMatchRepo   MatchError = "match repository cannot be nil"
	ErrNilMessaging   MatchError = "messaging service cannot be nil"
)
