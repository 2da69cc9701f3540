package config

// ConfigError is a custom error type for invalid startup options
type ConfigError string

// Error implements the error interface
func (e ConfigError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrMissingToken          ConfigError = "discord token is required"
	ErrInvalidQueueSize      ConfigError = "queue size must be an even number of at least 2"
	ErrQueueTooLarge         ConfigError = "queue size needs more pick reactions than one message can hold"
	ErrNoChannels            ConfigError = "at least one queue channel is required"
	ErrDuplicateChannel      ConfigError = "queue channel listed twice"
	ErrInvalidRenderInterval ConfigError = "render interval must be positive"
)
