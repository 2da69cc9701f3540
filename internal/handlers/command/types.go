package command

import (
	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/services/match"
	"github.com/KirkDiggler/teampicker/internal/services/messaging"
	"go.uber.org/zap"
)

// DefaultPrefix marks a chat message as a command
const DefaultPrefix = "!"

// Config holds configuration for the dispatcher
type Config struct {
	// Prefix marks a message as a command. Defaults to DefaultPrefix.
	Prefix string

	// Enabled lists the commands to register, in help order. Empty
	// registers every built-in command.
	Enabled []string

	Sessions  Sessions
	Matches   match.Service
	Messaging messaging.Service
	Logger    *zap.Logger
}

// Request is one invocation of a command
type Request struct {
	ChannelID string
	Player    models.Player
	Args      []string
}

// Response is the reply to a command
type Response struct {
	Body string
}

// DispatchInput contains a chat message that may hold a command
type DispatchInput struct {
	ChannelID string
	Player    models.Player
	Content   string
}

// DispatchOutput contains the result of dispatching a message
type DispatchOutput struct {
	// Handled is false when the message was not a registered command
	Handled bool

	Response *Response
}

// BaseCommand provides the descriptive half of Handler
type BaseCommand struct {
	Name        string
	Description string
	Usage       string
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetDescription returns the help text
func (c *BaseCommand) GetDescription() string {
	return c.Description
}

// GetUsage returns the argument synopsis
func (c *BaseCommand) GetUsage() string {
	return c.Usage
}
