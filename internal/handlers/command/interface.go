package command

import (
	"context"

	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/services/messaging"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_command.go github.com/KirkDiggler/teampicker/internal/handlers/command Session,Sessions

// Handler is one chat command
type Handler interface {
	// GetName returns the word that invokes the command
	GetName() string

	// GetDescription returns the one-line help text
	GetDescription() string

	// GetUsage returns the argument synopsis, empty when the command takes none
	GetUsage() string

	// Handle runs the command
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// Session is the part of a queue channel session commands act on
type Session interface {
	EnqueuePlayerByCommand(ctx context.Context, player models.Player) (bool, error)
	DequeuePlayerByCommand(ctx context.Context, player models.Player) (bool, error)
	Status(ctx context.Context) (*messaging.StatusView, error)
}

// Sessions finds the session of a queue channel
type Sessions interface {
	Lookup(channelID string) (Session, error)
}
