package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetStatusMessage renders the body of a channel's status message.
	// The same view always renders the same body.
	GetStatusMessage(ctx context.Context, input *GetStatusMessageInput) (*GetStatusMessageOutput, error)

	// GetTeamMessage renders the private roster sent to a team's members
	GetTeamMessage(ctx context.Context, input *GetTeamMessageInput) (*GetTeamMessageOutput, error)

	// GetMatchListMessage renders the matches whose resources are still held
	GetMatchListMessage(ctx context.Context, input *GetMatchListMessageInput) (*GetMatchListMessageOutput, error)
}
