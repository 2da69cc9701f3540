package channel

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry owns the session of every configured queue channel. Sessions
// are fixed at construction; events for any other channel are rejected.
type Registry struct {
	sessions map[string]*Session
	logger   *zap.Logger
}

// NewRegistry creates a registry for the given sessions
func NewRegistry(cfg *RegistryConfig) (*Registry, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sessions := make(map[string]*Session, len(cfg.Sessions))
	for _, session := range cfg.Sessions {
		if _, exists := sessions[session.ChannelID()]; exists {
			return nil, ErrDuplicateChannel
		}
		sessions[session.ChannelID()] = session
	}

	return &Registry{
		sessions: sessions,
		logger:   logger.Named("registry"),
	}, nil
}

// Start starts every session
func (r *Registry) Start(ctx context.Context) {
	for _, channelID := range r.ChannelIDs() {
		r.sessions[channelID].Start(ctx)
	}
	r.logger.Info("queue channels started", zap.Int("channels", len(r.sessions)))
}

// Stop stops every session concurrently and waits for them
func (r *Registry) Stop() {
	var wg sync.WaitGroup
	for _, session := range r.sessions {
		session := session
		wg.Add(1)
		go func() {
			defer wg.Done()
			session.Stop()
		}()
	}
	wg.Wait()
	r.logger.Info("queue channels stopped")
}

// Session returns the session for a channel
func (r *Registry) Session(channelID string) (*Session, error) {
	session, ok := r.sessions[channelID]
	if !ok {
		return nil, ErrUnknownChannel
	}
	return session, nil
}

// IsStatusMessage reports whether messageID is the status message of a
// queue channel
func (r *Registry) IsStatusMessage(channelID, messageID string) bool {
	session, ok := r.sessions[channelID]
	if !ok || messageID == "" {
		return false
	}
	return session.MessageID() == messageID
}

// RouteReaction hands a reaction to the session of its channel
func (r *Registry) RouteReaction(ctx context.Context, input *ReactionInput) error {
	session, err := r.Session(input.ChannelID)
	if err != nil {
		return err
	}
	return session.HandleReaction(ctx, input)
}

// ChannelIDs returns the configured queue channels in sorted order
func (r *Registry) ChannelIDs() []string {
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
