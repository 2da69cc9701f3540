package command

import "github.com/KirkDiggler/teampicker/internal/services/channel"

// RegistrySessions looks sessions up in a channel registry
type RegistrySessions struct {
	Registry *channel.Registry
}

// Lookup returns the session of a queue channel
func (r *RegistrySessions) Lookup(channelID string) (Session, error) {
	session, err := r.Registry.Session(channelID)
	if err != nil {
		return nil, err
	}
	return session, nil
}
