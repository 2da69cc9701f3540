package models

// Player represents a Discord user taking part in the queue or a match
type Player struct {
	// ID is the Discord user ID of the player
	ID string

	// Name is the display name of the player
	Name string
}

// Mention returns the Discord mention markup for the player
func (p Player) Mention() string {
	return "<@" + p.ID + ">"
}
