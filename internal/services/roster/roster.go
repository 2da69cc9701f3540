package roster

import "github.com/KirkDiggler/teampicker/internal/models"

// Roster is the ordered set of players waiting in one channel's queue.
// It is owned by a single session goroutine and is not safe for
// concurrent use.
type Roster struct {
	capacity int
	order    []string
	players  map[string]models.Player
}

// New creates an empty roster holding at most capacity players
func New(capacity int) *Roster {
	return &Roster{
		capacity: capacity,
		order:    make([]string, 0, capacity),
		players:  make(map[string]models.Player, capacity),
	}
}

// Enqueue appends the player in arrival order. It reports false when the
// player is already queued or the roster is full.
func (r *Roster) Enqueue(player models.Player) bool {
	if _, ok := r.players[player.ID]; ok {
		return false
	}
	if len(r.order) >= r.capacity {
		return false
	}

	r.order = append(r.order, player.ID)
	r.players[player.ID] = player
	return true
}

// Dequeue removes the player. It reports false when the player was not queued.
func (r *Roster) Dequeue(playerID string) bool {
	if _, ok := r.players[playerID]; !ok {
		return false
	}

	delete(r.players, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Size returns the number of queued players
func (r *Roster) Size() int {
	return len(r.order)
}

// Capacity returns the configured queue size
func (r *Roster) Capacity() int {
	return r.capacity
}

// Full reports whether the roster has reached capacity
func (r *Roster) Full() bool {
	return len(r.order) >= r.capacity
}

// Contains reports whether the player is queued
func (r *Roster) Contains(playerID string) bool {
	_, ok := r.players[playerID]
	return ok
}

// Snapshot returns a copy of the queued players in arrival order
func (r *Roster) Snapshot() []models.Player {
	snapshot := make([]models.Player, 0, len(r.order))
	for _, id := range r.order {
		snapshot = append(snapshot, r.players[id])
	}
	return snapshot
}
