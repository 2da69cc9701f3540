package channel

import (
	"fmt"

	"github.com/KirkDiggler/teampicker/internal/common/clock"
	"github.com/KirkDiggler/teampicker/internal/common/uuid"
	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/random"
	"github.com/KirkDiggler/teampicker/internal/services/draft"
	"github.com/KirkDiggler/teampicker/internal/services/messaging"
	"github.com/KirkDiggler/teampicker/internal/services/roster"
)

// Machine holds one channel's queue and draft and decides what every
// incoming signal does to them. It performs no I/O: callers execute the
// returned effects. A Machine is not safe for concurrent use.
type Machine struct {
	channelID string
	guildID   string
	capacity  int
	alphabet  []string
	random    random.Source
	clock     clock.Clock
	uuid      uuid.UUID

	state  State
	roster *roster.Roster
	draft  *draft.Draft

	// provisioning is the ID of the match whose resources are being created
	provisioning string
	lastMatch    *models.Match
}

// NewMachine creates an idle machine with an empty roster
func NewMachine(cfg *MachineConfig) (*Machine, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.ChannelID == "" {
		return nil, ErrMissingChannelID
	}

	if cfg.Capacity < 2 {
		return nil, ErrInvalidCapacity
	}

	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUID == nil {
		return nil, ErrNilUUIDGenerator
	}

	alphabet := cfg.Alphabet
	if len(alphabet) == 0 {
		alphabet = draft.DefaultAlphabet
	}

	return &Machine{
		channelID: cfg.ChannelID,
		guildID:   cfg.GuildID,
		capacity:  cfg.Capacity,
		alphabet:  alphabet,
		random:    cfg.Random,
		clock:     cfg.Clock,
		uuid:      cfg.UUID,
		state:     StateIdle,
		roster:    roster.New(cfg.Capacity),
	}, nil
}

// Apply processes one event and returns the effects the caller must carry
// out. Signals that do not apply to the current state return no effects.
func (m *Machine) Apply(event Event) []Effect {
	switch e := event.(type) {
	case QueueSignal:
		return m.onQueue(e)
	case CancelSignal:
		return m.onCancel(e)
	case PickSignal:
		return m.onPick(e)
	case ProvisionFinished:
		return m.onProvisionFinished(e)
	default:
		return nil
	}
}

func (m *Machine) onQueue(e QueueSignal) []Effect {
	if m.state == StatePicking {
		return nil
	}

	if !m.roster.Enqueue(e.Player) {
		return nil
	}

	m.state = StateQueueing
	effects := []Effect{Render{}}

	if m.roster.Full() && m.provisioning == "" {
		effects = append(effects, m.startDraft()...)
	}

	return effects
}

func (m *Machine) onCancel(e CancelSignal) []Effect {
	if m.state != StateQueueing {
		return nil
	}

	if !m.roster.Dequeue(e.Player.ID) {
		return nil
	}

	if m.roster.Size() == 0 {
		m.state = StateIdle
	}

	return []Effect{Render{}}
}

func (m *Machine) onPick(e PickSignal) []Effect {
	if m.state != StatePicking || m.draft == nil {
		return nil
	}

	if _, err := m.draft.Pick(e.Actor.ID, e.Token); err != nil {
		// Wrong turn, unknown token or a stale reaction: nothing changes
		return nil
	}

	if !m.draft.IsComplete() {
		return []Effect{Render{}}
	}

	return m.completeDraft()
}

func (m *Machine) onProvisionFinished(e ProvisionFinished) []Effect {
	if m.provisioning == "" || m.provisioning != e.MatchID {
		return nil
	}
	m.provisioning = ""

	effects := []Effect{Render{}}
	if m.state == StateQueueing && m.roster.Full() {
		effects = append(effects, m.startDraft()...)
	}

	return effects
}

// startDraft moves a full roster into picking. A draft that needs no picks
// completes on the spot.
func (m *Machine) startDraft() []Effect {
	d, err := draft.New(&draft.Config{
		Size:     m.capacity,
		Alphabet: m.alphabet,
		Random:   m.random,
	})
	if err != nil {
		return []Effect{Report{Err: fmt.Errorf("failed to create draft: %w", err)}}
	}

	if err := d.Start(m.roster.Snapshot()); err != nil {
		return []Effect{Report{Err: fmt.Errorf("failed to start draft: %w", err)}}
	}

	m.draft = d
	m.state = StatePicking

	if d.IsComplete() {
		return m.completeDraft()
	}

	return []Effect{Render{}}
}

// completeDraft emits the match and returns the channel to idle with a
// fresh roster
func (m *Machine) completeDraft() []Effect {
	match := &models.Match{
		ID:        m.uuid.NewUUID(),
		ChannelID: m.channelID,
		GuildID:   m.guildID,
		TeamA:     m.draft.TeamA(),
		TeamB:     m.draft.TeamB(),
		CreatedAt: m.clock.Now(),
	}

	m.lastMatch = match
	m.provisioning = match.ID
	m.draft = nil
	m.roster = roster.New(m.capacity)
	m.state = StateIdle

	return []Effect{Render{}, StartMatch{Match: cloneMatch(match)}}
}

// State returns the current lifecycle state
func (m *Machine) State() State {
	return m.state
}

// Provisioning returns the ID of the match being provisioned, if any
func (m *Machine) Provisioning() string {
	return m.provisioning
}

// Roster returns the queued players in arrival order
func (m *Machine) Roster() []models.Player {
	return m.roster.Snapshot()
}

// Draft returns the draft in progress, nil outside picking
func (m *Machine) Draft() *draft.Draft {
	return m.draft
}

// LastMatch returns a copy of the most recent match drafted here
func (m *Machine) LastMatch() *models.Match {
	if m.lastMatch == nil {
		return nil
	}
	return cloneMatch(m.lastMatch)
}

// Affordances returns the reactions the status message should carry in the
// current state
func (m *Machine) Affordances() []string {
	if m.state != StatePicking || m.draft == nil {
		return []string{JoinEmoji, LeaveEmoji}
	}

	remaining := m.draft.Remaining()
	tokens := make([]string, len(remaining))
	for i, c := range remaining {
		tokens[i] = c.Token
	}
	return tokens
}

// View builds everything the status message shows
func (m *Machine) View() *messaging.StatusView {
	view := &messaging.StatusView{
		Capacity:     m.roster.Capacity(),
		Queue:        m.roster.Snapshot(),
		Provisioning: m.provisioning != "",
		LastMatch:    m.LastMatch(),
		JoinEmoji:    JoinEmoji,
		LeaveEmoji:   LeaveEmoji,
	}

	switch m.state {
	case StateQueueing:
		view.Phase = messaging.PhaseQueueing
	case StatePicking:
		view.Phase = messaging.PhasePicking
		view.CaptainA, view.CaptainB = m.draft.Captains()
		view.TeamA = m.draft.TeamA()
		view.TeamB = m.draft.TeamB()
		view.Picker = m.draft.CurrentPicker()
		view.Candidates = m.draft.Remaining()
	default:
		view.Phase = messaging.PhaseIdle
	}

	return view
}

func cloneMatch(m *models.Match) *models.Match {
	c := *m
	c.TeamA = append([]models.Player(nil), m.TeamA...)
	c.TeamB = append([]models.Player(nil), m.TeamB...)
	return &c
}
