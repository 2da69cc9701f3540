package channel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/teampicker/internal/common/clock"
	"github.com/KirkDiggler/teampicker/internal/models"
	"github.com/KirkDiggler/teampicker/internal/platform"
	"github.com/KirkDiggler/teampicker/internal/services/match"
	"github.com/KirkDiggler/teampicker/internal/services/messaging"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const inboxSize = 64

type message interface{ isMessage() }

type eventMessage struct {
	event Event
	reply chan bool
}

type reactionMessage struct {
	input *ReactionInput
}

type statusMessage struct {
	reply chan *messaging.StatusView
}

func (eventMessage) isMessage()    {}
func (reactionMessage) isMessage() {}
func (statusMessage) isMessage()   {}

// Session runs one queue channel. A single goroutine consumes the inbox,
// so events for the channel are applied strictly in arrival order.
// Provisioning runs in the background and reports back through the inbox.
type Session struct {
	channelID string
	machine   *Machine
	clock     clock.Clock
	interval  time.Duration
	messenger platform.Messenger
	reporter  platform.Reporter
	matches   match.Service
	messaging messaging.Service
	logger    *zap.Logger

	inbox     chan message
	stopped   chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	workers   sync.WaitGroup

	// Owned by the loop goroutine
	lastBody string

	mu        sync.RWMutex
	messageID string
}

// NewSession creates a session for one queue channel. Call Start to begin
// processing.
func NewSession(cfg *SessionConfig) (*Session, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RenderInterval <= 0 {
		return nil, ErrInvalidInterval
	}

	if cfg.Messenger == nil {
		return nil, ErrNilMessenger
	}

	if cfg.Reporter == nil {
		return nil, ErrNilReporter
	}

	if cfg.Matches == nil {
		return nil, ErrNilMatchService
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	machine, err := NewMachine(cfg.Machine)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		channelID: cfg.Machine.ChannelID,
		machine:   machine,
		clock:     cfg.Machine.Clock,
		interval:  cfg.RenderInterval,
		messenger: cfg.Messenger,
		reporter:  cfg.Reporter,
		matches:   cfg.Matches,
		messaging: cfg.Messaging,
		logger:    logger.Named("channel").With(zap.String("channel_id", cfg.Machine.ChannelID)),
		inbox:     make(chan message, inboxSize),
		stopped:   make(chan struct{}),
	}, nil
}

// ChannelID returns the queue channel this session runs
func (s *Session) ChannelID() string {
	return s.channelID
}

// MessageID returns the ID of the status message, empty until it is first sent
func (s *Session) MessageID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.messageID
}

func (s *Session) setMessageID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageID = id
}

// Start renders the status message and begins processing events until
// Stop is called or ctx is cancelled
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		loopCtx, cancel := context.WithCancel(ctx)
		s.cancel = cancel
		go s.loop(loopCtx, context.WithoutCancel(ctx))
	})
}

// Stop ends the event loop and the render ticker, then waits for any
// in-flight provisioning to finish
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		started := false
		s.startOnce.Do(func() {})
		if s.cancel != nil {
			started = true
			s.cancel()
		}
		if started {
			<-s.stopped
		} else {
			close(s.stopped)
		}
	})
	s.workers.Wait()
}

func (s *Session) loop(ctx, workCtx context.Context) {
	defer close(s.stopped)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.render(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("session stopped")
			return

		case <-ticker.C:
			s.render(ctx)

		case msg := <-s.inbox:
			switch m := msg.(type) {
			case eventMessage:
				applied := s.apply(ctx, workCtx, m.event)
				if m.reply != nil {
					m.reply <- applied
				}

			case reactionMessage:
				event, ok := s.reactionEvent(m.input)
				if !ok {
					continue
				}
				s.apply(ctx, workCtx, event)

			case statusMessage:
				m.reply <- s.machine.View()
			}
		}
	}
}

// reactionEvent maps a reaction on the status message to a machine event
func (s *Session) reactionEvent(input *ReactionInput) (Event, bool) {
	if input == nil || input.MessageID == "" || input.MessageID != s.MessageID() {
		return nil, false
	}

	switch input.Emoji {
	case JoinEmoji:
		return QueueSignal{Player: input.Player}, true
	case LeaveEmoji:
		return CancelSignal{Player: input.Player}, true
	default:
		return PickSignal{Actor: input.Player, Token: input.Emoji}, true
	}
}

// apply runs one event through the machine and executes its effects.
// Reports whether the event changed anything.
func (s *Session) apply(ctx, workCtx context.Context, event Event) bool {
	effects := s.machine.Apply(event)
	if len(effects) == 0 {
		s.logger.Debug("signal ignored", zap.String("event", fmt.Sprintf("%T", event)))
		return false
	}

	render := false
	for _, effect := range effects {
		switch e := effect.(type) {
		case Render:
			render = true
		case StartMatch:
			s.startMatch(workCtx, e.Match)
		case Report:
			s.report(ctx, e.Err)
		}
	}

	if render {
		s.render(ctx)
	}

	return true
}

// startMatch provisions and announces a match in the background. The
// machine holds back the next draft until ProvisionFinished arrives.
func (s *Session) startMatch(ctx context.Context, m *models.Match) {
	log := s.logger.With(zap.String("match_id", m.ID))
	log.Info("match drafted",
		zap.Int("team_a", len(m.TeamA)), zap.Int("team_b", len(m.TeamB)))

	s.workers.Add(1)
	go func() {
		defer s.workers.Done()

		_, err := s.matches.Provision(ctx, &match.ProvisionInput{Match: m})
		if err != nil {
			log.Error("failed to provision match", zap.Error(err))
		}

		s.deliver(eventMessage{event: ProvisionFinished{MatchID: m.ID, Err: err}})

		out, err := s.matches.NotifyTeams(ctx, &match.NotifyTeamsInput{Match: m})
		if err != nil {
			log.Warn("failed to notify teams", zap.Error(err))
			return
		}
		if out.Failed > 0 {
			log.Warn("some players did not receive their team",
				zap.Int("delivered", out.Delivered), zap.Int("failed", out.Failed))
		}
	}()
}

// deliver queues a message from a background worker, dropping it once the
// session has stopped
func (s *Session) deliver(msg message) {
	select {
	case s.inbox <- msg:
	case <-s.stopped:
	}
}

func (s *Session) report(ctx context.Context, err error) {
	s.logger.Error("channel error", zap.Error(err))
	s.reporter.Report(ctx, fmt.Sprintf("Queue channel <#%s>: %v", s.channelID, err))
}

// render brings the status message and its reactions in line with the
// machine. A message deleted by someone else is sent again.
func (s *Session) render(ctx context.Context) {
	out, err := s.messaging.GetStatusMessage(ctx, &messaging.GetStatusMessageInput{View: s.machine.View()})
	if err != nil {
		s.logger.Error("failed to render status", zap.Error(err))
		return
	}

	for attempt := 0; attempt < 2; attempt++ {
		if err := s.publish(ctx, out.Body); err != nil {
			s.logger.Warn("failed to publish status message", zap.Error(err))
			return
		}

		err := s.reconcile(ctx, s.machine.Affordances())
		if err == nil {
			return
		}
		if !platform.IsNotFound(err) {
			s.logger.Warn("failed to reconcile reactions", zap.Error(err))
			return
		}

		s.setMessageID("")
		s.lastBody = ""
	}
}

func (s *Session) publish(ctx context.Context, body string) error {
	if messageID := s.MessageID(); messageID != "" {
		if body == s.lastBody {
			return nil
		}

		err := s.messenger.EditMessage(ctx, s.channelID, messageID, body)
		if err == nil {
			s.lastBody = body
			return nil
		}
		if !platform.IsNotFound(err) {
			return err
		}
		s.logger.Info("status message was deleted, sending a new one")
	}

	messageID, err := s.messenger.SendMessage(ctx, s.channelID, body)
	if err != nil {
		s.setMessageID("")
		return err
	}

	s.setMessageID(messageID)
	s.lastBody = body
	return nil
}

// reconcile removes the bot's reactions that are not offered in the
// current state and adds the missing ones, in display order
func (s *Session) reconcile(ctx context.Context, want []string) error {
	messageID := s.MessageID()

	have, err := s.messenger.OwnReactions(ctx, s.channelID, messageID)
	if err != nil {
		return err
	}

	wanted := make(map[string]bool, len(want))
	for _, emoji := range want {
		wanted[emoji] = true
	}

	present := make(map[string]bool, len(have))
	var errs error
	for _, emoji := range have {
		if wanted[emoji] {
			present[emoji] = true
			continue
		}
		if err := s.messenger.RemoveOwnReaction(ctx, s.channelID, messageID, emoji); err != nil && !platform.IsNotFound(err) {
			errs = multierr.Append(errs, fmt.Errorf("failed to remove %s: %w", emoji, err))
		}
	}

	for _, emoji := range want {
		if present[emoji] {
			continue
		}
		if err := s.messenger.AddReaction(ctx, s.channelID, messageID, emoji); err != nil {
			if platform.IsNotFound(err) {
				return err
			}
			errs = multierr.Append(errs, fmt.Errorf("failed to add %s: %w", emoji, err))
		}
	}

	return errs
}

// post queues msg for the loop
func (s *Session) post(ctx context.Context, msg message) error {
	select {
	case s.inbox <- msg:
		return nil
	case <-s.stopped:
		return ErrSessionStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) signal(ctx context.Context, event Event) (bool, error) {
	reply := make(chan bool, 1)
	if err := s.post(ctx, eventMessage{event: event, reply: reply}); err != nil {
		return false, err
	}

	select {
	case applied := <-reply:
		return applied, nil
	case <-s.stopped:
		return false, ErrSessionStopped
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// HandleReaction queues a reaction placed on a message in this channel.
// Reactions on anything but the status message are ignored.
func (s *Session) HandleReaction(ctx context.Context, input *ReactionInput) error {
	return s.post(ctx, reactionMessage{input: input})
}

// EnqueuePlayerByCommand adds a player as if they had reacted to join.
// Reports whether the roster changed.
func (s *Session) EnqueuePlayerByCommand(ctx context.Context, player models.Player) (bool, error) {
	return s.signal(ctx, QueueSignal{Player: player})
}

// DequeuePlayerByCommand removes a player as if they had reacted to leave.
// Reports whether the roster changed.
func (s *Session) DequeuePlayerByCommand(ctx context.Context, player models.Player) (bool, error) {
	return s.signal(ctx, CancelSignal{Player: player})
}

// Status returns a snapshot of what the status message shows
func (s *Session) Status(ctx context.Context) (*messaging.StatusView, error) {
	reply := make(chan *messaging.StatusView, 1)
	if err := s.post(ctx, statusMessage{reply: reply}); err != nil {
		return nil, err
	}

	select {
	case view := <-reply:
		return view, nil
	case <-s.stopped:
		return nil, ErrSessionStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
