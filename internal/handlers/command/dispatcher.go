package command

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Dispatcher routes chat commands to the handlers registered at startup
type Dispatcher struct {
	prefix   string
	handlers map[string]Handler
	order    []Handler
	logger   *zap.Logger
}

// NewDispatcher builds the registration table from the built-in commands
func NewDispatcher(cfg *Config) (*Dispatcher, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Sessions == nil {
		return nil, ErrNilSessions
	}

	if cfg.Matches == nil {
		return nil, ErrNilMatchService
	}

	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	d := &Dispatcher{
		prefix:   prefix,
		handlers: make(map[string]Handler),
		logger:   logger.Named("command"),
	}

	builtins := []Handler{
		NewQueueCommand(cfg.Sessions),
		NewLeaveCommand(cfg.Sessions),
		NewStatusCommand(cfg.Sessions, cfg.Messaging),
		NewMatchesCommand(cfg.Matches, cfg.Messaging),
		NewEndCommand(cfg.Matches, prefix),
		NewHelpCommand(d),
	}

	available := make(map[string]Handler, len(builtins))
	for _, h := range builtins {
		available[h.GetName()] = h
	}

	enabled := cfg.Enabled
	if len(enabled) == 0 {
		for _, h := range builtins {
			enabled = append(enabled, h.GetName())
		}
	}

	for _, name := range enabled {
		h, ok := available[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		}
		if err := d.Register(h); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Register adds a handler to the table
func (d *Dispatcher) Register(h Handler) error {
	name := strings.ToLower(h.GetName())
	if _, exists := d.handlers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}

	d.handlers[name] = h
	d.order = append(d.order, h)
	return nil
}

// Handlers returns the registered handlers in registration order
func (d *Dispatcher) Handlers() []Handler {
	return append([]Handler(nil), d.order...)
}

// Prefix returns the command prefix
func (d *Dispatcher) Prefix() string {
	return d.prefix
}

// Dispatch runs the command in a chat message. Messages without the
// prefix or naming an unregistered command are not handled.
func (d *Dispatcher) Dispatch(ctx context.Context, input *DispatchInput) (*DispatchOutput, error) {
	if input == nil {
		return &DispatchOutput{}, nil
	}

	content := strings.TrimSpace(input.Content)
	if !strings.HasPrefix(content, d.prefix) {
		return &DispatchOutput{}, nil
	}

	fields := strings.Fields(strings.TrimPrefix(content, d.prefix))
	if len(fields) == 0 {
		return &DispatchOutput{}, nil
	}

	h, ok := d.handlers[strings.ToLower(fields[0])]
	if !ok {
		return &DispatchOutput{}, nil
	}

	response, err := d.run(ctx, h, &Request{
		ChannelID: input.ChannelID,
		Player:    input.Player,
		Args:      fields[1:],
	})
	if err != nil {
		return nil, err
	}

	return &DispatchOutput{Handled: true, Response: response}, nil
}

// Run invokes a command by name, for callers that parse arguments themselves
func (d *Dispatcher) Run(ctx context.Context, name string, req *Request) (*Response, error) {
	h, ok := d.handlers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return d.run(ctx, h, req)
}

func (d *Dispatcher) run(ctx context.Context, h Handler, req *Request) (*Response, error) {
	d.logger.Debug("running command",
		zap.String("command", h.GetName()),
		zap.String("channel_id", req.ChannelID),
		zap.String("user_id", req.Player.ID))

	response, err := h.Handle(ctx, req)
	if err != nil {
		d.logger.Error("command failed", zap.String("command", h.GetName()), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", h.GetName(), err)
	}

	return response, nil
}
