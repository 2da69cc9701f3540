package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/teampicker/internal/services/match"
	"github.com/KirkDiggler/teampicker/internal/services/messaging"
)

const notQueueChannel = "This channel doesn't run a queue."

// QueueCommand joins the queue of the channel it is sent in
type QueueCommand struct {
	BaseCommand
	sessions Sessions
}

// NewQueueCommand creates the queue command
func NewQueueCommand(sessions Sessions) *QueueCommand {
	return &QueueCommand{
		BaseCommand: BaseCommand{Name: "queue", Description: "Join this channel's queue"},
		sessions:    sessions,
	}
}

// Handle adds the sender to the queue
func (c *QueueCommand) Handle(ctx context.Context, req *Request) (*Response, error) {
	session, err := c.sessions.Lookup(req.ChannelID)
	if err != nil {
		return &Response{Body: notQueueChannel}, nil
	}

	changed, err := session.EnqueuePlayerByCommand(ctx, req.Player)
	if err != nil {
		return nil, err
	}

	if !changed {
		return &Response{Body: fmt.Sprintf("%s, you can't join right now: you're already queued, the queue is full, or a draft is running.", req.Player.Mention())}, nil
	}

	return &Response{Body: fmt.Sprintf("%s joined the queue.", req.Player.Mention())}, nil
}

// LeaveCommand leaves the queue of the channel it is sent in
type LeaveCommand struct {
	BaseCommand
	sessions Sessions
}

// NewLeaveCommand creates the leave command
func NewLeaveCommand(sessions Sessions) *LeaveCommand {
	return &LeaveCommand{
		BaseCommand: BaseCommand{Name: "leave", Description: "Leave this channel's queue"},
		sessions:    sessions,
	}
}

// Handle removes the sender from the queue
func (c *LeaveCommand) Handle(ctx context.Context, req *Request) (*Response, error) {
	session, err := c.sessions.Lookup(req.ChannelID)
	if err != nil {
		return &Response{Body: notQueueChannel}, nil
	}

	changed, err := session.DequeuePlayerByCommand(ctx, req.Player)
	if err != nil {
		return nil, err
	}

	if !changed {
		return &Response{Body: fmt.Sprintf("%s, you're not in the queue.", req.Player.Mention())}, nil
	}

	return &Response{Body: fmt.Sprintf("%s left the queue.", req.Player.Mention())}, nil
}

// StatusCommand shows the channel's queue or draft
type StatusCommand struct {
	BaseCommand
	sessions  Sessions
	messaging messaging.Service
}

// NewStatusCommand creates the status command
func NewStatusCommand(sessions Sessions, messagingService messaging.Service) *StatusCommand {
	return &StatusCommand{
		BaseCommand: BaseCommand{Name: "status", Description: "Show the queue or the draft in progress"},
		sessions:    sessions,
		messaging:   messagingService,
	}
}

// Handle renders the current status
func (c *StatusCommand) Handle(ctx context.Context, req *Request) (*Response, error) {
	session, err := c.sessions.Lookup(req.ChannelID)
	if err != nil {
		return &Response{Body: notQueueChannel}, nil
	}

	view, err := session.Status(ctx)
	if err != nil {
		return nil, err
	}

	out, err := c.messaging.GetStatusMessage(ctx, &messaging.GetStatusMessageInput{View: view})
	if err != nil {
		return nil, err
	}

	return &Response{Body: out.Body}, nil
}

// MatchesCommand lists matches whose channels still exist
type MatchesCommand struct {
	BaseCommand
	matches   match.Service
	messaging messaging.Service
}

// NewMatchesCommand creates the matches command
func NewMatchesCommand(matches match.Service, messagingService messaging.Service) *MatchesCommand {
	return &MatchesCommand{
		BaseCommand: BaseCommand{Name: "matches", Description: "List running matches"},
		matches:     matches,
		messaging:   messagingService,
	}
}

// Handle lists the held matches of every queue channel
func (c *MatchesCommand) Handle(ctx context.Context, req *Request) (*Response, error) {
	listed, err := c.matches.ListMatches(ctx, &match.ListMatchesInput{})
	if err != nil {
		return nil, err
	}

	out, err := c.messaging.GetMatchListMessage(ctx, &messaging.GetMatchListMessageInput{Matches: listed.Matches})
	if err != nil {
		return nil, err
	}

	return &Response{Body: out.Body}, nil
}

// EndCommand tears down a match's roles and channels
type EndCommand struct {
	BaseCommand
	matches match.Service
	prefix  string
}

// NewEndCommand creates the end command
func NewEndCommand(matches match.Service, prefix string) *EndCommand {
	return &EndCommand{
		BaseCommand: BaseCommand{
			Name:        "end",
			Description: fmt.Sprintf("Delete a match's roles and voice channels (see %smatches)", prefix),
			Usage:       "<match id>",
		},
		matches: matches,
		prefix:  prefix,
	}
}

// Handle releases the referenced match
func (c *EndCommand) Handle(ctx context.Context, req *Request) (*Response, error) {
	if len(req.Args) != 1 {
		return &Response{Body: fmt.Sprintf("Usage: `%s%s %s`", c.prefix, c.Name, c.Usage)}, nil
	}
	ref := req.Args[0]

	out, err := c.matches.Release(ctx, &match.ReleaseInput{MatchID: ref})
	switch {
	case errors.Is(err, match.ErrMatchBusy):
		return &Response{Body: fmt.Sprintf("Match `%s` is still being set up or torn down. Try again shortly.", ref)}, nil
	case errors.Is(err, match.ErrAmbiguousMatch):
		return &Response{Body: fmt.Sprintf("`%s` matches more than one match. Use more of the ID.", ref)}, nil
	case err != nil && out != nil && out.Match != nil:
		return &Response{Body: fmt.Sprintf("Match `%s` was only partly cleaned up. Try again in a moment.", out.Match.ShortID())}, nil
	case err != nil:
		return nil, err
	case out.Match == nil:
		return &Response{Body: fmt.Sprintf("No running match matches `%s`.", ref)}, nil
	}

	return &Response{Body: fmt.Sprintf("Match `%s` has ended.", out.Match.ShortID())}, nil
}

// HelpCommand lists the registered commands
type HelpCommand struct {
	BaseCommand
	dispatcher *Dispatcher
}

// NewHelpCommand creates the help command
func NewHelpCommand(dispatcher *Dispatcher) *HelpCommand {
	return &HelpCommand{
		BaseCommand: BaseCommand{Name: "help", Description: "List commands"},
		dispatcher:  dispatcher,
	}
}

// Handle renders one line per registered command
func (c *HelpCommand) Handle(ctx context.Context, req *Request) (*Response, error) {
	var b strings.Builder
	b.WriteString("**Commands**")
	for _, h := range c.dispatcher.Handlers() {
		b.WriteString("\n`")
		b.WriteString(c.dispatcher.Prefix())
		b.WriteString(h.GetName())
		if usage := h.GetUsage(); usage != "" {
			b.WriteString(" ")
			b.WriteString(usage)
		}
		b.WriteString("` ")
		b.WriteString(h.GetDescription())
	}

	return &Response{Body: b.String()}, nil
}
