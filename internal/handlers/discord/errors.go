package discord

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/teampicker/internal/platform"
)

// Discord JSON error codes
const (
	codeUnknownChannel = 10003
	codeUnknownMember  = 10007
	codeUnknownMessage = 10008
	codeUnknownRole    = 10011
	codeUnknownUser    = 10013
	codeUnknownEmoji   = 10014

	codeMaxReactions = 30010
	codeMaxRoles     = 30005
	codeMaxChannels  = 30013
)

// classify maps discordgo failures onto the platform error kinds. The
// original error stays in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var rateLimited *discordgo.RateLimitError
	if errors.As(err, &rateLimited) {
		return fmt.Errorf("%w: %w", platform.ErrTransient, err)
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			switch restErr.Message.Code {
			case codeUnknownChannel, codeUnknownMember, codeUnknownMessage,
				codeUnknownRole, codeUnknownUser, codeUnknownEmoji:
				return fmt.Errorf("%w: %w", platform.ErrNotFound, err)
			case codeMaxRoles, codeMaxChannels, codeMaxReactions:
				return fmt.Errorf("%w: %w", platform.ErrResourceQuota, err)
			}
		}

		if restErr.Response != nil {
			switch status := restErr.Response.StatusCode; {
			case status == http.StatusNotFound:
				return fmt.Errorf("%w: %w", platform.ErrNotFound, err)
			case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
				return fmt.Errorf("%w: %w", platform.ErrTransient, err)
			}
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", platform.ErrTransient, err)
	}

	return err
}
