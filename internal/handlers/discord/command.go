package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/teampicker/internal/handlers/command"
)

const argsOption = "args"

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// TeamPickerCommand exposes every registered chat command as a subcommand of /teampicker
type TeamPickerCommand struct {
	BaseCommand
	dispatcher *command.Dispatcher
}

// NewTeamPickerCommand builds the slash command from the dispatcher's table
func NewTeamPickerCommand(dispatcher *command.Dispatcher) *TeamPickerCommand {
	return &TeamPickerCommand{
		BaseCommand: BaseCommand{
			Name:        "teampicker",
			Description: "Queue up and draft teams",
			Options:     subcommandOptions(dispatcher.Handlers()),
		},
		dispatcher: dispatcher,
	}
}

func subcommandOptions(handlers []command.Handler) []*discordgo.ApplicationCommandOption {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(handlers))
	for _, h := range handlers {
		option := &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        h.GetName(),
			Description: h.GetDescription(),
		}
		if usage := h.GetUsage(); usage != "" {
			option.Options = []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        argsOption,
				Description: usage,
				Required:    true,
			}}
		}
		options = append(options, option)
	}
	return options
}

// Handle runs the chosen subcommand and answers privately
func (c *TeamPickerCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	name, req, ok := slashRequest(i)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "Pick a subcommand.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	response, err := c.dispatcher.Run(ctx, name, req)
	if err != nil {
		return RespondWithEphemeralMessage(s, i, commandFailed)
	}

	return RespondWithEphemeralMessage(s, i, response.Body)
}

func slashRequest(i *discordgo.InteractionCreate) (string, *command.Request, bool) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return "", nil, false
	}
	sub := data.Options[0]

	var args []string
	for _, opt := range sub.Options {
		if opt.Name == argsOption {
			args = strings.Fields(opt.StringValue())
		}
	}

	return sub.Name, &command.Request{
		ChannelID: i.ChannelID,
		Player:    playerFromMember(i.Member, i.User),
		Args:      args,
	}, true
}

// RespondWithEphemeralMessage sends an ephemeral message response to an interaction
func RespondWithEphemeralMessage(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
