package commands

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/cardsharp/internal/discord"
	"github.com/fadedpez/cardsharp/internal/logging"
	"github.com/fadedpez/cardsharp/pkg/entities"
	"github.com/fadedpez/cardsharp/pkg/services/resolution"
)

const (
	defaultDifficulty   = entities.TierSuccess
	defaultHistoryLimit = 5
	maxHistoryLimit     = 20
)

// AttemptCommand handles /attempt, which draws a hand to resolve an action
type AttemptCommand struct {
	resolver Resolver
	logger   *logging.Logger
}

// NewAttemptCommand creates a new attempt command handler
func NewAttemptCommand(resolver Resolver, logger *logging.Logger) *AttemptCommand {
	return &AttemptCommand{
		resolver: resolver,
		logger:   logging.OrDefault(logger),
	}
}

// Command returns the command definition for the attempt command
func (c *AttemptCommand) Command() *discordgo.ApplicationCommand {
	skillChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(entities.AllSkills()))
	for _, skill := range entities.AllSkills() {
		skillChoices = append(skillChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(skill),
			Value: string(skill),
		})
	}

	difficultyChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 5)
	for tier := entities.TierFailure; tier <= entities.TierCritical; tier++ {
		difficultyChoices = append(difficultyChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  tier.String(),
			Value: int(tier),
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        "attempt",
		Description: "Draw five cards to see how an action turns out",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "action",
				Description: "What you are trying to do",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
			},
			{
				Name:        "skill",
				Description: "The skill the action relies on",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
				Choices:     skillChoices,
			},
			{
				Name:        "difficulty",
				Description: "The outcome needed to succeed (default: Success)",
				Type:        discordgo.ApplicationCommandOptionInteger,
				Choices:     difficultyChoices,
			},
		},
	}
}

// Handle handles the attempt command
func (c *AttemptCommand) Handle(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	options := optionMap(i)

	attempt := resolution.Attempt{
		PlayerID:   interactionUserID(i),
		ChannelID:  i.ChannelID,
		Difficulty: defaultDifficulty,
	}
	if opt, ok := options["action"]; ok {
		attempt.Action = opt.StringValue()
	}
	if opt, ok := options["skill"]; ok {
		attempt.Skill = entities.SkillCategory(strings.ToLower(opt.StringValue()))
	}
	if opt, ok := options["difficulty"]; ok {
		attempt.Difficulty = entities.OutcomeTier(opt.IntValue())
	}

	result, err := c.resolver.Resolve(context.Background(), attempt)
	if err != nil {
		c.logger.LogError(err)
		c.respond(s, i, discord.NewErrorResponse(err))
		return
	}

	c.respond(s, i, discord.NewEmbedResponse(resolutionEmbed(result), nil))
}

func (c *AttemptCommand) respond(s discord.SessionHandler, i *discordgo.InteractionCreate, r *discord.Response) {
	if err := discord.SendResponse(s, i, r); err != nil {
		c.logger.Error("Error responding to /attempt: %v", err)
	}
}

// HistoryCommand handles /history, which lists the caller's recent attempts
type HistoryCommand struct {
	resolver Resolver
	logger   *logging.Logger
}

// NewHistoryCommand creates a new history command handler
func NewHistoryCommand(resolver Resolver, logger *logging.Logger) *HistoryCommand {
	return &HistoryCommand{
		resolver: resolver,
		logger:   logging.OrDefault(logger),
	}
}

// Command returns the command definition for the history command
func (c *HistoryCommand) Command() *discordgo.ApplicationCommand {
	minLimit := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        "history",
		Description: "Show your most recent attempts",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "limit",
				Description: "How many attempts to show",
				Type:        discordgo.ApplicationCommandOptionInteger,
				MinValue:    &minLimit,
				MaxValue:    maxHistoryLimit,
			},
		},
	}
}

// Handle handles the history command
func (c *HistoryCommand) Handle(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	limit := defaultHistoryLimit
	if opt, ok := optionMap(i)["limit"]; ok {
		limit = int(opt.IntValue())
	}
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	playerID := interactionUserID(i)
	history, err := c.resolver.History(context.Background(), playerID, limit)
	if err != nil {
		c.logger.LogError(err)
		if err := discord.SendErrorResponse(s, i, err); err != nil {
			c.logger.Error("Error responding to /history: %v", err)
		}
		return
	}

	response := discord.NewEmbedResponse(historyEmbed(playerID, history), nil)
	response.Ephemeral = true
	if err := discord.SendResponse(s, i, response); err != nil {
		c.logger.Error("Error responding to /history: %v", err)
	}
}
