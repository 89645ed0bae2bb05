package commands

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/cardsharp/internal/discord"
	"github.com/fadedpez/cardsharp/internal/logging"
	"github.com/fadedpez/cardsharp/pkg/entities"
	"github.com/fadedpez/cardsharp/pkg/services/resolution"
	"github.com/fadedpez/cardsharp/pkg/services/statistics"
)

// Command is a slash command the bot registers and routes to
type Command interface {
	Command() *discordgo.ApplicationCommand
	Handle(s discord.SessionHandler, i *discordgo.InteractionCreate)
}

// ComponentHandler is implemented by commands whose messages carry buttons.
// HandleComponent reports whether it recognised the custom ID.
type ComponentHandler interface {
	HandleComponent(s discord.SessionHandler, i *discordgo.InteractionCreate) bool
}

// Resolver is the part of the resolution service the commands use
type Resolver interface {
	Resolve(ctx context.Context, attempt resolution.Attempt) (*entities.Resolution, error)
	History(ctx context.Context, playerID string, limit int) ([]*entities.Resolution, error)
}

// StatisticsProvider is the part of the statistics service the commands use
type StatisticsProvider interface {
	PlayerSummary(ctx context.Context, playerID string) (*entities.PlayerStatistics, error)
	Leaderboard(ctx context.Context, channelID string, page, playersPerPage int) (*statistics.Leaderboard, error)
}

var (
	_ Resolver           = (*resolution.Service)(nil)
	_ StatisticsProvider = (*statistics.Service)(nil)
)

// interactionUserID returns the invoking user in guilds and DMs alike
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		byName[opt.Name] = opt
	}
	return byName
}

// All returns every slash command the bot serves, in registration order
func All(resolver Resolver, stats StatisticsProvider, logger *logging.Logger) []Command {
	return []Command{
		NewAttemptCommand(resolver, logger),
		NewEvaluateCommand(logger),
		NewHistoryCommand(resolver, logger),
		NewStatsCommand(stats, logger),
		NewLeaderboardCommand(stats, logger),
	}
}
