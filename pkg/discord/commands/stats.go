package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/cardsharp/internal/discord"
	"github.com/fadedpez/cardsharp/internal/logging"
	"github.com/fadedpez/cardsharp/internal/types"
)

const (
	leaderboardPagePrefix = "leaderboard_page:"
	refreshSuffix         = ":refresh"
	playersPerPage        = 10
)

// StatsCommand handles the /stats command for displaying player statistics
type StatsCommand struct {
	statisticsService StatisticsProvider
	logger            *logging.Logger
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(statisticsService StatisticsProvider, logger *logging.Logger) *StatsCommand {
	return &StatsCommand{
		statisticsService: statisticsService,
		logger:            logging.OrDefault(logger),
	}
}

// Command returns the command definition for the stats command
func (c *StatsCommand) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "stats",
		Description: "View player statistics",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "player",
				Description: "Whose statistics to show (default: you)",
				Type:        discordgo.ApplicationCommandOptionUser,
			},
		},
	}
}

// Handle handles the stats command
func (c *StatsCommand) Handle(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	playerID := interactionUserID(i)
	if opt, ok := optionMap(i)["player"]; ok {
		if id, ok := opt.Value.(string); ok && id != "" {
			playerID = id
		}
	}

	stats, err := c.statisticsService.PlayerSummary(context.Background(), playerID)
	if err != nil {
		c.logger.LogError(err)
		respondWithError(s, i, err, c.logger)
		return
	}

	if err := discord.SendResponse(s, i, discord.NewEmbedResponse(statsEmbed(stats), nil)); err != nil {
		c.logger.Error("Error responding to /stats: %v", err)
	}
}

// LeaderboardCommand handles /leaderboard and its pagination buttons
type LeaderboardCommand struct {
	statisticsService StatisticsProvider
	logger            *logging.Logger
}

// NewLeaderboardCommand creates a new leaderboard command handler
func NewLeaderboardCommand(statisticsService StatisticsProvider, logger *logging.Logger) *LeaderboardCommand {
	return &LeaderboardCommand{
		statisticsService: statisticsService,
		logger:            logging.OrDefault(logger),
	}
}

// Command returns the command definition for the leaderboard command
func (c *LeaderboardCommand) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Description: "Rank this channel's players by the best hand they have drawn",
	}
}

// Handle handles the leaderboard command
func (c *LeaderboardCommand) Handle(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	response, err := c.page(i.ChannelID, 1)
	if err != nil {
		c.logger.LogError(err)
		respondWithError(s, i, err, c.logger)
		return
	}

	if err := discord.SendResponse(s, i, response); err != nil {
		c.logger.Error("Error responding to /leaderboard: %v", err)
	}
}

// HandleComponent handles the leaderboard's previous, refresh and next buttons
func (c *LeaderboardCommand) HandleComponent(s discord.SessionHandler, i *discordgo.InteractionCreate) bool {
	customID := i.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, leaderboardPagePrefix) {
		return false
	}

	pageText := strings.TrimSuffix(strings.TrimPrefix(customID, leaderboardPagePrefix), refreshSuffix)
	page, err := strconv.Atoi(pageText)
	if err != nil {
		respondWithError(s, i, types.NewGameError(types.ErrInvalidCommand, "unknown leaderboard page"), c.logger)
		return true
	}

	response, err := c.page(i.ChannelID, page)
	if err != nil {
		c.logger.LogError(err)
		respondWithError(s, i, err, c.logger)
		return true
	}

	if err := discord.UpdateResponse(s, i, response); err != nil {
		c.logger.Error("Error updating leaderboard: %v", err)
	}
	return true
}

func (c *LeaderboardCommand) page(channelID string, page int) (*discord.Response, error) {
	leaderboard, err := c.statisticsService.Leaderboard(context.Background(), channelID, page, playersPerPage)
	if err != nil {
		return nil, err
	}

	paginationRow := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Previous",
				Style:    discordgo.SecondaryButton,
				CustomID: pageButtonID(leaderboard.CurrentPage - 1),
				Disabled: leaderboard.CurrentPage <= 1,
				Emoji: &discordgo.ComponentEmoji{
					Name: "⬅️",
				},
			},
			// Custom IDs must be unique within a message
			discordgo.Button{
				Label:    "Refresh",
				Style:    discordgo.SecondaryButton,
				CustomID: pageButtonID(leaderboard.CurrentPage) + refreshSuffix,
				Emoji: &discordgo.ComponentEmoji{
					Name: "🔄",
				},
			},
			discordgo.Button{
				Label:    "Next",
				Style:    discordgo.SecondaryButton,
				CustomID: pageButtonID(leaderboard.CurrentPage + 1),
				Disabled: leaderboard.CurrentPage >= leaderboard.TotalPages,
				Emoji: &discordgo.ComponentEmoji{
					Name: "➡️",
				},
			},
		},
	}

	return discord.NewEmbedResponse(leaderboardEmbed(leaderboard), []discordgo.MessageComponent{paginationRow}), nil
}

func pageButtonID(page int) string {
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf("%s%d", leaderboardPagePrefix, page)
}

// respondWithError sends an error message as a response to an interaction
func respondWithError(s discord.SessionHandler, i *discordgo.InteractionCreate, err error, logger *logging.Logger) {
	if sendErr := discord.SendErrorResponse(s, i, err); sendErr != nil {
		logger.Error("Error sending error response: %v", sendErr)
	}
}
