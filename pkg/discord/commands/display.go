package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/cardsharp/pkg/cards"
	"github.com/fadedpez/cardsharp/pkg/entities"
	"github.com/fadedpez/cardsharp/pkg/services/statistics"
)

var tierColors = map[entities.OutcomeTier]int{
	entities.TierFailure:      0xe74c3c,
	entities.TierPartial:      0xe67e22,
	entities.TierSuccess:      0xf1c40f,
	entities.TierGreatSuccess: 0x2ecc71,
	entities.TierCritical:     0x9b59b6,
}

var tierEmoji = map[entities.OutcomeTier]string{
	entities.TierFailure:      "💀",
	entities.TierPartial:      "😬",
	entities.TierSuccess:      "✅",
	entities.TierGreatSuccess: "🌟",
	entities.TierCritical:     "💥",
}

// formatCards renders cards with suit symbols, in code spans so Discord keeps them monospace
func formatCards(hand []entities.Card) string {
	if len(hand) == 0 {
		return "-"
	}
	return "`" + cards.FormatHand(hand) + "`"
}

func mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

func resolutionEmbed(res *entities.Resolution) *discordgo.MessageEmbed {
	outcome := "Failed"
	if res.Success {
		outcome = "Succeeded"
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s", tierEmoji[res.Tier], res.Tier),
		Description: fmt.Sprintf("%s attempts to **%s**", mention(res.PlayerID), res.Action),
		Color:       tierColors[res.Tier],
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Hand", Value: formatCards(res.Cards), Inline: false},
			{Name: "Draw", Value: res.Description, Inline: true},
			{Name: "Skill", Value: fmt.Sprintf("%s (+%d matching)", res.Skill, res.SkillBonus), Inline: true},
			{Name: "Difficulty", Value: res.Difficulty.String(), Inline: true},
			{Name: "Result", Value: outcome, Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: res.ID},
		Timestamp: res.ResolvedAt.Format(time.RFC3339),
	}
}

func evaluationEmbed(hand []entities.Card, eval *entities.HandEvaluation) *discordgo.MessageEmbed {
	kickers := "-"
	if len(eval.Kickers) > 0 {
		kickers = formatCards(eval.Kickers)
	}

	return &discordgo.MessageEmbed{
		Title:       "🃏 " + eval.Description,
		Description: formatCards(hand),
		Color:       0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Category", Value: eval.Rank.String(), Inline: true},
			{Name: "Score", Value: fmt.Sprintf("%d", eval.Score), Inline: true},
			{Name: "Primary", Value: formatCards(eval.PrimaryCards), Inline: false},
			{Name: "Kickers", Value: kickers, Inline: false},
		},
	}
}

func historyEmbed(playerID string, history []*entities.Resolution) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📜 Recent attempts",
		Description: mention(playerID),
		Color:       0x95a5a6,
	}

	if len(history) == 0 {
		embed.Description += " has not attempted anything yet."
		return embed
	}

	for _, res := range history {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s", tierEmoji[res.Tier], res.Action),
			Value: fmt.Sprintf("%s · %s · <t:%d:R>", formatCards(res.Cards), res.Description, res.ResolvedAt.Unix()),
		})
	}
	return embed
}

func statsEmbed(stats *entities.PlayerStatistics) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📊 Player statistics",
		Description: mention(stats.PlayerID),
		Color:       0x00ff00,
	}

	if stats.Attempts == 0 {
		embed.Description += " has no recorded attempts."
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Attempts", Value: fmt.Sprintf("%d", stats.Attempts), Inline: true},
		{Name: "Successes", Value: fmt.Sprintf("%d", stats.Successes), Inline: true},
		{Name: "Success Rate", Value: fmt.Sprintf("%.1f%%", stats.SuccessRate()), Inline: true},
		{Name: "Best Hand", Value: fmt.Sprintf("%s %s", stats.BestRank, formatCards(stats.BestCards)), Inline: false},
		{Name: "Hands Drawn", Value: categoryBreakdown(stats.CategoryCounts), Inline: false},
	}
	embed.Timestamp = stats.LastResolved.Format(time.RFC3339)
	return embed
}

// categoryBreakdown lists categories strongest first, skipping ones never drawn
func categoryBreakdown(counts map[entities.HandRank]int) string {
	ranks := make([]entities.HandRank, 0, len(counts))
	for rank, count := range counts {
		if count > 0 {
			ranks = append(ranks, rank)
		}
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	lines := make([]string, len(ranks))
	for i, rank := range ranks {
		lines[i] = fmt.Sprintf("%s: %d", rank, counts[rank])
	}
	if len(lines) == 0 {
		return "-"
	}
	return strings.Join(lines, "\n")
}

func leaderboardEmbed(leaderboard *statistics.Leaderboard) *discordgo.MessageEmbed {
	description := fmt.Sprintf("Showing page %d of %d (%d total players)",
		leaderboard.CurrentPage, leaderboard.TotalPages, leaderboard.TotalPlayers)
	if leaderboard.TotalPlayers == 0 {
		description = "Nobody has attempted anything in this channel yet."
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(leaderboard.Players))
	for _, player := range leaderboard.Players {
		rankEmoji := ""
		switch player.Rank {
		case 1:
			rankEmoji = "👑 "
		case 2:
			rankEmoji = "🥈 "
		case 3:
			rankEmoji = "🥉 "
		default:
			rankEmoji = fmt.Sprintf("%d. ", player.Rank)
		}

		indicators := ""
		if player.IsMostActive {
			indicators = " 🏆"
		}

		value := fmt.Sprintf("**Best:** %s %s\n**Attempts:** %d | **Successes:** %d | **Rate:** %.1f%%",
			player.BestRank, formatCards(player.BestCards), player.Attempts, player.Successes, player.SuccessRate)

		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s%s%s", rankEmoji, player.PlayerID, indicators),
			Value: value,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "🎴 Leaderboard 🎴",
		Description: description,
		Color:       0x00ff00,
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "👑 = Best hand | 🏆 = Most attempts",
		},
		Timestamp: leaderboard.LastUpdated.Format(time.RFC3339),
	}
}
