package commands

import (
	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/cardsharp/internal/discord"
	"github.com/fadedpez/cardsharp/internal/logging"
	"github.com/fadedpez/cardsharp/pkg/cards"
	"github.com/fadedpez/cardsharp/pkg/services/poker"
)

// EvaluateCommand handles /evaluate, which classifies a typed hand without storing anything
type EvaluateCommand struct {
	logger *logging.Logger
}

// NewEvaluateCommand creates a new evaluate command handler
func NewEvaluateCommand(logger *logging.Logger) *EvaluateCommand {
	return &EvaluateCommand{logger: logging.OrDefault(logger)}
}

// Command returns the command definition for the evaluate command
func (c *EvaluateCommand) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "evaluate",
		Description: "Classify a five-card poker hand",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "cards",
				Description: `Five cards, e.g. "As Ks Qs Js 10s" or "A♠ K♥ 7♦ 7♣ 2♠"`,
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
			},
		},
	}
}

// Handle handles the evaluate command
func (c *EvaluateCommand) Handle(s discord.SessionHandler, i *discordgo.InteractionCreate) {
	text := ""
	if opt, ok := optionMap(i)["cards"]; ok {
		text = opt.StringValue()
	}

	response, err := c.evaluate(text)
	if err != nil {
		c.logger.Debug("Rejected /evaluate input %q: %v", text, err)
		response = discord.NewErrorResponse(err)
	}

	if err := discord.SendResponse(s, i, response); err != nil {
		c.logger.Error("Error responding to /evaluate: %v", err)
	}
}

func (c *EvaluateCommand) evaluate(text string) (*discord.Response, error) {
	hand, err := cards.ParseHand(text)
	if err != nil {
		return nil, err
	}

	eval, err := poker.Evaluate(hand)
	if err != nil {
		return nil, err
	}

	return discord.NewEmbedResponse(evaluationEmbed(hand, eval), nil), nil
}
