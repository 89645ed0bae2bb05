package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/cardsharp/internal/discord"
	"github.com/fadedpez/cardsharp/internal/types"
	"github.com/fadedpez/cardsharp/pkg/discord/commands"
)

func (b *Bot) handleReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User != nil {
		b.logger.Info("Bot is ready: %s", r.User.Username)
	}
}

func (b *Bot) handleInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	b.HandleInteraction(i)
}

// HandleInteraction routes a slash command or button press to its command
func (b *Bot) HandleInteraction(i *discordgo.InteractionCreate) {
	if b.seen(i.ID) {
		b.logger.Debug("Skipping already processed interaction: %s", i.ID)
		return
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		b.logger.Debug("Received application command: %s", name)

		cmd, ok := b.commands[name]
		if !ok {
			b.respondUnknown(i, fmt.Sprintf("unknown command /%s", name))
			return
		}
		cmd.Handle(b.session, i)

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		b.logger.Debug("Received message component interaction: %s", customID)

		for _, cmd := range b.ordered {
			if handler, ok := cmd.(commands.ComponentHandler); ok && handler.HandleComponent(b.session, i) {
				return
			}
		}
		b.respondUnknown(i, "this button is no longer supported")
	}
}

// seen records id and reports whether it was already processed
func (b *Bot) seen(id string) bool {
	b.interactionMu.Lock()
	defer b.interactionMu.Unlock()

	now := b.now()
	if _, processed := b.processedInteractions[id]; processed {
		return true
	}
	b.processedInteractions[id] = now

	// Periodically forget interactions Discord will never redeliver
	if now.Sub(b.lastCleanupTime) > interactionTTL {
		for processedID, at := range b.processedInteractions {
			if now.Sub(at) > interactionTTL {
				delete(b.processedInteractions, processedID)
			}
		}
		b.lastCleanupTime = now
	}
	return false
}

func (b *Bot) respondUnknown(i *discordgo.InteractionCreate, msg string) {
	err := discord.SendErrorResponse(b.session, i, types.NewGameError(types.ErrInvalidCommand, msg))
	if err != nil {
		b.logger.Error("Error responding to interaction %s: %v", i.ID, err)
	}
}
