package discord

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/cardsharp/internal/discord"
	"github.com/fadedpez/cardsharp/internal/logging"
	"github.com/fadedpez/cardsharp/pkg/discord/commands"
)

// interactionTTL is how long an interaction ID is remembered for duplicate detection
const interactionTTL = 10 * time.Minute

// Config holds the bot's Discord application settings
type Config struct {
	AppID   string
	GuildID string
	// CleanupCommands deletes the registered commands on Stop, for development guilds
	CleanupCommands bool
}

// Bot represents the Discord bot instance
type Bot struct {
	session discord.SessionHandler
	config  Config
	logger  *logging.Logger

	commands   map[string]commands.Command
	ordered    []commands.Command
	registered []*discordgo.ApplicationCommand

	// Interaction tracking to prevent duplicates
	interactionMu         sync.Mutex
	processedInteractions map[string]time.Time
	lastCleanupTime       time.Time
	now                   func() time.Time
}

// NewBot creates a new instance of the bot
func NewBot(session discord.SessionHandler, config Config, logger *logging.Logger, cmds ...commands.Command) *Bot {
	bot := &Bot{
		session:               session,
		config:                config,
		logger:                logging.OrDefault(logger),
		commands:              make(map[string]commands.Command, len(cmds)),
		ordered:               cmds,
		processedInteractions: make(map[string]time.Time),
		now:                   time.Now,
	}
	bot.lastCleanupTime = bot.now()

	for _, cmd := range cmds {
		bot.commands[cmd.Command().Name] = cmd
	}
	return bot
}

// Start connects to Discord and registers the slash commands
func (b *Bot) Start() error {
	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleInteractionCreate)

	// Open websocket connection
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	appID := b.config.AppID
	if appID == "" {
		appID = b.session.UserID()
	}

	b.logger.Info("Registering %d slash commands...", len(b.ordered))
	for _, cmd := range b.ordered {
		definition := cmd.Command()
		created, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, definition)
		if err != nil {
			return fmt.Errorf("error creating command %s: %w", definition.Name, err)
		}
		b.registered = append(b.registered, created)
		b.logger.Debug("Successfully registered command: %s", definition.Name)
	}

	return nil
}

// Stop gracefully shuts down the bot and closes the Discord connection
func (b *Bot) Stop() error {
	if b.config.CleanupCommands {
		for _, cmd := range b.registered {
			if err := b.session.ApplicationCommandDelete(cmd.ApplicationID, b.config.GuildID, cmd.ID); err != nil {
				b.logger.Warn("Error deleting command %s: %v", cmd.Name, err)
			}
		}
		b.registered = nil
	}

	// Close websocket connection
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("error closing connection: %w", err)
	}

	return nil
}
