package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"go.uber.org/zap"

	"github.com/usherbot/usher/internal/bot/constants"
	sectionmenu "github.com/usherbot/usher/internal/bot/menu/section"
	"github.com/usherbot/usher/internal/guild"
)

// Bot wires the Discord client to the section picker. It registers the
// sections command and drives a picker invocation per command use.
type Bot struct {
	client   bot.Client
	registry *guild.Registry
	picker   *sectionmenu.Picker
	logger   *zap.Logger
}

// New initializes a Bot instance by configuring the Discord client with the
// required gateway intents and event listeners.
func New(token string, registry *guild.Registry, logger *zap.Logger) (*Bot, error) {
	b := &Bot{
		registry: registry,
		logger:   logger,
	}

	client, err := disgo.New(token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMessages,
			),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnApplicationCommandInteraction: b.handleApplicationCommandInteraction,
		}),
	)
	if err != nil {
		return nil, err
	}

	b.client = client
	b.picker = sectionmenu.New(client, logger)

	return b, nil
}

// Start registers global commands with Discord and opens the gateway
// connection.
func (b *Bot) Start() error {
	b.logger.Info("Registering commands")

	_, err := b.client.Rest().SetGlobalCommands(b.client.ApplicationID(), []discord.ApplicationCommandCreate{
		discord.SlashCommandCreate{
			Name:        constants.SectionsCommandName,
			Description: "Choose the section you want to join",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.logger.Info("Starting bot")
	return b.client.OpenGateway(context.Background())
}

// Close gracefully shuts down the Discord gateway connection.
func (b *Bot) Close() {
	b.logger.Info("Closing bot")
	b.client.Close(context.Background())
}

// handleApplicationCommandInteraction processes slash commands by first
// deferring the response, then running the section prompt in a goroutine so
// concurrent invocations stay independent.
func (b *Bot) handleApplicationCommandInteraction(event *events.ApplicationCommandInteractionCreate) {
	go func() {
		// Defer response to prevent Discord timeout while the prompt runs
		if err := event.DeferCreateMessage(true); err != nil {
			b.logger.Error("Failed to defer create message", zap.Error(err))
			return
		}

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in application command interaction handler", zap.Any("panic", r))
			}
			b.logger.Debug("Application command interaction handled",
				zap.String("command", event.SlashCommandInteractionData().CommandName()),
				zap.Duration("duration", time.Since(start)))
		}()

		if event.SlashCommandInteractionData().CommandName() != constants.SectionsCommandName {
			b.respond(event, "This command is not available.")
			return
		}

		guildID := event.GuildID()
		if guildID == nil {
			b.respond(event, "This command can only be used in a guild.")
			return
		}

		cfg, ok := b.registry.Guild(*guildID)
		if !ok || len(cfg.Sections) == 0 {
			b.respond(event, "This guild has no sections configured.")
			return
		}

		chosen, _, err := b.picker.Prompt(context.Background(), sectionmenu.PromptOptions{
			Guild:        cfg,
			User:         event.User(),
			ChannelID:    event.Channel().ID(),
			Instructions: "Select the section you want to join from the menu below.",
		})
		if err != nil {
			b.logger.Error("Failed to send section prompt", zap.Error(err))
			b.respond(event, "Something went wrong sending the section prompt.")
			return
		}

		if chosen == nil {
			b.respond(event, "No section was chosen.")
			return
		}

		if chosen.HasRole() {
			if err := b.client.Rest().AddMemberRole(*guildID, event.User().ID, chosen.RoleID); err != nil {
				b.logger.Warn("Failed to assign section role",
					zap.String("section", chosen.ID),
					zap.Uint64("role_id", uint64(chosen.RoleID)),
					zap.Error(err))
				b.respond(event, fmt.Sprintf("You joined %s, but the section role could not be assigned.", chosen.Name))
				return
			}
		}

		b.respond(event, fmt.Sprintf("You joined %s.", chosen.Name))
	}()
}

// respond updates the deferred interaction response with plain content.
func (b *Bot) respond(event *events.ApplicationCommandInteractionCreate, content string) {
	update := discord.NewMessageUpdateBuilder().SetContent(content).Build()
	if _, err := b.client.Rest().UpdateInteractionResponse(event.ApplicationID(), event.Token(), update); err != nil {
		b.logger.Error("Failed to update interaction response", zap.Error(err))
	}
}
