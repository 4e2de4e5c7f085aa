package section

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"

	builder "github.com/usherbot/usher/internal/bot/builder/section"
	"github.com/usherbot/usher/internal/bot/constants"
	"github.com/usherbot/usher/internal/bot/core/waiter"
	"github.com/usherbot/usher/internal/guild"
)

// Messenger is the slice of the rest client the picker needs. disgo's
// rest.Rest satisfies it.
type Messenger interface {
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
	UpdateMessage(channelID snowflake.ID, messageID snowflake.ID, messageUpdate discord.MessageUpdate, opts ...rest.RequestOpt) (*discord.Message, error)
	DeleteMessage(channelID snowflake.ID, messageID snowflake.ID, opts ...rest.RequestOpt) error
	GetMessage(channelID snowflake.ID, messageID snowflake.ID, opts ...rest.RequestOpt) (*discord.Message, error)
}

// Waiter awaits a single component interaction on a message. The waiter is
// responsible for discarding interactions from other users; the picker
// relies on that rather than re-checking.
type Waiter interface {
	Wait(ctx context.Context, req waiter.Request) waiter.Result
}

// Picker prompts a user to choose one of a guild's sections. Invocations
// are independent; the only shared resource is the read-only role cache.
type Picker struct {
	rest   Messenger
	roles  guild.RoleResolver
	waiter Waiter
	logger *zap.Logger
}

// New creates a picker backed by the Discord client's rest surface, role
// cache, and event collector.
func New(client bot.Client, logger *zap.Logger) *Picker {
	return NewPicker(client.Rest(), client.Caches(), waiter.New(client, logger), logger)
}

// NewPicker creates a picker with explicit dependencies.
func NewPicker(rest Messenger, roles guild.RoleResolver, w Waiter, logger *zap.Logger) *Picker {
	return &Picker{
		rest:   rest,
		roles:  roles,
		waiter: w,
		logger: logger.Named("section_picker"),
	}
}

// PromptOptions configures a fresh section prompt.
type PromptOptions struct {
	// Guild is the section snapshot the selection resolves against.
	Guild *guild.Config
	// User is the only user whose interactions count.
	User discord.User
	// ChannelID is where the prompt is sent.
	ChannelID snowflake.ID
	// Instructions is the free-text shown in the prompt embed.
	Instructions string
	// ReturnMessage keeps the prompt message alive on a successful
	// selection and returns its handle.
	ReturnMessage bool
}

// Prompt sends a fresh section prompt and awaits one interaction from the
// requesting user. It returns the chosen section, or nil on timeout or any
// non-select interaction such as the cancel button. The prompt message is
// always removed unless ReturnMessage is set and a selection was made; in
// that case the returned handle is nil when the message was independently
// deleted while waiting. The error is non-nil only when the prompt could
// not be sent.
func (p *Picker) Prompt(ctx context.Context, opts PromptOptions) (*guild.Section, *discord.Message, error) {
	prompt := builder.NewPickerBuilder(opts.Guild, p.roles).
		WithInstructions(opts.Instructions).
		Build().
		Build()

	msg, err := p.rest.CreateMessage(opts.ChannelID, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to send section prompt: %w", err)
	}

	result := p.waiter.Wait(ctx, waiter.Request{
		ChannelID:       opts.ChannelID,
		MessageID:       msg.ID,
		UserID:          opts.User.ID,
		Timeout:         constants.SectionPromptTimeout,
		ClearComponents: opts.ReturnMessage,
		DeleteMessage:   !opts.ReturnMessage,
	})

	chosen, ok := p.resolve(opts.Guild, result)
	if !ok {
		// Nothing was chosen, so there is no reason to keep the prompt
		// around even when the caller asked for the message back.
		if opts.ReturnMessage {
			if err := p.rest.DeleteMessage(opts.ChannelID, msg.ID); err != nil {
				p.logger.Debug("Failed to delete section prompt",
					zap.Uint64("message_id", uint64(msg.ID)),
					zap.Error(err))
			}
		}
		return nil, nil, nil
	}

	if !opts.ReturnMessage {
		return &chosen, nil, nil
	}

	// The message may have been removed independently while waiting; hand
	// back nil rather than a dangling reference.
	kept, err := p.rest.GetMessage(opts.ChannelID, msg.ID)
	if err != nil {
		return &chosen, nil, nil
	}

	return &chosen, kept, nil
}

// EditOptions configures a prompt over an existing message.
type EditOptions struct {
	Guild *guild.Config
	User  discord.User
	// Message is the message to repurpose as the prompt.
	Message discord.Message
	// Overrides optionally replaces the message content when the picker
	// controls are attached. Nil preserves the message's content verbatim.
	Overrides *builder.Overrides
}

// PromptExisting repurposes an existing message as the section prompt. The
// picker controls are attached only when the message carries none, which
// lets callers re-prompt on the same message without control churn. The
// message is never deleted, and its components are cleared afterwards only
// when this invocation added them. Returns the chosen section or nil under
// the same conditions as Prompt.
func (p *Picker) PromptExisting(ctx context.Context, opts EditOptions) *guild.Section {
	added := len(opts.Message.Components) == 0
	if added {
		update := builder.NewPickerBuilder(opts.Guild, p.roles).
			BuildUpdate(opts.Overrides).
			Build()

		// Best-effort: a partially stale prompt is still awaitable.
		if _, err := p.rest.UpdateMessage(opts.Message.ChannelID, opts.Message.ID, update); err != nil {
			p.logger.Debug("Failed to attach picker controls",
				zap.Uint64("message_id", uint64(opts.Message.ID)),
				zap.Error(err))
		}
	}

	result := p.waiter.Wait(ctx, waiter.Request{
		ChannelID:       opts.Message.ChannelID,
		MessageID:       opts.Message.ID,
		UserID:          opts.User.ID,
		Timeout:         constants.SectionPromptTimeout,
		ClearComponents: added,
	})

	if chosen, ok := p.resolve(opts.Guild, result); ok {
		return &chosen
	}
	return nil
}

// resolve maps a wait result back onto the guild's section set. Anything
// other than a choice from the section select menu resolves to nothing;
// the cancel button and a timeout are indistinguishable to callers.
func (p *Picker) resolve(cfg *guild.Config, result waiter.Result) (guild.Section, bool) {
	if result.Kind != waiter.KindSelect || result.CustomID != constants.SectionSelectMenuCustomID {
		return guild.Section{}, false
	}
	if len(result.Values) == 0 {
		return guild.Section{}, false
	}
	return cfg.Section(result.Values[0])
}
