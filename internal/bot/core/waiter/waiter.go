package waiter

import (
	"context"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a wait when the request does not set one.
const DefaultTimeout = 60 * time.Second

// Kind tags the outcome of a wait.
type Kind int

const (
	// KindNone means no qualifying interaction arrived before the deadline.
	KindNone Kind = iota
	// KindSelect means a select menu choice was made.
	KindSelect
	// KindButton means a button was pressed.
	KindButton
)

// Result is the tagged outcome of a single wait. Values is populated only
// for KindSelect; CustomID only for KindSelect and KindButton.
type Result struct {
	Kind     Kind
	CustomID string
	Values   []string
}

// Request describes a single wait for one component interaction.
type Request struct {
	// ChannelID and MessageID identify the message carrying the components.
	ChannelID snowflake.ID
	MessageID snowflake.ID
	// UserID is the only user whose interactions resolve the wait;
	// everyone else's are discarded by the collector filter.
	UserID snowflake.ID
	// Timeout bounds the wait. Zero means DefaultTimeout.
	Timeout time.Duration
	// ClearComponents strips the message's components after the wait
	// completes. Ignored when DeleteMessage is set.
	ClearComponents bool
	// DeleteMessage removes the message after the wait completes,
	// regardless of outcome.
	DeleteMessage bool
}

// messenger is the slice of the rest client the waiter needs for cleanup.
type messenger interface {
	UpdateMessage(channelID snowflake.ID, messageID snowflake.ID, messageUpdate discord.MessageUpdate, opts ...rest.RequestOpt) (*discord.Message, error)
	DeleteMessage(channelID snowflake.ID, messageID snowflake.ID, opts ...rest.RequestOpt) error
}

type collectFunc func(filter func(e *events.ComponentInteractionCreate) bool) (<-chan *events.ComponentInteractionCreate, func())

// ComponentWaiter awaits a single component interaction on a message,
// acknowledges it, and applies the requested cleanup. Each call is
// independent; the waiter holds no per-wait state.
type ComponentWaiter struct {
	rest    messenger
	collect collectFunc
	logger  *zap.Logger
}

// New creates a waiter backed by the client's event collector.
func New(client bot.Client, logger *zap.Logger) *ComponentWaiter {
	return &ComponentWaiter{
		rest: client.Rest(),
		collect: func(filter func(e *events.ComponentInteractionCreate) bool) (<-chan *events.ComponentInteractionCreate, func()) {
			return bot.NewEventCollector(client, filter)
		},
		logger: logger.Named("waiter"),
	}
}

// Wait blocks until one qualifying interaction arrives or the deadline
// elapses, then runs cleanup and returns the tagged result. The received
// interaction is acknowledged with a deferred update before returning so
// Discord does not mark it as failed.
func (w *ComponentWaiter) Wait(ctx context.Context, req Request) Result {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch, stop := w.collect(func(e *events.ComponentInteractionCreate) bool {
		return e.Message.ID == req.MessageID && e.User().ID == req.UserID
	})
	defer stop()

	result := Result{Kind: KindNone}

	select {
	case <-ctx.Done():
	case e, ok := <-ch:
		if ok {
			if err := e.DeferUpdateMessage(); err != nil {
				w.logger.Debug("Failed to acknowledge component interaction", zap.Error(err))
			}
			result = classify(e.Data)
		}
	}

	w.cleanup(req)
	return result
}

// classify maps the raw interaction data onto the tagged result.
func classify(data discord.ComponentInteractionData) Result {
	switch d := data.(type) {
	case discord.StringSelectMenuInteractionData:
		return Result{Kind: KindSelect, CustomID: d.CustomID(), Values: d.Values}
	case discord.ButtonInteractionData:
		return Result{Kind: KindButton, CustomID: d.CustomID()}
	default:
		return Result{Kind: KindNone}
	}
}

// cleanup applies the request's post-wait policy. Both operations are
// best-effort; a message removed out from under us is not a failure.
func (w *ComponentWaiter) cleanup(req Request) {
	switch {
	case req.DeleteMessage:
		if err := w.rest.DeleteMessage(req.ChannelID, req.MessageID); err != nil {
			w.logger.Debug("Failed to delete prompt message",
				zap.Uint64("message_id", uint64(req.MessageID)),
				zap.Error(err))
		}
	case req.ClearComponents:
		update := discord.NewMessageUpdateBuilder().ClearContainerComponents().Build()
		if _, err := w.rest.UpdateMessage(req.ChannelID, req.MessageID, update); err != nil {
			w.logger.Debug("Failed to clear prompt components",
				zap.Uint64("message_id", uint64(req.MessageID)),
				zap.Error(err))
		}
	}
}
