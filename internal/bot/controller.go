// File path: internal/bot/controller.go

// Package bot owns the conversation state machine. Each incoming update is
// dispatched to the collector step registered for the conversation's current
// state; when the sequence reaches its terminal state the controller hands
// the completed session to the assembler and delivery pipeline. The
// controller never lets an error escape to the transport: every
// conversation ends in the end state, successful or not.
package bot

import (
	"context"
	"sync"

	"github.com/dca-labs/reportbot/internal/common"
	"github.com/dca-labs/reportbot/internal/pipeline"
	"github.com/dca-labs/reportbot/internal/report"
	"github.com/dca-labs/reportbot/internal/session"
	"github.com/dca-labs/reportbot/internal/transport"
)

// Entry commands recognized by the controller.
const (
	CommandStart  = "start"
	CommandCancel = "cancel"
)

type conversation struct {
	mu    sync.Mutex
	state session.State
	sess  session.Session
}

// Controller drives one state machine per conversation. Distinct
// conversations are handled concurrently; updates for the same conversation
// are serialized, each running to completion before the next is dispatched.
type Controller struct {
	router    Router
	sender    transport.Sender
	assembler *report.Assembler
	pipeline  *pipeline.Pipeline

	mu            sync.Mutex
	conversations map[int64]*conversation
}

// New wires the controller from its collaborators. The router is built by
// the caller at startup and passed in explicitly.
func New(router Router, sender transport.Sender, assembler *report.Assembler, pipe *pipeline.Pipeline) *Controller {
	return &Controller{
		router:        router,
		sender:        sender,
		assembler:     assembler,
		pipeline:      pipe,
		conversations: make(map[int64]*conversation),
	}
}

// HandleUpdate consumes one inbound update and advances its conversation.
func (c *Controller) HandleUpdate(ctx context.Context, upd transport.Update) {
	logger := common.Logger()
	switch upd.Command {
	case CommandStart:
		c.start(ctx, upd.ChatID)
		return
	case CommandCancel:
		c.cancel(ctx, upd.ChatID)
		return
	}
	if upd.Command != "" {
		logger.Debug("bot: ignoring unknown command", "chat_id", upd.ChatID, "command", upd.Command)
		return
	}

	conv := c.lookup(upd.ChatID)
	if conv == nil {
		logger.Debug("bot: message outside a session ignored", "chat_id", upd.ChatID)
		return
	}
	conv.mu.Lock()
	defer conv.mu.Unlock()
	if conv.state == session.StateEnd {
		return
	}

	step, ok := c.router[conv.state]
	if !ok {
		logger.Error("bot: no handler for state", "chat_id", upd.ChatID, "state", conv.state.String())
		c.finish(upd.ChatID)
		return
	}
	sess, prompt, next := step(conv.sess, upd.Text)
	conv.sess = sess
	conv.state = next
	if prompt != "" {
		c.send(ctx, upd.ChatID, prompt)
	}
	logger.Debug("bot: state advanced", "chat_id", upd.ChatID, "state", next.String())

	if next == session.StateAssembleAndDeliver {
		c.assembleAndDeliver(ctx, conv)
		c.finish(upd.ChatID)
	}
}

func (c *Controller) start(ctx context.Context, chatID int64) {
	c.mu.Lock()
	conv := &conversation{state: session.StateCollectRawText, sess: session.New(chatID)}
	c.conversations[chatID] = conv
	c.mu.Unlock()
	common.Logger().Info("bot: session started", "chat_id", chatID)
	c.send(ctx, chatID, promptWelcome)
}

// cancel ends an in-progress session from any state without producing a
// record or running any pipeline step.
func (c *Controller) cancel(ctx context.Context, chatID int64) {
	c.finish(chatID)
	common.Logger().Info("bot: session cancelled", "chat_id", chatID)
	c.send(ctx, chatID, promptCancelled)
}

func (c *Controller) assembleAndDeliver(ctx context.Context, conv *conversation) {
	logger := common.Logger()
	rec, err := c.assembler.Assemble(ctx, conv.sess)
	if err != nil {
		logger.Error("bot: report assembly failed", "chat_id", conv.sess.ChatID, "error", err)
		c.send(ctx, conv.sess.ChatID, pipeline.GenericFailureMessage)
		return
	}
	res := c.pipeline.Run(ctx, conv.sess.ChatID, rec, conv.sess.ManagerName)
	if res.Err != nil {
		logger.Error("bot: pipeline failed", "chat_id", conv.sess.ChatID, "error", res.Err)
	}
}

func (c *Controller) lookup(chatID int64) *conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conversations[chatID]
}

// finish drops the conversation; the session is discarded with it.
func (c *Controller) finish(chatID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.conversations, chatID)
}

func (c *Controller) send(ctx context.Context, chatID int64, text string) {
	if err := c.sender.SendMessage(ctx, chatID, text); err != nil {
		common.Logger().Error("bot: send failed", "chat_id", chatID, "error", err)
	}
}
