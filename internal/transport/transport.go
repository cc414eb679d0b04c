// File path: internal/transport/transport.go

// Package transport defines the narrow chat-transport contract the bot core
// depends on. Concrete transports (Telegram long-poll, HTTP webhook) live in
// subpackages; the core only ever sees Updates coming in and a Sender for
// everything going out.
package transport

import "context"

// Update is one inbound message from a conversation. Command holds the bare
// command name ("start", "cancel") when the message was a slash command,
// with Text carrying the remainder, if any.
type Update struct {
	ChatID  int64
	Text    string
	Command string
}

// Sender delivers outbound prompts and artifacts to a conversation.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendDocument(ctx context.Context, chatID int64, path string) error
}

// Handler consumes inbound updates. Implementations must serialize handling
// per conversation; distinct conversations may be dispatched concurrently.
type Handler interface {
	HandleUpdate(ctx context.Context, upd Update)
}
