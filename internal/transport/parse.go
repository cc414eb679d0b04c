// File path: internal/transport/parse.go
package transport

import "strings"

// ParseMessage builds an Update from a raw chat message, splitting out a
// leading slash command. A "@botname" suffix on the command is dropped, so
// "/start@reportbot" behaves like "/start".
func ParseMessage(chatID int64, text string) Update {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return Update{ChatID: chatID, Text: text}
	}
	command := trimmed[1:]
	rest := ""
	if idx := strings.IndexAny(command, " \n\t"); idx >= 0 {
		rest = strings.TrimSpace(command[idx:])
		command = command[:idx]
	}
	if at := strings.Index(command, "@"); at >= 0 {
		command = command[:at]
	}
	return Update{ChatID: chatID, Text: rest, Command: strings.ToLower(command)}
}
