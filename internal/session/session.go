// File path: internal/session/session.go

// Package session defines the per-conversation state collected while a
// training report is being dictated. A Session is a value: collector steps
// receive it by value and return an updated copy, so no step can mutate a
// field another step already wrote.
package session

import "github.com/dca-labs/reportbot/internal/grades"

// State identifies the conversation's position in the collection sequence.
type State int

const (
	StateEntry State = iota
	StateCollectRawText
	StateCollectManagerName
	StateCollectForceName
	StateCollectLocation
	StateCollectGrades
	StateCollectYouTubeLink
	StateCollectPollLink
	StateAssembleAndDeliver
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateEntry:
		return "entry"
	case StateCollectRawText:
		return "collect_raw_text"
	case StateCollectManagerName:
		return "collect_manager_name"
	case StateCollectForceName:
		return "collect_force_name"
	case StateCollectLocation:
		return "collect_location"
	case StateCollectGrades:
		return "collect_grades"
	case StateCollectYouTubeLink:
		return "collect_youtube_link"
	case StateCollectPollLink:
		return "collect_poll_link"
	case StateAssembleAndDeliver:
		return "assemble_and_deliver"
	case StateEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Session holds the fields collected from one conversation, in collection
// order. Link fields hold the empty string when the user answered with the
// negative sentinel; chat replies are never empty, so the empty string is
// unambiguous for "absent".
type Session struct {
	ChatID      int64
	RawText     string
	ManagerName string
	ForceName   string
	Location    string
	Grades      grades.Payload
	GradesState grades.Progress
	YouTubeLink string
	PollLink    string
}

// New returns a fresh session for the given conversation.
func New(chatID int64) Session {
	return Session{ChatID: chatID}
}
