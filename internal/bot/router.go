// File path: internal/bot/router.go
package bot

import (
	"strings"

	"github.com/dca-labs/reportbot/internal/grades"
	"github.com/dca-labs/reportbot/internal/session"
)

// StepFunc is one collector step: it stores the incoming reply into the
// session, names the next outbound prompt and returns the next state. Steps
// are pure; they never touch a field an earlier step wrote.
type StepFunc func(sess session.Session, reply string) (session.Session, string, session.State)

// Router maps each collection state to its single handler. It is built once
// at startup and passed into the controller; there is no ambient
// registration.
type Router map[session.State]StepFunc

// NewRouter builds the full collection sequence, delegating the grades
// states to the given sub-dialog collector.
func NewRouter(collector *grades.Collector) Router {
	return Router{
		session.StateCollectRawText:     collectRawText,
		session.StateCollectManagerName: collectManagerName,
		session.StateCollectForceName:   collectForceName,
		session.StateCollectLocation:    collectLocation,
		session.StateCollectGrades:      collectGrades(collector),
		session.StateCollectYouTubeLink: collectYouTubeLink,
		session.StateCollectPollLink:    collectPollLink,
	}
}

func collectRawText(sess session.Session, reply string) (session.Session, string, session.State) {
	sess.RawText = reply
	return sess, promptManagerName, session.StateCollectManagerName
}

func collectManagerName(sess session.Session, reply string) (session.Session, string, session.State) {
	sess.ManagerName = reply
	return sess, promptForceName, session.StateCollectForceName
}

func collectForceName(sess session.Session, reply string) (session.Session, string, session.State) {
	sess.ForceName = reply
	return sess, promptLocation, session.StateCollectLocation
}

func collectLocation(sess session.Session, reply string) (session.Session, string, session.State) {
	sess.Location = reply
	return sess, promptContinueGrades(), session.StateCollectGrades
}

func collectGrades(collector *grades.Collector) StepFunc {
	return func(sess session.Session, reply string) (session.Session, string, session.State) {
		progress, prompt, done := collector.Collect(sess.GradesState, reply)
		sess.GradesState = progress
		if !done {
			return sess, prompt, session.StateCollectGrades
		}
		sess.Grades = progress.Scores
		return sess, promptYouTubeLink, session.StateCollectYouTubeLink
	}
}

func collectYouTubeLink(sess session.Session, reply string) (session.Session, string, session.State) {
	sess.YouTubeLink = linkOrAbsent(reply)
	return sess, promptPollLink, session.StateCollectPollLink
}

func collectPollLink(sess session.Session, reply string) (session.Session, string, session.State) {
	sess.PollLink = linkOrAbsent(reply)
	return sess, promptGenerating, session.StateAssembleAndDeliver
}

// linkOrAbsent applies the sentinel rule for optional link fields: an exact
// case-insensitive match of the negative token means absent, anything else
// is kept verbatim (no URL validation).
func linkOrAbsent(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if strings.EqualFold(trimmed, NegativeToken) {
		return ""
	}
	return trimmed
}
