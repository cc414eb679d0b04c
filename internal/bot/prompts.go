// File path: internal/bot/prompts.go
package bot

import (
	"fmt"

	"github.com/dca-labs/reportbot/internal/grades"
)

// NegativeToken is the fixed reply marking an optional link as absent. The
// comparison is an exact, case-insensitive match; replies merely containing
// the token are stored verbatim.
const NegativeToken = "לא"

// Fixed conversation prompts, as the original bot issues them.
const (
	promptWelcome = "ברוך הבא למייצר דוחות אימון של חברת DCA.\n אנא הכניסו טקסט בתבנית הבאה:\n" +
		"תקציר התרגיל הראשון בנקודות\n" +
		"מה היה טוב בתרגיל הראשון\n" +
		"איפה הכוח צריך להשתפר\n" +
		"תקציר התרגיל השני בנקודות\n" +
		"מה היה טוב בתרגיל הראשון\n" +
		"איפה הכוח צריך להשתפר\n"
	promptManagerName = "אנא הכנס שם מנהל תרגיל:"
	promptForceName   = "אנא הכנס שם הכוח המתאמן:"
	promptLocation    = "אנא הכנס את מיקום האימון:"
	promptYouTubeLink = "אנא הכנס קישור ליוטיוב (או הקלד \"לא\" אם אין):"
	promptPollLink    = "אנא הכנס קישור לסקרים (או הקלד \"לא\" אם אין):"
	promptGenerating  = "מייצר את הדוח, אנא המתן..."
	promptCancelled   = "הפעולה בוטלה."
)

func promptContinueGrades() string {
	return fmt.Sprintf("אנא שלח \"%s\" כדי לעבור לציונים", grades.ContinueToken)
}
