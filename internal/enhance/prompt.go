// File path: internal/enhance/prompt.go
package enhance

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the user message sent to the enhancement service.
func BuildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Training date: %s\n", req.Date)
	fmt.Fprintf(&b, "Exercise manager: %s\n", req.ManagerName)
	fmt.Fprintf(&b, "Training force: %s\n", req.ForceName)
	fmt.Fprintf(&b, "Location: %s\n\n", req.Location)
	b.WriteString("Raw exercise notes:\n")
	b.WriteString(strings.TrimSpace(req.RawText))
	return b.String()
}
