// File path: internal/enhance/sections.go
package enhance

import "strings"

// Section names expected in the enhanced prose.
const (
	SectionExercise1 = "Exercise 1"
	SectionExercise2 = "Exercise 2"
)

// ParseSections splits enhanced prose into its named sections. A heading is
// any line that, after stripping markdown decoration, begins with a known
// section name (case-insensitive). Text before the first heading is ignored;
// a section that never appears is simply absent from the result.
func ParseSections(text string) map[string]string {
	sections := make(map[string]string)
	var current string
	var body []string
	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(strings.Join(body, "\n"))
		}
		body = nil
	}
	for _, line := range strings.Split(text, "\n") {
		if name, ok := headingName(line); ok {
			flush()
			current = name
			continue
		}
		if current != "" {
			body = append(body, line)
		}
	}
	flush()
	return sections
}

func headingName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimLeft(trimmed, "#")
	trimmed = strings.Trim(trimmed, "* ")
	lower := strings.ToLower(trimmed)
	for _, name := range []string{SectionExercise1, SectionExercise2} {
		if strings.HasPrefix(lower, strings.ToLower(name)) {
			return name, true
		}
	}
	return "", false
}
