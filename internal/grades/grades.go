// File path: internal/grades/grades.go

// Package grades implements the nested numeric sub-dialog that collects
// per-category exercise grades inside a report conversation. The controller
// hands every incoming reply to the collector while grade collection is in
// progress; the collector signals completion together with the final payload.
package grades

import (
	"fmt"
	"strconv"
	"strings"
)

// ContinueToken is the reply that starts grade collection after the
// location step.
const ContinueToken = "המשך"

// Payload maps a grade category to its numeric score.
type Payload map[string]int

// DefaultCategories are the grade categories collected for a training report.
var DefaultCategories = []string{
	"עבודת צוות",
	"פיקוד ושליטה",
	"מקצועיות",
	"עמידה בזמנים",
}

// Collector drives the grade sub-dialog over a fixed category list.
type Collector struct {
	categories []string
}

// NewCollector returns a collector over the provided categories, falling
// back to DefaultCategories when none are given.
func NewCollector(categories ...string) *Collector {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return &Collector{categories: append([]string(nil), categories...)}
}

// Categories returns the category list in collection order.
func (c *Collector) Categories() []string {
	return append([]string(nil), c.categories...)
}

// Progress tracks a conversation's position inside the sub-dialog. The zero
// value means collection has not started yet.
type Progress struct {
	Started bool
	Index   int
	Scores  Payload
}

// Collect consumes one reply and returns the updated progress, the next
// outbound prompt, and whether collection finished. Before the continue
// token arrives every reply re-issues the trigger prompt; a reply that does
// not parse as a score in [0,100] re-issues the current category prompt.
func (c *Collector) Collect(p Progress, reply string) (Progress, string, bool) {
	reply = strings.TrimSpace(reply)
	if !p.Started {
		if reply != ContinueToken {
			return p, fmt.Sprintf("אנא שלח \"%s\" כדי לעבור לציונים", ContinueToken), false
		}
		p.Started = true
		p.Scores = make(Payload, len(c.categories))
		return p, c.prompt(0), false
	}
	score, err := strconv.Atoi(reply)
	if err != nil || score < 0 || score > 100 {
		return p, "ציון לא תקין, אנא הכנס מספר בין 0 ל-100.\n" + c.prompt(p.Index), false
	}
	p.Scores[c.categories[p.Index]] = score
	p.Index++
	if p.Index < len(c.categories) {
		return p, c.prompt(p.Index), false
	}
	return p, "", true
}

func (c *Collector) prompt(i int) string {
	return fmt.Sprintf("אנא הכנס ציון (0-100) עבור: %s", c.categories[i])
}
