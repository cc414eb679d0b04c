// File path: internal/report/assembler.go
package report

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dca-labs/reportbot/internal/common"
	"github.com/dca-labs/reportbot/internal/enhance"
	"github.com/dca-labs/reportbot/internal/session"
)

// DateLayout is the report date format, day first.
const DateLayout = "02/01/2006"

// Fallback metadata used when a session field is empty at assembly time.
const (
	defaultManagerName = "Training Manager"
	defaultForceName   = "Training Force"
	defaultLocation    = "Training Location"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanForceName trims the force name and collapses every internal
// whitespace run into a single underscore.
func CleanForceName(name string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
}

// PrimaryKey derives the record key from a formatted date and a force name.
// Two sessions for the same force on the same day collide; the key is not
// disambiguated further.
func PrimaryKey(date, forceName string) string {
	return date + "_" + CleanForceName(forceName)
}

// Assembler derives a Record from a completed session, enhancing the raw
// text through the configured provider.
type Assembler struct {
	provider enhance.Provider
	now      func() time.Time
}

// NewAssembler builds an assembler. A nil clock defaults to time.Now.
func NewAssembler(provider enhance.Provider, now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	return &Assembler{provider: provider, now: now}
}

// Assemble enhances the session's raw text and merges the parsed sections,
// grades and sentinel-substituted links into one record. The primary key is
// computed once, before any external call.
func (a *Assembler) Assemble(ctx context.Context, sess session.Session) (Record, error) {
	logger := common.Logger()
	date := a.now().Format(DateLayout)

	managerName := orDefault(sess.ManagerName, defaultManagerName)
	forceName := orDefault(sess.ForceName, defaultForceName)
	location := orDefault(sess.Location, defaultLocation)

	key := PrimaryKey(date, forceName)
	logger.Info("report: assembling record", "primary_key", key, "provider", a.provider.Name())

	prose, err := a.provider.Enhance(ctx, enhance.Request{
		RawText:     sess.RawText,
		Date:        date,
		ManagerName: managerName,
		ForceName:   forceName,
		Location:    location,
	})
	if err != nil {
		return Record{}, fmt.Errorf("enhance text: %w", err)
	}
	sections := enhance.ParseSections(prose)

	return Record{
		PrimaryKey: key,
		Date:       date,
		ForceName:  forceName,
		Sections: Sections{
			Scenario1: sections[enhance.SectionExercise1],
			Scenario2: sections[enhance.SectionExercise2],
		},
		Grades:      sess.Grades,
		PollLink:    orDefault(sess.PollLink, NoLink),
		YouTubeLink: orDefault(sess.YouTubeLink, NoLink),
	}, nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
