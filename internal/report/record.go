// File path: internal/report/record.go

// Package report turns a completed conversation session into the immutable
// record that gets persisted and delivered.
package report

import "github.com/dca-labs/reportbot/internal/grades"

// NoLink is the sentinel stored in a record when the user answered the
// negative token for an optional link.
const NoLink = "NONE"

// Sections holds the two enhanced exercise sections.
type Sections struct {
	Scenario1 string `json:"scenario_1"`
	Scenario2 string `json:"scenario_2"`
}

// Record is the assembled training report. It is immutable once built:
// persistence and delivery consume it as a snapshot.
type Record struct {
	PrimaryKey  string         `json:"primary_key"`
	Date        string         `json:"date"`
	ForceName   string         `json:"force_name"`
	Sections    Sections       `json:"gpt_output"`
	Grades      grades.Payload `json:"grades"`
	PollLink    string         `json:"poll_link"`
	YouTubeLink string         `json:"youtube_link"`
}
