// File path: internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dca-labs/reportbot/internal/document"
	"github.com/dca-labs/reportbot/internal/grades"
	"github.com/dca-labs/reportbot/internal/report"
)

type fakeInserter struct {
	err     error
	records []report.Record
}

func (f *fakeInserter) InsertReport(ctx context.Context, rec report.Record) (string, error) {
	f.records = append(f.records, rec)
	if f.err != nil {
		return "", f.err
	}
	return "id-1", nil
}

type fakeRenderer struct {
	dir   string
	err   error
	calls int
}

func (f *fakeRenderer) Render(in document.Input, key string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(f.dir, document.FileStem(key)+".md")
	if err := os.WriteFile(path, []byte("doc"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type fakeSender struct {
	messages  []string
	documents []string
	sendErr   error
}

func (f *fakeSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeSender) SendDocument(ctx context.Context, chatID int64, path string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.documents = append(f.documents, path)
	return nil
}

func sampleRecord() report.Record {
	return report.Record{
		PrimaryKey:  "01/01/2025_Alpha_Team",
		Date:        "01/01/2025",
		ForceName:   "Alpha Team",
		Sections:    report.Sections{Scenario1: "one", Scenario2: "two"},
		Grades:      grades.Payload{"math": 90},
		PollLink:    "http://poll",
		YouTubeLink: report.NoLink,
	}
}

func newTestPipeline(t *testing.T, inserter *fakeInserter, renderer *fakeRenderer, sender *fakeSender) *Pipeline {
	t.Helper()
	if renderer.dir == "" {
		renderer.dir = t.TempDir()
	}
	pipe, err := New(inserter, renderer, sender, t.TempDir())
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	return pipe
}

func TestRunDeliversBothArtifacts(t *testing.T) {
	inserter := &fakeInserter{}
	renderer := &fakeRenderer{}
	sender := &fakeSender{}
	pipe := newTestPipeline(t, inserter, renderer, sender)

	res := pipe.Run(context.Background(), 7, sampleRecord(), "Dana")
	if res.Err != nil {
		t.Fatalf("run failed: %v", res.Err)
	}
	if res.RecordID != "id-1" {
		t.Fatalf("expected captured identifier, got %q", res.RecordID)
	}
	if len(inserter.records) != 1 {
		t.Fatalf("expected one persistence call, got %d", len(inserter.records))
	}
	if renderer.calls != 1 {
		t.Fatalf("expected one render call, got %d", renderer.calls)
	}
	if len(sender.documents) != 2 {
		t.Fatalf("expected two document deliveries, got %d", len(sender.documents))
	}
	if got := sender.messages[len(sender.messages)-1]; got != msgSuccess {
		t.Fatalf("expected final acknowledgment, got %q", got)
	}

	data, err := os.ReadFile(res.RecordPath)
	if err != nil {
		t.Fatalf("read record file: %v", err)
	}
	for _, want := range []string{`"primary_key": "01/01/2025_Alpha_Team"`, `"youtube_link": "NONE"`, `"poll_link": "http://poll"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("record file missing %q:\n%s", want, data)
		}
	}
}

func TestRunContinuesPastPersistFailure(t *testing.T) {
	inserter := &fakeInserter{err: errors.New("db down")}
	renderer := &fakeRenderer{}
	sender := &fakeSender{}
	pipe := newTestPipeline(t, inserter, renderer, sender)

	res := pipe.Run(context.Background(), 7, sampleRecord(), "Dana")
	if res.Err != nil {
		t.Fatalf("persist failure must not abort the run: %v", res.Err)
	}
	if renderer.calls != 1 {
		t.Fatalf("expected render despite persist failure, got %d calls", renderer.calls)
	}
	if len(sender.documents) != 2 {
		t.Fatalf("expected both deliveries despite persist failure, got %d", len(sender.documents))
	}
	if sender.messages[0] != msgUploadFailed {
		t.Fatalf("expected upload failure notice first, got %q", sender.messages[0])
	}
	if res.Stages[0].Stage != StagePersist || res.Stages[0].Err == nil {
		t.Fatalf("persist stage result not recorded: %+v", res.Stages[0])
	}
}

func TestRunAbortsOnRenderFailure(t *testing.T) {
	inserter := &fakeInserter{}
	renderer := &fakeRenderer{err: errors.New("render broken")}
	sender := &fakeSender{}
	pipe := newTestPipeline(t, inserter, renderer, sender)

	res := pipe.Run(context.Background(), 7, sampleRecord(), "Dana")
	if res.Err == nil {
		t.Fatalf("expected fatal render failure")
	}
	if len(sender.documents) != 0 {
		t.Fatalf("no documents should be delivered after render failure")
	}
	if got := sender.messages[len(sender.messages)-1]; got != GenericFailureMessage {
		t.Fatalf("expected generic failure message, got %q", got)
	}
}

func TestRunAbortsOnDeliveryFailure(t *testing.T) {
	inserter := &fakeInserter{}
	renderer := &fakeRenderer{}
	sender := &fakeSender{sendErr: errors.New("transport down")}
	pipe := newTestPipeline(t, inserter, renderer, sender)

	res := pipe.Run(context.Background(), 7, sampleRecord(), "Dana")
	if res.Err == nil {
		t.Fatalf("expected fatal delivery failure")
	}
	if got := sender.messages[len(sender.messages)-1]; got != GenericFailureMessage {
		t.Fatalf("expected generic failure message, got %q", got)
	}
}
