// File path: internal/pipeline/pipeline.go

// Package pipeline executes the ordered persistence and delivery steps for
// an assembled report: catalog insert, document render, document delivery,
// record-file write, record-file delivery and the final acknowledgment.
//
// The pipeline is deliberately best-effort rather than transactional: a
// failed catalog insert is reported to the user and the remaining steps
// still run. Every other failure aborts the run, is logged once at the
// pipeline boundary and surfaces to the user as a single generic message.
// Nothing is retried and delivered artifacts are never retracted.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dca-labs/reportbot/internal/common"
	"github.com/dca-labs/reportbot/internal/document"
	"github.com/dca-labs/reportbot/internal/report"
	"github.com/dca-labs/reportbot/internal/transport"
)

// Stage identifies one pipeline step.
type Stage string

const (
	StagePersist         Stage = "persist"
	StageRenderDocument  Stage = "render_document"
	StageDeliverDocument Stage = "deliver_document"
	StageWriteRecord     Stage = "write_record"
	StageDeliverRecord   Stage = "deliver_record"
	StageAcknowledge     Stage = "acknowledge"
)

// Messages sent to the user around pipeline execution.
const (
	msgUploadOK     = "JSON successfully uploaded with ID: %s"
	msgUploadFailed = "Failed to upload JSON to the database."
	msgSuccess      = "The report was generated and sent successfully. Thank you!"

	// GenericFailureMessage is the single user-visible message for any
	// fatal failure between assembly and delivery.
	GenericFailureMessage = "An error occurred while generating the report. Please try again later."
)

const documentTitle = "Training Report"

// Inserter is the catalog surface the pipeline needs.
type Inserter interface {
	InsertReport(ctx context.Context, rec report.Record) (string, error)
}

// DocumentRenderer produces the document artifact for a record key.
type DocumentRenderer interface {
	Render(in document.Input, key string) (string, error)
}

// StageResult records the outcome of a single stage.
type StageResult struct {
	Stage Stage
	Err   error
}

// Result is the outcome of one pipeline run. Err is the fatal error that
// aborted the run, nil for a fully or best-effort successful run.
type Result struct {
	Stages       []StageResult
	RecordID     string
	DocumentPath string
	RecordPath   string
	Err          error
}

// Pipeline wires the delivery steps against their external collaborators.
type Pipeline struct {
	catalog  Inserter
	renderer DocumentRenderer
	sender   transport.Sender
	outDir   string
}

// New builds a pipeline writing record files under outDir.
func New(catalog Inserter, renderer DocumentRenderer, sender transport.Sender, outDir string) (*Pipeline, error) {
	if renderer == nil {
		return nil, fmt.Errorf("document renderer required")
	}
	if sender == nil {
		return nil, fmt.Errorf("sender required")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Pipeline{catalog: catalog, renderer: renderer, sender: sender, outDir: outDir}, nil
}

// Run executes the delivery steps for a record once. The signature is the
// exercise manager's name, placed at the foot of the rendered document.
func (p *Pipeline) Run(ctx context.Context, chatID int64, rec report.Record, signature string) Result {
	logger := common.Logger()
	var res Result

	fail := func(stage Stage, err error) Result {
		res.Stages = append(res.Stages, StageResult{Stage: stage, Err: err})
		res.Err = fmt.Errorf("%s: %w", stage, err)
		logger.Error("pipeline: run failed", "stage", string(stage), "primary_key", rec.PrimaryKey, "error", err)
		if sendErr := p.sender.SendMessage(ctx, chatID, GenericFailureMessage); sendErr != nil {
			logger.Error("pipeline: failure notice undeliverable", "error", sendErr)
		}
		return res
	}

	// Persist first; failure here is reported but does not stop delivery.
	id, err := p.catalog.InsertReport(ctx, rec)
	res.Stages = append(res.Stages, StageResult{Stage: StagePersist, Err: err})
	if err != nil {
		logger.Error("pipeline: persist failed", "primary_key", rec.PrimaryKey, "error", err)
		if sendErr := p.sender.SendMessage(ctx, chatID, msgUploadFailed); sendErr != nil {
			return fail(StagePersist, sendErr)
		}
	} else {
		res.RecordID = id
		logger.Info("pipeline: record persisted", "primary_key", rec.PrimaryKey, "id", id)
		if sendErr := p.sender.SendMessage(ctx, chatID, fmt.Sprintf(msgUploadOK, id)); sendErr != nil {
			return fail(StagePersist, sendErr)
		}
	}

	docPath, err := p.renderer.Render(document.Input{
		Title:       documentTitle,
		Date:        rec.Date,
		Signature:   signature,
		Sections:    rec.Sections,
		Grades:      rec.Grades,
		YouTubeLink: rec.YouTubeLink,
		PollLink:    rec.PollLink,
	}, rec.PrimaryKey)
	if err != nil {
		return fail(StageRenderDocument, err)
	}
	res.DocumentPath = docPath
	res.Stages = append(res.Stages, StageResult{Stage: StageRenderDocument})

	if err := p.sender.SendDocument(ctx, chatID, docPath); err != nil {
		return fail(StageDeliverDocument, err)
	}
	res.Stages = append(res.Stages, StageResult{Stage: StageDeliverDocument})

	recordPath, err := p.writeRecordFile(rec)
	if err != nil {
		return fail(StageWriteRecord, err)
	}
	res.RecordPath = recordPath
	res.Stages = append(res.Stages, StageResult{Stage: StageWriteRecord})

	if err := p.sender.SendDocument(ctx, chatID, recordPath); err != nil {
		return fail(StageDeliverRecord, err)
	}
	res.Stages = append(res.Stages, StageResult{Stage: StageDeliverRecord})

	if err := p.sender.SendMessage(ctx, chatID, msgSuccess); err != nil {
		return fail(StageAcknowledge, err)
	}
	res.Stages = append(res.Stages, StageResult{Stage: StageAcknowledge})
	logger.Info("pipeline: run completed", "primary_key", rec.PrimaryKey)
	return res
}

// writeRecordFile serializes the full record, indented UTF-8 JSON, to a file
// named after the primary key. It runs regardless of persistence outcome.
func (p *Pipeline) writeRecordFile(rec report.Record) (string, error) {
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	path := filepath.Join(p.outDir, document.FileStem(rec.PrimaryKey)+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write record file: %w", err)
	}
	return path, nil
}
