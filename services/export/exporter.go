package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"reservodojo/services/scenario"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	CompletionsFile = "completions.csv"
	finishedLayout  = "2006-01-02 15:04:05"
)

var completionHeaders = []string{
	"finished_at",
	"task_id",
	"booking_number",
	"task_file",
	"guest_name",
	"guest_comment",
	"room_category",
	"guests",
	"arrival",
	"departure",
	"extra_services",
	"follow_up",
}

// Exporter writes one report file per task plus a running completions log.
type Exporter struct {
	Dir    string
	Logger *zap.Logger

	mu sync.Mutex
}

func NewExporter(dir string, logger *zap.Logger) *Exporter {
	return &Exporter{Dir: dir, Logger: logger}
}

// HandleTask is the asynq handler for task:export.
func (e *Exporter) HandleTask(ctx context.Context, task *asynq.Task) error {
	p, err := ParsePayload(task)
	if err != nil {
		// A malformed payload never succeeds, so don't retry it.
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	return e.Export(ctx, p)
}

// Export writes the report file and appends the completions row. The report
// file is overwritten on redelivery; the csv row is appended once per call.
func (e *Exporter) Export(ctx context.Context, p Payload) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	name := scenario.TaskFileName(p.GeneratedID, p.BookingNumber)
	report := scenario.RenderTaskReport(p.Scenario, p.BookingNumber, p.GeneratedID, p.FollowUp, p.FinishedAt)
	if err := os.WriteFile(filepath.Join(e.Dir, name), []byte(report), 0o644); err != nil {
		return fmt.Errorf("write task file %s: %w", name, err)
	}
	if err := e.appendCompletion(p, name); err != nil {
		return err
	}

	if e.Logger != nil {
		e.Logger.Info("Exported task",
			zap.String("taskId", p.TaskID),
			zap.String("file", name),
		)
	}
	return nil
}

func (e *Exporter) appendCompletion(p Payload, taskFile string) error {
	path := filepath.Join(e.Dir, CompletionsFile)
	_, statErr := os.Stat(path)
	writeHeader := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open completions log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(completionHeaders); err != nil {
			return fmt.Errorf("write completions header: %w", err)
		}
	}
	s := p.Scenario
	row := []string{
		p.FinishedAt.Format(finishedLayout),
		p.GeneratedID,
		p.BookingNumber,
		taskFile,
		s.GuestName,
		s.GuestComment,
		s.RoomCategory,
		strconv.Itoa(s.GuestCount),
		s.Arrival,
		s.Departure,
		s.ExtraServices,
		p.FollowUp,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write completions row: %w", err)
	}
	w.Flush()
	return w.Error()
}
