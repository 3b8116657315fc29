package record

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mrsinham/ctdose/internal/checklist"
)

// ErrIncompleteChecklist is returned by Submit when a checklist item is unconfirmed.
var ErrIncompleteChecklist = errors.New("incomplete checklist")

// ValidationError reports a rejected submission and the items left unconfirmed.
type ValidationError struct {
	Mode    checklist.Mode
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %d item(s) unconfirmed for %s: %s",
		ErrIncompleteChecklist, len(e.Missing), e.Mode, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrIncompleteChecklist }

// Session accumulates the dose records of one interactive session.
// It is owned by a single goroutine and is not safe for concurrent use.
type Session struct {
	records []DoseRecord
	last    *DoseRecord

	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used to date new records.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger used for submission events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession returns an empty session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates state against the checklist composed for mode and, when
// every item is confirmed, appends a new record built from f.
// On failure it returns a *ValidationError and leaves the session unchanged.
func (s *Session) Submit(f Fields, mode checklist.Mode, state checklist.State) (DoseRecord, error) {
	items := checklist.Compose(mode)
	if !checklist.Validate(items, state) {
		missing := checklist.Missing(items, state)
		s.logger.Info("submission rejected",
			zap.String("contrast", mode.Slug()),
			zap.Int("missing", len(missing)))
		return DoseRecord{}, &ValidationError{Mode: mode, Missing: missing}
	}

	rec := newRecord(f, s.now())
	s.records = append(s.records, rec)
	last := rec
	s.last = &last

	s.logger.Info("record added",
		zap.String("contrast", mode.Slug()),
		zap.Int("records", len(s.records)),
		zap.Float64("ctdivol", rec.CTDIvol),
		zap.Float64("dlp", rec.DLP))
	return rec, nil
}

// Records returns a copy of the records in submission order.
func (s *Session) Records() []DoseRecord {
	out := make([]DoseRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Session) Len() int { return len(s.records) }

// Last returns the most recently submitted record.
func (s *Session) Last() (DoseRecord, bool) {
	if s.last == nil {
		return DoseRecord{}, false
	}
	return *s.last, true
}
