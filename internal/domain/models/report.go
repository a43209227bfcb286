package models

import (
	"sync"
	"time"

	"go.uber.org/multierr"
)

// RunReport накапливает итоги одного прохода; методы безопасны для конкурентного вызова.
type RunReport struct {
	mu sync.Mutex

	StartedAt       time.Time `json:"startedAt"`
	FinishedAt      time.Time `json:"finishedAt"`
	Posts           int       `json:"posts"`
	SkippedPosts    int       `json:"skippedPosts"`
	Candidates      int       `json:"candidates"`
	ValidLinks      int       `json:"validLinks"`
	InvalidLinks    int       `json:"invalidLinks"`
	ConfirmedGifts  int       `json:"confirmedGifts"`
	Notifications   int       `json:"notifications"`
	DeadlineReached bool      `json:"deadlineReached"`

	errs error
}

func NewRunReport(startedAt time.Time) *RunReport {
	return &RunReport{StartedAt: startedAt}
}

func (r *RunReport) Update(fn func(r *RunReport)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn(r)
}

func (r *RunReport) AddError(err error) {
	if err == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.errs = multierr.Append(r.errs, err)
}

// Err возвращает все некритичные ошибки прохода одной ошибкой.
func (r *RunReport) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.errs
}

func (r *RunReport) Errors() []error {
	return multierr.Errors(r.Err())
}
