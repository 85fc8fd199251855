package attendance

import (
	"context"
	"time"

	"github.com/Mahanoorfarooq/Madrassa-Management-System-sub003/models"
)

// DateLayout is the calendar-day format used throughout the record keys.
const DateLayout = "2006-01-02"

const clockLayout = "15:04"

// PolicyService reads and writes the daily cutoff policy.
type PolicyService struct {
	Store PolicyStore
}

// Get returns the student-attendance cutoff policy, creating it with the
// default (22:00, enabled) if no row exists yet.
func (s *PolicyService) Get(ctx context.Context) (models.CutoffPolicy, error) {
	return s.Store.GetOrCreatePolicy(ctx, models.CutoffPolicy{
		Key:        models.PolicyStudentAttendance,
		CutoffTime: models.DefaultCutoffTime,
		Enabled:    true,
	})
}

// Set upserts the cutoff time and/or enabled flag. Role checks happen at the
// HTTP edge; updatedBy records who changed it.
func (s *PolicyService) Set(ctx context.Context, patch PolicyPatch, updatedBy uint) (models.CutoffPolicy, error) {
	if patch.CutoffTime != nil {
		if _, err := time.Parse(clockLayout, *patch.CutoffTime); err != nil {
			return models.CutoffPolicy{}, ValidationError("INVALID_CUTOFF_TIME")
		}
	}
	return s.Store.UpdatePolicy(ctx, models.PolicyStudentAttendance, patch, updatedBy)
}

// DirectlyEditable reports whether day may still be edited without an edit
// request. Only today is ever directly editable: past (and future) days go
// through the request path regardless of the policy, so backdating stays
// controlled even with the lock disabled. When the policy is enabled, today
// closes once now passes the cutoff time.
func DirectlyEditable(day string, now time.Time, pol models.CutoffPolicy) bool {
	if day != now.Format(DateLayout) {
		return false
	}
	if !pol.Enabled {
		return true
	}
	cut, err := time.Parse(clockLayout, pol.CutoffTime)
	if err != nil {
		// An unparseable cutoff behaves like a disabled lock.
		return true
	}
	deadline := time.Date(now.Year(), now.Month(), now.Day(), cut.Hour(), cut.Minute(), 0, 0, now.Location())
	return !now.After(deadline)
}
