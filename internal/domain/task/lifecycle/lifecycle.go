// Package lifecycle holds the task status rules that depend on wall-clock time.
package lifecycle

import (
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/errors"
	"github.com/Miraines/MoonyAndStarry/task-service/internal/domain/task/model"
)

// EffectiveStatus is the status a task presents at instant now.
// A task past its expiry is expired unless it was already done.
func EffectiveStatus(t model.Task, now time.Time) model.TaskStatus {
	if t.Status != model.StatusDone && t.ExpiresAt.Before(now) {
		return model.StatusExpired
	}
	return t.Status
}

// Apply moves t to its effective status and reports whether it changed.
func Apply(t *model.Task, now time.Time) bool {
	next := EffectiveStatus(*t, now)
	if next == t.Status {
		return false
	}
	t.Status = next
	return true
}

// ApplyAll runs Apply over tasks and returns the ones that changed.
func ApplyAll(tasks []model.Task, now time.Time) []model.Task {
	var changed []model.Task
	for i := range tasks {
		if Apply(&tasks[i], now) {
			changed = append(changed, tasks[i])
		}
	}
	return changed
}

// ValidateExpiry rejects an expiry that is already behind now.
func ValidateExpiry(expiresAt, now time.Time, msg string) error {
	if expiresAt.Before(now) {
		return customErrors.NewValidation(msg, map[string]string{"expires_at": "must not be in the past"})
	}
	return nil
}
