package storage

import (
	"context"
	"errors"

	"github.com/rowestoli/QuackLog/internal"
)

// ErrNotFound is returned when a submission does not exist or belongs to a
// different user.
var ErrNotFound = errors.New("storage: submission not found")

// SubmissionRepository persists log submissions. All List methods return
// submissions ordered by created_at descending.
type SubmissionRepository interface {
	SaveSubmission(ctx context.Context, sub *internal.LogSubmission) error
	ListSubmissions(ctx context.Context, userID string) ([]internal.LogSubmission, error)
	ListSubmissionsByDate(ctx context.Context, userID, date string) ([]internal.LogSubmission, error)
	ListRecentSubmissions(ctx context.Context, userID string, limit int) ([]internal.LogSubmission, error)
	DeleteSubmission(ctx context.Context, userID, id string) error
}
