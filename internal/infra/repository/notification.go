package repository

import (
	"context"
	"time"

	"travel-booking/internal/infra"
	"travel-booking/internal/infra/db"
	"travel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// retryDelay is multiplied by the attempt count when a job is requeued.
const retryDelay = 30 * time.Second

const (
	createNotificationJobSQL = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, $5)`

	// SKIP LOCKED lets several dispatchers share the queue
	claimDueNotificationJobsSQL = `
SELECT id, kind, topic, payload, run_at, attempts
FROM notification_jobs
WHERE status = 'queued' AND run_at <= $1
ORDER BY run_at, id
LIMIT $2
FOR UPDATE SKIP LOCKED`

	updateNotificationJobStatusSQL = `
UPDATE notification_jobs
SET status = $2,
    last_error = $3,
    attempts = attempts + CASE WHEN $3::text IS NULL THEN 0 ELSE 1 END,
    run_at = CASE WHEN $2 = 'queued' THEN now() + (attempts + 1) * $4::interval ELSE run_at END,
    updated_at = now()
WHERE id = $1`
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, createNotificationJobSQL, kind, topic, payload, runAt, shared.JobStatusQueued)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

func (r *NotificationRepository) ClaimDue(ctx context.Context, tx db.DBTX, now time.Time, limit int) ([]shared.NotificationJob, error) {
	rows, err := tx.Query(ctx, claimDueNotificationJobsSQL, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (shared.NotificationJob, error) {
		var j shared.NotificationJob
		err := row.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.RunAt, &j.Attempts)
		return j, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}
	return jobs, nil
}

// UpdateJobStatus counts an attempt whenever lastError is set.
func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, tx db.DBTX, jobID uuid.UUID, status string, lastError *string) error {
	errText := pgtype.Text{Valid: false}
	if lastError != nil {
		errText = pgtype.Text{String: *lastError, Valid: true}
	}

	tag, err := tx.Exec(ctx, updateNotificationJobStatusSQL, jobID, status, errText, retryDelay)
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
	}
	return nil
}
