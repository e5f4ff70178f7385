package repository

import (
	"context"

	"roombook/internal/infra"
	"roombook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, tx infra.DBTX, userID uuid.UUID, kind, message string, bookingID *uuid.UUID) error {
	const query = `
		INSERT INTO notifications (id, user_id, type, message, booking_id)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query, uuid.New(), userID, kind, message, pgconv.UUIDPtrToPgtype(bookingID))
	if err != nil {
		return infra.WrapRepoErr("failed to create notification", err, infra.ClassifyPgErr(err))
	}
	return nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	const query = `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1 AND user_id = $2`

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification read", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("notification not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		UPDATE notifications
		SET is_read = true
		WHERE user_id = $1 AND is_read = false`

	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark notifications read", err, infra.ClassifyPgErr(err))
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	const query = `DELETE FROM notifications WHERE id = $1 AND user_id = $2`

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete notification", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("notification not found", nil, infra.KindNotFound)
	}
	return nil
}
