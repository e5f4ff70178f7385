package readstore

import (
	"context"

	"roombook/internal/infra"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationReadStore struct {
	db *pgxpool.Pool
}

func NewNotificationReadStore(db *pgxpool.Pool) *NotificationReadStore {
	return &NotificationReadStore{db: db}
}

func (r *NotificationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.NotificationView, error) {
	const query = `
		SELECT id, user_id, type, message, booking_id, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notifications", err, infra.ClassifyPgErr(err))
	}
	defer rows.Close()

	var views []*queries.NotificationView
	for rows.Next() {
		var (
			view      queries.NotificationView
			bookingID pgtype.UUID
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&view.ID, &view.UserID, &view.Type, &view.Message, &bookingID, &view.IsRead, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to read notification", err, infra.ClassifyPgErr(err))
		}
		view.BookingID = pgconv.UUIDPtrFromPgtype(bookingID)
		view.CreatedAt = createdAt.Time
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notifications", err, infra.ClassifyPgErr(err))
	}
	return views, nil
}

func (r *NotificationReadStore) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `SELECT count(*) FROM notifications WHERE user_id = $1 AND is_read = false`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count unread notifications", err, infra.ClassifyPgErr(err))
	}
	return count, nil
}
