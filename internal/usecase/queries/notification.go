package queries

import (
	"context"

	"github.com/google/uuid"
)

type NotificationReadStore interface {
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*NotificationView, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type NotificationQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*NotificationView, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationQueriesImpl struct {
	readStore NotificationReadStore
}

func NewNotificationQueries(readStore NotificationReadStore) NotificationQueries {
	return &notificationQueriesImpl{readStore: readStore}
}

func (q *notificationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*NotificationView, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return q.readStore.FindByUserID(ctx, userID, int32(limit))
}

func (q *notificationQueriesImpl) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return q.readStore.CountUnread(ctx, userID)
}
