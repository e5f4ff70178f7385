package commands

import (
	"context"

	"roombook/internal/infra"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errs.New("notification not found")

// NotificationRepository scopes every write by owner so one user cannot
// touch another user's notifications.
type NotificationRepository interface {
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type NotificationCommands interface {
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type notificationCommandsImpl struct {
	repo NotificationRepository
}

func NewNotificationCommands(repo NotificationRepository) NotificationCommands {
	return &notificationCommandsImpl{repo: repo}
}

func (c *notificationCommandsImpl) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := c.repo.MarkRead(ctx, id, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrNotificationNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *notificationCommandsImpl) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := c.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return count, nil
}

func (c *notificationCommandsImpl) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := c.repo.Delete(ctx, id, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrNotificationNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
