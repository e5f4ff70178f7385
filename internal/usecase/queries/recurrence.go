package queries

import (
	"context"

	"roombook/internal/infra"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRecurrenceGroupNotFound = errs.New("recurrence group not found")
	ErrRecurrenceGroupAccess   = errs.New("recurrence group access denied")
)

type RecurrenceReadStore interface {
	FindGroupByID(ctx context.Context, id uuid.UUID) (*RecurrenceGroupView, error)
	FindOccurrences(ctx context.Context, groupID uuid.UUID) ([]*BookingListItem, error)
}

type GroupWithOccurrences struct {
	Group       *RecurrenceGroupView `json:"group"`
	Occurrences []*BookingListItem   `json:"occurrences"`
}

type RecurrenceQueries interface {
	GetGroup(ctx context.Context, actorID uuid.UUID, isAdmin bool, groupID uuid.UUID) (*GroupWithOccurrences, error)
	GetGroupByIDSystem(ctx context.Context, groupID uuid.UUID) (*RecurrenceGroupView, error)
	ListOccurrencesSystem(ctx context.Context, groupID uuid.UUID) ([]*BookingListItem, error)
}

type recurrenceQueriesImpl struct {
	readStore RecurrenceReadStore
}

func NewRecurrenceQueries(readStore RecurrenceReadStore) RecurrenceQueries {
	return &recurrenceQueriesImpl{readStore: readStore}
}

func (q *recurrenceQueriesImpl) GetGroup(ctx context.Context, actorID uuid.UUID, isAdmin bool, groupID uuid.UUID) (*GroupWithOccurrences, error) {
	group, err := q.GetGroupByIDSystem(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && group.UserID != actorID {
		return nil, ErrRecurrenceGroupAccess
	}

	occurrences, err := q.readStore.FindOccurrences(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &GroupWithOccurrences{Group: group, Occurrences: occurrences}, nil
}

func (q *recurrenceQueriesImpl) GetGroupByIDSystem(ctx context.Context, groupID uuid.UUID) (*RecurrenceGroupView, error) {
	group, err := q.readStore.FindGroupByID(ctx, groupID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRecurrenceGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (q *recurrenceQueriesImpl) ListOccurrencesSystem(ctx context.Context, groupID uuid.UUID) ([]*BookingListItem, error) {
	return q.readStore.FindOccurrences(ctx, groupID)
}
