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

type RecurrenceReadStore struct {
	db       *pgxpool.Pool
	bookings *BookingReadStore
}

func NewRecurrenceReadStore(db *pgxpool.Pool, bookings *BookingReadStore) *RecurrenceReadStore {
	return &RecurrenceReadStore{
		db:       db,
		bookings: bookings,
	}
}

func (r *RecurrenceReadStore) FindGroupByID(ctx context.Context, id uuid.UUID) (*queries.RecurrenceGroupView, error) {
	const query = `
		SELECT g.id, g.room_id, rm.name, g.user_id, g.purpose, g.attendees, g.notes,
		       g.day_of_week, g.start_time, g.end_time, g.start_date, g.end_date,
		       g.status, g.created_at, g.updated_at
		FROM recurrence_groups g
		JOIN rooms rm ON rm.id = g.room_id
		WHERE g.id = $1`

	var (
		view                 queries.RecurrenceGroupView
		notes                string
		startDate, endDate   pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.RoomID, &view.RoomName, &view.UserID, &view.Purpose, &view.Attendees, &notes,
		&view.DayOfWeek, &view.StartClock, &view.EndClock, &startDate, &endDate,
		&view.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("recurrence group not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find recurrence group", err, infra.ClassifyPgErr(err))
	}

	if notes != "" {
		view.Notes = &notes
	}
	view.StartDate = startDate.Time
	view.EndDate = endDate.Time
	view.CreatedAt = createdAt.Time
	view.UpdatedAt = updatedAt.Time
	return &view, nil
}

func (r *RecurrenceReadStore) FindOccurrences(ctx context.Context, groupID uuid.UUID) ([]*queries.BookingListItem, error) {
	return r.bookings.FindByGroupID(ctx, groupID)
}
