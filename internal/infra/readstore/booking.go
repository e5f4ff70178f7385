package readstore

import (
	"context"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/schedule"
	"roombook/internal/infra"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingReadStore struct {
	db *pgxpool.Pool
}

func NewBookingReadStore(db *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT b.id, b.room_id, rm.name, rm.location, b.user_id, u.name,
		       lower(b.slot), upper(b.slot), b.purpose, b.attendees, b.notes,
		       b.status, b.recurrence_group_id, b.created_at, b.updated_at
		FROM bookings b
		JOIN rooms rm ON rm.id = b.room_id
		JOIN users u ON u.id = b.user_id
		WHERE b.id = $1`

	var (
		view      queries.BookingView
		notes     string
		groupID   pgtype.UUID
		start     pgtype.Timestamptz
		end       pgtype.Timestamptz
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.RoomID, &view.RoomName, &view.RoomLocation, &view.UserID, &view.UserName,
		&start, &end, &view.Purpose, &view.Attendees, &notes,
		&view.Status, &groupID, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err, infra.ClassifyPgErr(err))
	}

	if notes != "" {
		view.Notes = &notes
	}
	view.StartTime = start.Time
	view.EndTime = end.Time
	view.Status = booking.EffectiveStatus(booking.Status(view.Status), end.Time, time.Now().UTC()).String()
	view.RecurrenceGroupID = pgconv.UUIDPtrFromPgtype(groupID)
	view.CreatedAt = createdAt.Time
	view.UpdatedAt = updatedAt.Time
	return &view, nil
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.room_id, rm.name, lower(b.slot), upper(b.slot),
		       b.purpose, b.attendees, b.status, b.recurrence_group_id, b.created_at
		FROM bookings b
		JOIN rooms rm ON rm.id = b.room_id
		WHERE b.user_id = $1
		ORDER BY lower(b.slot) DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err, infra.ClassifyPgErr(err))
	}
	return scanBookingList(rows)
}

func (r *BookingReadStore) FindByRoomIDInRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.room_id, rm.name, lower(b.slot), upper(b.slot),
		       b.purpose, b.attendees, b.status, b.recurrence_group_id, b.created_at
		FROM bookings b
		JOIN rooms rm ON rm.id = b.room_id
		WHERE b.room_id = $1 AND b.slot && tstzrange($2, $3, '[)')
		ORDER BY lower(b.slot)`

	rows, err := r.db.Query(ctx, query, roomID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by room", err, infra.ClassifyPgErr(err))
	}
	return scanBookingList(rows)
}

func (r *BookingReadStore) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT b.id, b.room_id, rm.name, lower(b.slot), upper(b.slot),
		       b.purpose, b.attendees, b.status, b.recurrence_group_id, b.created_at
		FROM bookings b
		JOIN rooms rm ON rm.id = b.room_id
		WHERE b.recurrence_group_id = $1
		ORDER BY lower(b.slot)`

	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by group", err, infra.ClassifyPgErr(err))
	}
	return scanBookingList(rows)
}

// ConfirmedSlots are the intervals that participate in conflict checks:
// only confirmed rows, optionally minus one booking being rescheduled.
func (r *BookingReadStore) ConfirmedSlots(ctx context.Context, roomID uuid.UUID, window schedule.Interval, excludeBookingID *uuid.UUID) ([]schedule.Interval, error) {
	const query = `
		SELECT lower(slot), upper(slot)
		FROM bookings
		WHERE room_id = $1 AND status = 'confirmed'
		  AND slot && tstzrange($2, $3, '[)')
		  AND ($4::uuid IS NULL OR id <> $4)
		ORDER BY lower(slot)`

	rows, err := r.db.Query(ctx, query, roomID, window.Start(), window.End(), pgconv.UUIDPtrToPgtype(excludeBookingID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load confirmed slots", err, infra.ClassifyPgErr(err))
	}
	defer rows.Close()

	var slots []schedule.Interval
	for rows.Next() {
		var start, end pgtype.Timestamptz
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to read slot", err, infra.ClassifyPgErr(err))
		}
		iv, ivErr := schedule.NewInterval(start.Time, end.Time)
		if ivErr != nil {
			return nil, infra.WrapRepoErr("invalid slot in storage", ivErr)
		}
		slots = append(slots, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read slots", err, infra.ClassifyPgErr(err))
	}
	return slots, nil
}

// OccupiedSlots backs the day availability view: confirmed slots plus their
// purpose, so a user can see what blocks the room.
func (r *BookingReadStore) OccupiedSlots(ctx context.Context, roomID uuid.UUID, window schedule.Interval) ([]queries.RoomAvailabilitySlot, error) {
	const query = `
		SELECT lower(slot), upper(slot), purpose, status
		FROM bookings
		WHERE room_id = $1 AND status = 'confirmed' AND slot && tstzrange($2, $3, '[)')
		ORDER BY lower(slot)`

	rows, err := r.db.Query(ctx, query, roomID, window.Start(), window.End())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load occupied slots", err, infra.ClassifyPgErr(err))
	}
	defer rows.Close()

	slots := []queries.RoomAvailabilitySlot{}
	for rows.Next() {
		var (
			start, end pgtype.Timestamptz
			slot       queries.RoomAvailabilitySlot
		)
		if err := rows.Scan(&start, &end, &slot.Purpose, &slot.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to read occupied slot", err, infra.ClassifyPgErr(err))
		}
		slot.StartTime = start.Time
		slot.EndTime = end.Time
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read occupied slots", err, infra.ClassifyPgErr(err))
	}
	return slots, nil
}

func scanBookingList(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item       queries.BookingListItem
			start, end pgtype.Timestamptz
			groupID    pgtype.UUID
			createdAt  pgtype.Timestamptz
		)
		err := rows.Scan(&item.ID, &item.RoomID, &item.RoomName, &start, &end,
			&item.Purpose, &item.Attendees, &item.Status, &groupID, &createdAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to read booking row", err, infra.ClassifyPgErr(err))
		}
		item.StartTime = start.Time
		item.EndTime = end.Time
		item.Status = booking.EffectiveStatus(booking.Status(item.Status), end.Time, time.Now().UTC()).String()
		item.RecurrenceGroupID = pgconv.UUIDPtrFromPgtype(groupID)
		item.CreatedAt = createdAt.Time
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err, infra.ClassifyPgErr(err))
	}
	return items, nil
}
