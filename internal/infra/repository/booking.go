package repository

import (
	"context"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/schedule"
	"roombook/internal/infra"
	"roombook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// LockRoom takes a transaction-scoped advisory lock keyed by the room so
// concurrent writers of the same room serialize across check and insert.
func (r *BookingRepository) LockRoom(ctx context.Context, tx infra.DBTX, roomID uuid.UUID) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, roomID)
	if err != nil {
		return infra.WrapRepoErr("failed to lock room", err, infra.ClassifyPgErr(err))
	}
	return nil
}

func (r *BookingRepository) Create(ctx context.Context, tx infra.DBTX, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (id, room_id, user_id, slot, purpose, attendees, notes, status, recurrence_group_id)
		VALUES ($1, $2, $3, tstzrange($4, $5, '[)'), $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		b.ID(), b.RoomID(), b.UserID(),
		b.Slot().Start(), b.Slot().End(),
		b.Purpose(), int32(b.Attendees()), b.Notes(),
		string(b.Status()), pgconv.UUIDPtrToPgtype(b.RecurrenceGroupID()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err, infra.ClassifyPgErr(err))
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, tx infra.DBTX, b *booking.Booking) error {
	const query = `
		UPDATE bookings
		SET slot = tstzrange($2, $3, '[)'), purpose = $4, attendees = $5, notes = $6, status = $7, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		b.ID(),
		b.Slot().Start(), b.Slot().End(),
		b.Purpose(), int32(b.Attendees()), b.Notes(),
		string(b.Status()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT id, room_id, user_id, lower(slot), upper(slot), purpose, attendees,
		       notes, status, recurrence_group_id, created_at, updated_at
		FROM bookings
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	return scanBooking(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		id, roomID, userID   uuid.UUID
		start, end           pgtype.Timestamptz
		purpose, notes       string
		attendees            int32
		status               string
		groupID              pgtype.UUID
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&id, &roomID, &userID, &start, &end, &purpose, &attendees, &notes, &status, &groupID, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err, infra.ClassifyPgErr(err))
	}

	slot, err := schedule.NewInterval(start.Time, end.Time)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid slot in storage", err)
	}

	return booking.ReconstructBooking(
		id, roomID, userID,
		slot,
		purpose, int(attendees), notes,
		booking.Status(status),
		pgconv.UUIDPtrFromPgtype(groupID),
		createdAt.Time, updatedAt.Time,
	), nil
}
