package readstore

import (
	"context"

	"roombook/internal/domain/schedule"
	"roombook/internal/infra"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsReadStore serves report assembly with room and booking snapshots.
type AnalyticsReadStore struct {
	db       *pgxpool.Pool
	rooms    *RoomReadStore
	bookings *BookingReadStore
}

func NewAnalyticsReadStore(db *pgxpool.Pool, rooms *RoomReadStore, bookings *BookingReadStore) *AnalyticsReadStore {
	return &AnalyticsReadStore{
		db:       db,
		rooms:    rooms,
		bookings: bookings,
	}
}

func (r *AnalyticsReadStore) ActiveRooms(ctx context.Context) ([]*queries.RoomView, error) {
	return r.rooms.FindAll(ctx, false)
}

func (r *AnalyticsReadStore) ConfirmedBookingsIn(ctx context.Context, window schedule.Interval) ([]queries.BookingSnapshot, error) {
	const query = `
		SELECT room_id, lower(slot), upper(slot), recurrence_group_id IS NOT NULL
		FROM bookings
		WHERE status = 'confirmed' AND slot && tstzrange($1, $2, '[)')`

	rows, err := r.db.Query(ctx, query, window.Start(), window.End())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking snapshot", err, infra.ClassifyPgErr(err))
	}
	defer rows.Close()

	var snapshot []queries.BookingSnapshot
	for rows.Next() {
		var (
			roomID     uuid.UUID
			start, end pgtype.Timestamptz
			recurring  bool
		)
		if err := rows.Scan(&roomID, &start, &end, &recurring); err != nil {
			return nil, infra.WrapRepoErr("failed to read booking snapshot", err, infra.ClassifyPgErr(err))
		}
		slot, ivErr := schedule.NewInterval(start.Time, end.Time)
		if ivErr != nil {
			return nil, infra.WrapRepoErr("invalid slot in storage", ivErr)
		}
		snapshot = append(snapshot, queries.BookingSnapshot{
			RoomID:    roomID,
			Slot:      slot,
			Recurring: recurring,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking snapshot", err, infra.ClassifyPgErr(err))
	}
	return snapshot, nil
}

// BookingStatsIn loads every booking starting inside the window joined with
// its room and owner. The statistics endpoints filter by status themselves.
func (r *AnalyticsReadStore) BookingStatsIn(ctx context.Context, window schedule.Interval) ([]queries.BookingStatRecord, error) {
	const query = `
		SELECT b.room_id, rm.name, rm.location, b.user_id, u.name, u.email,
		       lower(b.slot), upper(b.slot), b.status
		FROM bookings b
		JOIN rooms rm ON rm.id = b.room_id
		JOIN users u ON u.id = b.user_id
		WHERE lower(b.slot) >= $1 AND lower(b.slot) < $2`

	rows, err := r.db.Query(ctx, query, window.Start(), window.End())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load booking statistics", err, infra.ClassifyPgErr(err))
	}
	defer rows.Close()

	var records []queries.BookingStatRecord
	for rows.Next() {
		var (
			rec        queries.BookingStatRecord
			start, end pgtype.Timestamptz
		)
		err := rows.Scan(&rec.RoomID, &rec.RoomName, &rec.Location, &rec.UserID, &rec.UserName, &rec.UserEmail,
			&start, &end, &rec.Status)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to read booking statistics", err, infra.ClassifyPgErr(err))
		}
		slot, ivErr := schedule.NewInterval(start.Time, end.Time)
		if ivErr != nil {
			return nil, infra.WrapRepoErr("invalid slot in storage", ivErr)
		}
		rec.Slot = slot
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking statistics", err, infra.ClassifyPgErr(err))
	}
	return records, nil
}

func (r *AnalyticsReadStore) ConfirmedSlots(ctx context.Context, roomID uuid.UUID, window schedule.Interval) ([]schedule.Interval, error) {
	return r.bookings.ConfirmedSlots(ctx, roomID, window, nil)
}

func (r *AnalyticsReadStore) RoomExists(ctx context.Context, roomID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM rooms WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, roomID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check room", err, infra.ClassifyPgErr(err))
	}
	return exists, nil
}
