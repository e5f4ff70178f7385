package repository

import (
	"context"
	"time"

	"roombook/internal/domain/recurrence"
	"roombook/internal/domain/schedule"
	"roombook/internal/infra"
	"roombook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RecurrenceRepository struct {
	db *pgxpool.Pool
}

func NewRecurrenceRepository(db *pgxpool.Pool) *RecurrenceRepository {
	return &RecurrenceRepository{db: db}
}

func (r *RecurrenceRepository) CreateGroup(ctx context.Context, tx infra.DBTX, g *recurrence.Group) error {
	const query = `
		INSERT INTO recurrence_groups (id, room_id, user_id, purpose, attendees, notes, day_of_week, start_time, end_time, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := tx.Exec(ctx, query,
		g.ID(), g.RoomID(), g.UserID(),
		g.Purpose(), int32(g.Attendees()), g.Notes(),
		int32(g.Weekday()), g.StartClock().String(), g.EndClock().String(),
		g.StartDate(), g.EndDate(), string(g.Status()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create recurrence group", err, infra.ClassifyPgErr(err))
	}
	return nil
}

func (r *RecurrenceRepository) UpdateGroup(ctx context.Context, tx infra.DBTX, g *recurrence.Group) error {
	const query = `
		UPDATE recurrence_groups
		SET purpose = $2, attendees = $3, notes = $4, status = $5, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		g.ID(), g.Purpose(), int32(g.Attendees()), g.Notes(), string(g.Status()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update recurrence group", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("recurrence group not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RecurrenceRepository) FindGroupByID(ctx context.Context, id uuid.UUID) (*recurrence.Group, error) {
	const query = `
		SELECT id, room_id, user_id, purpose, attendees, notes, day_of_week,
		       start_time, end_time, start_date, end_date, status, created_at, updated_at
		FROM recurrence_groups
		WHERE id = $1`

	return scanGroup(r.db.QueryRow(ctx, query, id))
}

func (r *RecurrenceRepository) CancelOccurrences(ctx context.Context, tx infra.DBTX, groupID uuid.UUID) (int64, error) {
	const query = `
		UPDATE bookings
		SET status = 'cancelled', updated_at = now()
		WHERE recurrence_group_id = $1 AND status = 'confirmed'`

	tag, err := tx.Exec(ctx, query, groupID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel occurrences", err, infra.ClassifyPgErr(err))
	}
	return tag.RowsAffected(), nil
}

func (r *RecurrenceRepository) UpdateOccurrenceDetails(ctx context.Context, tx infra.DBTX, groupID uuid.UUID, purpose string, attendees int, notes string) (int64, error) {
	const query = `
		UPDATE bookings
		SET purpose = $2, attendees = $3, notes = $4, updated_at = now()
		WHERE recurrence_group_id = $1 AND status = 'confirmed'`

	tag, err := tx.Exec(ctx, query, groupID, purpose, int32(attendees), notes)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to update occurrences", err, infra.ClassifyPgErr(err))
	}
	return tag.RowsAffected(), nil
}

// ActiveGroupsOn feeds recurring conflict checks: active groups of a room
// whose inclusive date range contains the given day.
func (r *RecurrenceRepository) ActiveGroupsOn(ctx context.Context, roomID uuid.UUID, date time.Time) ([]*recurrence.Group, error) {
	const query = `
		SELECT id, room_id, user_id, purpose, attendees, notes, day_of_week,
		       start_time, end_time, start_date, end_date, status, created_at, updated_at
		FROM recurrence_groups
		WHERE room_id = $1 AND status = 'active' AND start_date <= $2 AND end_date >= $2`

	rows, err := r.db.Query(ctx, query, roomID, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list recurrence groups", err, infra.ClassifyPgErr(err))
	}
	defer rows.Close()

	var groups []*recurrence.Group
	for rows.Next() {
		g, scanErr := scanGroup(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read recurrence groups", err, infra.ClassifyPgErr(err))
	}
	return groups, nil
}

func scanGroup(row rowScanner) (*recurrence.Group, error) {
	var (
		id, roomID, userID   uuid.UUID
		purpose, notes       string
		attendees, weekday   int32
		startClock, endClock string
		startDate, endDate   pgtype.Timestamptz
		status               string
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&id, &roomID, &userID, &purpose, &attendees, &notes, &weekday,
		&startClock, &endClock, &startDate, &endDate, &status, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("recurrence group not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find recurrence group", err, infra.ClassifyPgErr(err))
	}

	sc, err := schedule.ParseClock(startClock)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid start clock in storage", err)
	}
	ec, err := schedule.ParseClock(endClock)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid end clock in storage", err)
	}

	return recurrence.ReconstructGroup(
		id, roomID, userID,
		purpose, int(attendees), notes,
		time.Weekday(weekday), sc, ec,
		startDate.Time, endDate.Time,
		recurrence.Status(status),
		createdAt.Time, updatedAt.Time,
	), nil
}
