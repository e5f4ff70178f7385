package readstore

import (
	"context"

	"roombook/internal/infra"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomReadStore struct {
	db *pgxpool.Pool
}

func NewRoomReadStore(db *pgxpool.Pool) *RoomReadStore {
	return &RoomReadStore{db: db}
}

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	const query = `
		SELECT id, name, location, capacity, amenities, is_active, created_at, updated_at
		FROM rooms
		WHERE id = $1`

	view, err := scanRoomView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (r *RoomReadStore) FindAll(ctx context.Context, includeInactive bool) ([]*queries.RoomView, error) {
	const query = `
		SELECT id, name, location, capacity, amenities, is_active, created_at, updated_at
		FROM rooms
		WHERE is_active OR $1
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err, infra.ClassifyPgErr(err))
	}
	defer rows.Close()

	var views []*queries.RoomView
	for rows.Next() {
		view, scanErr := scanRoomView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read rooms", err, infra.ClassifyPgErr(err))
	}
	return views, nil
}

// SnapshotByID serves command-side validation without exposing the entity.
func (r *RoomReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*commands.RoomSnapshot, error) {
	const query = `SELECT id, name, capacity, is_active FROM rooms WHERE id = $1`

	var (
		snapshot commands.RoomSnapshot
		capacity int32
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&snapshot.ID, &snapshot.Name, &capacity, &snapshot.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err, infra.ClassifyPgErr(err))
	}
	snapshot.Capacity = int(capacity)
	return &snapshot, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoomView(row scanner) (*queries.RoomView, error) {
	var (
		view                 queries.RoomView
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&view.ID, &view.Name, &view.Location, &view.Capacity, &view.Amenities, &view.IsActive, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read room", err, infra.ClassifyPgErr(err))
	}
	view.CreatedAt = createdAt.Time
	view.UpdatedAt = updatedAt.Time
	return &view, nil
}
