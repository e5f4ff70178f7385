package repository

import (
	"context"

	"roombook/internal/domain/room"
	"roombook/internal/infra"
	"roombook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, entity *room.Room) error {
	const query = `
		INSERT INTO rooms (id, name, location, capacity, amenities, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		entity.ID(), entity.Name(), entity.Location(),
		int32(entity.Capacity()), entity.Amenities(), entity.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create room", err, infra.ClassifyPgErr(err))
	}
	return nil
}

func (r *RoomRepository) Update(ctx context.Context, entity *room.Room) error {
	const query = `
		UPDATE rooms
		SET name = $2, location = $3, capacity = $4, amenities = $5, is_active = $6, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		entity.ID(), entity.Name(), entity.Location(),
		int32(entity.Capacity()), entity.Amenities(), entity.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update room", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	const query = `
		SELECT id, name, location, capacity, amenities, is_active, created_at, updated_at
		FROM rooms
		WHERE id = $1`

	var (
		roomID               uuid.UUID
		name, location       string
		capacity             int32
		amenities            []string
		isActive             bool
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, query, id).Scan(&roomID, &name, &location, &capacity, &amenities, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err, infra.ClassifyPgErr(err))
	}

	return room.ReconstructRoom(roomID, name, location, int(capacity), amenities, isActive, createdAt.Time, updatedAt.Time), nil
}
