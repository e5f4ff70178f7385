package queries

import (
	"context"
	"time"

	"roombook/internal/domain/schedule"
	"roombook/internal/infra"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrRoomNotFound = errs.New("room not found")

type RoomReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	FindAll(ctx context.Context, includeInactive bool) ([]*RoomView, error)
}

// RoomAvailabilitySlot is one occupied stretch of a room's day.
type RoomAvailabilitySlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Purpose   string    `json:"purpose"`
	Status    string    `json:"status"`
}

type RoomAvailability struct {
	RoomID uuid.UUID              `json:"room_id"`
	Date   time.Time              `json:"date"`
	Booked []RoomAvailabilitySlot `json:"booked"`
}

type RoomOccupancySource interface {
	OccupiedSlots(ctx context.Context, roomID uuid.UUID, window schedule.Interval) ([]RoomAvailabilitySlot, error)
}

type RoomQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, includeInactive bool) ([]*RoomView, error)
	Availability(ctx context.Context, roomID uuid.UUID, date time.Time) (*RoomAvailability, error)
}

type roomQueriesImpl struct {
	readStore RoomReadStore
	occupancy RoomOccupancySource
}

func NewRoomQueries(readStore RoomReadStore, occupancy RoomOccupancySource) RoomQueries {
	return &roomQueriesImpl{
		readStore: readStore,
		occupancy: occupancy,
	}
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *roomQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	return q.GetByID(ctx, id)
}

func (q *roomQueriesImpl) List(ctx context.Context, includeInactive bool) ([]*RoomView, error) {
	return q.readStore.FindAll(ctx, includeInactive)
}

func (q *roomQueriesImpl) Availability(ctx context.Context, roomID uuid.UUID, date time.Time) (*RoomAvailability, error) {
	if _, err := q.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	dayStart := schedule.StartOfDay(date)
	window := schedule.MustInterval(dayStart, dayStart.Add(24*time.Hour))

	booked, err := q.occupancy.OccupiedSlots(ctx, roomID, window)
	if err != nil {
		return nil, err
	}

	return &RoomAvailability{
		RoomID: roomID,
		Date:   dayStart,
		Booked: booked,
	}, nil
}
