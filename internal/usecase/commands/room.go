package commands

import (
	"context"

	"roombook/internal/domain/room"
	reqdto "roombook/internal/handler/dto/request"
	"roombook/internal/infra"
	"roombook/internal/pkg/errs"
	"roombook/internal/pkg/patch"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrDuplicateRoomName = errs.New("room name already in use")

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	Update(ctx context.Context, r *room.Room) error
}

type RoomQueriesReader interface {
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*queries.RoomView, error)
}

type RoomCommands interface {
	Create(ctx context.Context, req reqdto.CreateRoomRequest) (*queries.RoomView, error)
	Update(ctx context.Context, roomID uuid.UUID, req reqdto.UpdateRoomRequest) (*queries.RoomView, error)
	Deactivate(ctx context.Context, roomID uuid.UUID) error
}

type roomCommandsImpl struct {
	roomRepo       RoomRepository
	roomQueries    RoomQueriesReader
	reportCache    ReportInvalidator
	changeNotifier ChangeNotifier
}

func NewRoomCommands(
	roomRepo RoomRepository,
	roomQueries RoomQueriesReader,
	reportCache ReportInvalidator,
	changeNotifier ChangeNotifier,
) RoomCommands {
	return &roomCommandsImpl{
		roomRepo:       roomRepo,
		roomQueries:    roomQueries,
		reportCache:    reportCache,
		changeNotifier: changeNotifier,
	}
}

func (c *roomCommandsImpl) Create(ctx context.Context, req reqdto.CreateRoomRequest) (*queries.RoomView, error) {
	entity, err := room.NewRoom(req.Name, req.Location, req.Capacity, req.Amenities)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := c.roomRepo.Create(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateRoomName
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	notifyCalendarChange(ctx, c.reportCache, c.changeNotifier)
	return c.roomQueries.GetByIDSystem(ctx, entity.ID())
}

func (c *roomCommandsImpl) Update(ctx context.Context, roomID uuid.UUID, req reqdto.UpdateRoomRequest) (*queries.RoomView, error) {
	entity, err := c.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	amenities := entity.Amenities()
	if req.Amenities != nil {
		amenities = *req.Amenities
	}

	if err := entity.Update(
		patch.Coalesce(req.Name, entity.Name()),
		patch.Coalesce(req.Location, entity.Location()),
		patch.Coalesce(req.Capacity, entity.Capacity()),
		amenities,
		patch.Coalesce(req.IsActive, entity.IsActive()),
	); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := c.roomRepo.Update(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateRoomName
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	notifyCalendarChange(ctx, c.reportCache, c.changeNotifier)
	return c.roomQueries.GetByIDSystem(ctx, entity.ID())
}

func (c *roomCommandsImpl) Deactivate(ctx context.Context, roomID uuid.UUID) error {
	entity, err := c.findRoom(ctx, roomID)
	if err != nil {
		return err
	}

	entity.Deactivate()
	if err := c.roomRepo.Update(ctx, entity); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	notifyCalendarChange(ctx, c.reportCache, c.changeNotifier)
	return nil
}

func (c *roomCommandsImpl) findRoom(ctx context.Context, roomID uuid.UUID) (*room.Room, error) {
	entity, err := c.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}
