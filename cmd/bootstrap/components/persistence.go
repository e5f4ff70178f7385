package components

import (
	"roombook/internal/infra/readstore"
	"roombook/internal/infra/repository"
	"roombook/internal/usecase"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	repositoryModule,
	readstoreModule,
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		repository.NewBookingRepository,
		repository.NewRecurrenceRepository,
		repository.NewRoomRepository,
		repository.NewUserRepository,
		repository.NewNotificationRepository,

		func(r *repository.BookingRepository) commands.BookingRepository { return r },
		func(r *repository.RecurrenceRepository) (commands.RecurrenceRepository, usecase.RecurrencePatternSource) {
			return r, r
		},
		func(r *repository.RoomRepository) commands.RoomRepository { return r },
		func(r *repository.UserRepository) commands.UserWriteRepository { return r },
		func(r *repository.NotificationRepository) (commands.NotificationWriter, commands.NotificationRepository) {
			return r, r
		},
	),
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		readstore.NewBookingReadStore,
		readstore.NewRoomReadStore,
		readstore.NewUserReadStore,
		readstore.NewNotificationReadStore,
		readstore.NewRecurrenceReadStore,
		readstore.NewAnalyticsReadStore,

		func(s *readstore.BookingReadStore) (queries.BookingReadStore, usecase.BookingSlotSource, queries.RoomOccupancySource) {
			return s, s, s
		},
		func(s *readstore.RoomReadStore) (queries.RoomReadStore, commands.RoomSnapshotSource) {
			return s, s
		},
		func(s *readstore.UserReadStore) (queries.UserReadStore, commands.UserReadStore) {
			return s, s
		},
		func(s *readstore.NotificationReadStore) queries.NotificationReadStore { return s },
		func(s *readstore.RecurrenceReadStore) queries.RecurrenceReadStore { return s },
		func(s *readstore.AnalyticsReadStore) queries.AnalyticsReadStore { return s },
	),
)
