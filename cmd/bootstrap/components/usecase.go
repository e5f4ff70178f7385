package components

import (
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/config"
	"roombook/internal/usecase"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	usecase.NewAvailabilityChecker,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewPgxTxRunner,
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewRecurrenceCommands,
		commands.NewRoomCommands,
		commands.NewNotificationCommands,

		func(q queries.BookingQueries) commands.BookingQueriesReader { return q },
		func(q queries.RecurrenceQueries) commands.RecurrenceQueriesReader { return q },
		func(q queries.RoomQueries) commands.RoomQueriesReader { return q },
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewRoomQueries,
		queries.NewNotificationQueries,
		queries.NewRecurrenceQueries,
		func(readStore queries.AnalyticsReadStore, cache queries.ReportCache, clk clock.Clock, cfg config.Config) queries.AnalyticsQueries {
			return queries.NewAnalyticsQueries(readStore, cache, clk, cfg.Schedule.WorkingMinutesPerDay)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
