package components

import (
	"roombook/internal/handler"
	"roombook/internal/handler/api"
	"roombook/internal/handler/middleware"
	"roombook/internal/handler/stream"
	"roombook/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		stream.NewHub,
		func(h *stream.Hub) commands.ChangeNotifier { return h },

		api.NewAuthHandler,
		api.NewRoomHandler,
		api.NewBookingHandler,
		api.NewRecurrenceHandler,
		api.NewNotificationHandler,
		api.NewAnalyticsHandler,
		middleware.NewAuthMiddleware,

		func(
			auth *api.AuthHandler,
			room *api.RoomHandler,
			booking *api.BookingHandler,
			recurrence *api.RecurrenceHandler,
			notification *api.NotificationHandler,
			analytics *api.AnalyticsHandler,
		) handler.Handlers {
			return handler.Handlers{
				Auth:         auth,
				Room:         room,
				Booking:      booking,
				Recurrence:   recurrence,
				Notification: notification,
				Analytics:    analytics,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
