package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bba-git/bisousbisousmvp/controllers"
	"github.com/bba-git/bisousbisousmvp/middleware"
)

// SetupCalendarRoutes configures the Google Calendar integration routes
func SetupCalendarRoutes(app *fiber.App) {
	cal := app.Group("/calendar", middleware.Protected(), middleware.RequireUserType("professional"))
	cal.Get("/connect", controllers.ConnectCalendar)
	cal.Post("/callback", controllers.CalendarCallback)
	cal.Get("/events", controllers.ListCalendarEvents)
	cal.Post("/events", controllers.CreateCalendarEvent)
}
