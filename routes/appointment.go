package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bba-git/bisousbisousmvp/controllers"
	"github.com/bba-git/bisousbisousmvp/middleware"
)

// SetupAppointmentRoutes configures booking and service-request routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Get("/resume", controllers.ResumeBookingState)
	appointment.Post("/", middleware.Protected(), controllers.CreateAppointment)
	appointment.Get("/customer/:id", middleware.Protected(), controllers.ListCustomerAppointments)
	appointment.Patch("/:id/status", middleware.Protected(), controllers.UpdateAppointmentStatus)

	requests := app.Group("/service-requests", middleware.Protected())
	requests.Post("/", controllers.CreateServiceRequest)
	requests.Get("/", controllers.ListMyServiceRequests)
}
