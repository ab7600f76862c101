package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bba-git/bisousbisousmvp/controllers"
	"github.com/bba-git/bisousbisousmvp/middleware"
)

// SetupProfessionalRoutes configures public professional lookups, search,
// service management and registry verification
func SetupProfessionalRoutes(app *fiber.App) {
	professionals := app.Group("/professionals")
	professionals.Get("/search", controllers.SearchProfessionals)
	professionals.Get("/check-verification", middleware.Protected(),
		middleware.RequireUserType("professional"), controllers.CheckVerification)
	professionals.Post("/verify", middleware.Protected(),
		middleware.RequireUserType("professional"), controllers.VerifyProfessional)
	professionals.Get("/:id/services", controllers.GetProfessionalServices)
	professionals.Get("/:id/main-address", controllers.GetMainAddress)

	services := app.Group("/services")
	services.Get("/search", controllers.SearchServices)
	services.Post("/", middleware.Protected(),
		middleware.RequireUserType("professional"), controllers.CreateService)
	services.Patch("/:id", middleware.Protected(),
		middleware.RequireUserType("professional"), controllers.UpdateService)
	services.Delete("/:id", middleware.Protected(),
		middleware.RequireUserType("professional"), controllers.DeleteService)

	app.Get("/sirene", controllers.GetCompanyBySiret)
}

// SetupLandingRoutes registers the public profile URL. It matches three raw
// path segments, so it must be registered after every other route.
func SetupLandingRoutes(app *fiber.App) {
	app.Get("/:profession/:location/:id", controllers.GetProfessionalLanding)
}
