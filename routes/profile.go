package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bba-git/bisousbisousmvp/controllers"
	"github.com/bba-git/bisousbisousmvp/middleware"
)

// SetupProfileRoutes configures profile self-management and addresses
func SetupProfileRoutes(app *fiber.App) {
	profile := app.Group("/profile", middleware.Protected())
	profile.Patch("/", controllers.UpdateMyProfile)
	profile.Post("/picture", controllers.UpdateProfilePicture)

	addresses := app.Group("/addresses", middleware.Protected())
	addresses.Get("/", controllers.ListMyAddresses)
	addresses.Post("/", controllers.CreateAddress)
	addresses.Patch("/:id", controllers.UpdateAddress)
	addresses.Delete("/:id", controllers.DeleteAddress)
}
