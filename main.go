package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/bba-git/bisousbisousmvp/cron"
	"github.com/bba-git/bisousbisousmvp/db"
	"github.com/bba-git/bisousbisousmvp/redis"
	"github.com/bba-git/bisousbisousmvp/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("BisousBisous API")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupProfileRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupProfessionalRoutes(app)
	routes.SetupCalendarRoutes(app)
	// catch-all profile URL goes last
	routes.SetupLandingRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
