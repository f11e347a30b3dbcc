package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/transitplanner/pkg/api/routes"
)

func NewApp() *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.PlannerRouter(group.Group("/planner"))
	routes.PlacesRouter(group.Group("/places"))

	return webApp
}

func SetupServer(listen string) error {
	return NewApp().Listen(listen)
}
