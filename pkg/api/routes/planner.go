package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/transitplanner/pkg/ctdf"
	"github.com/travigo/transitplanner/pkg/dataaggregator"
	"github.com/travigo/transitplanner/pkg/dataaggregator/query"
)

func PlannerRouter(router fiber.Router) {
	router.Get("/transit", getTransitRoutes)
	router.Get("/transit/geojson", getTransitRouteGeoJSON)
}

func lookupTransitRoutes(c *fiber.Ctx) (*ctdf.RouteSearchResult, error) {
	origin := c.Query("origin")
	destination := c.Query("destination")

	if origin == "" || destination == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Parameters origin and destination are required")
	}

	result, err := dataaggregator.Lookup[*ctdf.RouteSearchResult](c.UserContext(), query.TransitRoutes{
		OriginSearch:      origin,
		DestinationSearch: destination,
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return result, nil
}

func sendError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if fiberError, ok := err.(*fiber.Error); ok {
		code = fiberError.Code
	}

	c.Status(code)
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

func getTransitRoutes(c *fiber.Ctx) error {
	result, err := lookupTransitRoutes(c)
	if err != nil {
		return sendError(c, err)
	}

	groups := []string{"basic"}
	if c.QueryBool("detailed") {
		groups = append(groups, "detailed")
	}

	reducedResult, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, result)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sheriff could not reduce route search result",
		})
	}

	if result.Outcome == ctdf.RouteSearchOutcomeEndpointNotFound {
		c.Status(fiber.StatusNotFound)
	}

	return c.JSON(reducedResult)
}

func getTransitRouteGeoJSON(c *fiber.Ctx) error {
	result, err := lookupTransitRoutes(c)
	if err != nil {
		return sendError(c, err)
	}

	routeIndex := c.QueryInt("route", 0)
	if routeIndex < 0 || routeIndex >= len(result.Routes) {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error":   "Route not found",
			"message": result.Message,
		})
	}

	featureCollectionJSON, err := result.Routes[routeIndex].GeoJSON().MarshalJSON()
	if err != nil {
		return sendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(featureCollectionJSON)
}
