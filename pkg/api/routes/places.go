package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/transitplanner/pkg/ctdf"
	"github.com/travigo/transitplanner/pkg/dataaggregator"
	"github.com/travigo/transitplanner/pkg/dataaggregator/query"
	"github.com/travigo/transitplanner/pkg/naver"
)

func PlacesRouter(router fiber.Router) {
	router.Get("/", getPlace)
}

func getPlace(c *fiber.Ctx) error {
	placeQuery := c.Query("query")
	if placeQuery == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter query is required",
		})
	}

	location, err := dataaggregator.Lookup[*ctdf.Location](c.UserContext(), query.Place{
		Query: placeQuery,
	})
	if errors.Is(err, naver.ErrPlaceNotFound) {
		c.Status(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "장소를 찾을 수 없습니다.",
		})
	} else if err != nil {
		return sendError(c, err)
	}

	reducedLocation, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, location)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(reducedLocation)
}
