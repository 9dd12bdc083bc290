package handlers

import (
	"errors"

	"volleybank/domain/entities"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// respondError maps domain errors onto HTTP statuses. Storage failures are
// logged and returned as an opaque 500 so internals never leak to clients.
func respondError(c *fiber.Ctx, err error) error {
	var (
		validationErr  *entities.ValidationError
		notFoundErr    *entities.PlayerNotFoundError
		notEligibleErr *entities.PlayerNotEligibleError
		noWinnersErr   *entities.NoWinningParticipantsError
		matchErr       *entities.MatchNotFoundError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &notEligibleErr),
		errors.As(err, &noWinnersErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &notFoundErr), errors.As(err, &matchErr):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		log.WithError(err).WithFields(log.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("Request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
