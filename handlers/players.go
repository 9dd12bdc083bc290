package handlers

import (
	"volleybank/domain/entities"
	"volleybank/domain/interfaces"
	"volleybank/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type createPlayerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Team  string `json:"team"`
	Role  string `json:"role"`
}

// CreatePlayer handles POST /api/players
func (h *Handler) CreatePlayer(c *fiber.Ctx) error {
	var req createPlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	player, err := h.playerService(uow).CreatePlayer(ctx, req.Name, req.Email, req.Team, entities.Role(req.Role))
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPlayerResponse(player))
}

// GetPlayer handles GET /api/players/:id
func (h *Handler) GetPlayer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid player id")
	}

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	player, err := h.playerService(uow).GetPlayer(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPlayerResponse(player))
}

// ListPlayers handles GET /api/players
func (h *Handler) ListPlayers(c *fiber.Ctx) error {
	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	players, err := h.playerService(uow).ListPlayers(ctx, c.Query("team"))
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}

	out := make([]playerResponse, 0, len(players))
	for _, p := range players {
		out = append(out, toPlayerResponse(p))
	}
	return c.JSON(out)
}

type updatePlayerRequest struct {
	Name *string `json:"name"`
	Team *string `json:"team"`
}

// UpdatePlayer handles PUT /api/players/:id. Players may edit themselves;
// admins may edit anyone.
func (h *Handler) UpdatePlayer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid player id")
	}

	if !middleware.HasRole(c, "admin") && middleware.UserID(c) != id.String() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "cannot edit another player"})
	}

	var req updatePlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Name == nil && req.Team == nil {
		return badRequest(c, "nothing to update")
	}

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	player, err := h.playerService(uow).UpdatePlayer(ctx, id, interfaces.PlayerUpdateParams{
		Name: req.Name,
		Team: req.Team,
	})
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPlayerResponse(player))
}

// DeletePlayer handles DELETE /api/players/:id
func (h *Handler) DeletePlayer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid player id")
	}

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	if err := h.playerService(uow).DeletePlayer(ctx, id); err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
