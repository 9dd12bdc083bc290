package handlers

import (
	"volleybank/domain/interfaces"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetLeaderboard handles GET /api/stats/leaderboard
func (h *Handler) GetLeaderboard(c *fiber.Ctx) error {
	orderBy := c.Query("orderBy", interfaces.OrderByTotalEarnings)
	limit := c.QueryInt("limit", 20)

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	entries, err := h.ledgerService(uow).GetLeaderboard(ctx, orderBy, limit)
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLeaderboardResponse(entries))
}

// GetTeamStandings handles GET /api/stats/teams
func (h *Handler) GetTeamStandings(c *fiber.Ctx) error {
	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	standings, err := h.ledgerService(uow).GetTeamStandings(ctx)
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTeamStandingsResponse(standings))
}

// GetPlayerSummary handles GET /api/stats/players/:id
func (h *Handler) GetPlayerSummary(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid player id")
	}

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	summary, err := h.ledgerService(uow).GetPlayerSummary(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPlayerSummaryResponse(summary))
}

// GetPlayerMatches handles GET /api/stats/players/:id/matches
func (h *Handler) GetPlayerMatches(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid player id")
	}
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	entries, total, err := h.ledgerService(uow).GetPlayerMatches(ctx, id, page, limit)
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(pagedResponse{
		Data:       toPlayerMatchesResponse(entries),
		Pagination: paginationResponse{Page: page, Limit: limit, Total: total},
	})
}
