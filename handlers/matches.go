package handlers

import (
	"time"

	"volleybank/domain/interfaces"
	"volleybank/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type recordMatchRequest struct {
	Date         string          `json:"date"`
	WinningTeam  string          `json:"winningTeam"`
	StakeAmount  decimal.Decimal `json:"stakeAmount"`
	Participants []struct {
		PlayerID uuid.UUID `json:"playerId"`
		Role     string    `json:"role"`
		Smashes  int       `json:"smashes"`
		Spikes   int       `json:"spikes"`
		Saves    int       `json:"saves"`
	} `json:"participants"`
}

// RecordMatch handles POST /api/matches
func (h *Handler) RecordMatch(c *fiber.Ctx) error {
	var req recordMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest(c, "date must be YYYY-MM-DD or RFC 3339")
	}

	params := interfaces.RecordMatchParams{
		Date:        date,
		WinningTeam: req.WinningTeam,
		StakeAmount: req.StakeAmount,
		CreatedBy:   callerID(c),
	}
	for _, p := range req.Participants {
		params.Participants = append(params.Participants, interfaces.ParticipantInput{
			PlayerID: p.PlayerID,
			Role:     p.Role,
			Smashes:  p.Smashes,
			Spikes:   p.Spikes,
			Saves:    p.Saves,
		})
	}

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	detail, err := h.matchService(uow).RecordMatch(ctx, params)
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMatchDetailResponse(detail))
}

// GetMatch handles GET /api/matches/:id
func (h *Handler) GetMatch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid match id")
	}

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	detail, err := h.matchService(uow).GetMatch(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMatchDetailResponse(detail))
}

// ListMatches handles GET /api/matches
func (h *Handler) ListMatches(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	filter := interfaces.MatchFilter{WinningTeam: c.Query("winningTeam")}
	if from := c.Query("dateFrom"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			return badRequest(c, "dateFrom must be YYYY-MM-DD or RFC 3339")
		}
		filter.DateFrom = &t
	}
	if to := c.Query("dateTo"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			return badRequest(c, "dateTo must be YYYY-MM-DD or RFC 3339")
		}
		filter.DateTo = &t
	}

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	matches, total, err := h.matchService(uow).ListMatches(ctx, filter, page, limit)
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(pagedResponse{
		Data:       toMatchResponses(matches),
		Pagination: paginationResponse{Page: page, Limit: limit, Total: total},
	})
}

// GetRecentMatches handles GET /api/matches/recent
func (h *Handler) GetRecentMatches(c *fiber.Ctx) error {
	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	matches, err := h.matchService(uow).GetRecentMatches(ctx, c.QueryInt("limit", 5))
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMatchResponses(matches))
}

type updateMatchRequest struct {
	WinningTeam *string          `json:"winningTeam"`
	StakeAmount *decimal.Decimal `json:"stakeAmount"`
}

// UpdateMatch handles PUT /api/matches/:id
func (h *Handler) UpdateMatch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid match id")
	}

	var req updateMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.WinningTeam == nil && req.StakeAmount == nil {
		return badRequest(c, "nothing to update")
	}

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	detail, err := h.matchService(uow).UpdateMatch(ctx, id, interfaces.MatchUpdateParams{
		WinningTeam: req.WinningTeam,
		StakeAmount: req.StakeAmount,
	})
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMatchDetailResponse(detail))
}

type updateStatsRequest struct {
	Smashes int `json:"smashes"`
	Spikes  int `json:"spikes"`
	Saves   int `json:"saves"`
}

// UpdateParticipantStats handles PUT /api/matches/:id/players/:playerId/stats
func (h *Handler) UpdateParticipantStats(c *fiber.Ctx) error {
	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid match id")
	}
	playerID, err := uuid.Parse(c.Params("playerId"))
	if err != nil {
		return badRequest(c, "invalid player id")
	}

	var req updateStatsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	if err := h.matchService(uow).UpdateParticipantStats(ctx, matchID, playerID, req.Smashes, req.Spikes, req.Saves); err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMatch handles DELETE /api/matches/:id
func (h *Handler) DeleteMatch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid match id")
	}

	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	if err := h.matchService(uow).DeleteMatch(ctx, id); err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetClubStats handles GET /api/matches/stats
func (h *Handler) GetClubStats(c *fiber.Ctx) error {
	ctx, uow, err := h.begin(c)
	if err != nil {
		return respondError(c, err)
	}
	defer uow.Rollback()

	stats, err := h.matchService(uow).GetClubStats(ctx)
	if err != nil {
		return respondError(c, err)
	}
	if err := uow.Commit(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(toClubStatsResponse(stats))
}

// parseDate accepts a plain date or a full RFC 3339 timestamp
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// callerID returns the gateway-forwarded identity as a uuid, nil when the
// header is absent or not a uuid
func callerID(c *fiber.Ctx) *uuid.UUID {
	id, err := uuid.Parse(middleware.UserID(c))
	if err != nil {
		return nil
	}
	return &id
}
