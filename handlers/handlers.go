package handlers

import (
	"context"

	"volleybank/domain/interfaces"
	"volleybank/domain/services"
	"volleybank/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the REST API. Every request runs inside its own unit of
// work; domain events publish only after the transaction commits.
type Handler struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// New creates the API handler
func New(uowFactory interfaces.UnitOfWorkFactory) *Handler {
	return &Handler{uowFactory: uowFactory}
}

// Register mounts all routes under /api. Mutating routes require the admin
// role forwarded by the gateway.
func (h *Handler) Register(app *fiber.App) {
	api := app.Group("/api", middleware.UserContext())

	players := api.Group("/players")
	players.Get("/", h.ListPlayers)
	players.Post("/", middleware.RequireAdmin(), h.CreatePlayer)
	players.Get("/:id", h.GetPlayer)
	players.Put("/:id", h.UpdatePlayer)
	players.Delete("/:id", middleware.RequireAdmin(), h.DeletePlayer)

	matches := api.Group("/matches")
	matches.Get("/", h.ListMatches)
	matches.Get("/recent", h.GetRecentMatches)
	matches.Get("/stats", h.GetClubStats)
	matches.Post("/", middleware.RequireAdmin(), h.RecordMatch)
	matches.Get("/:id", h.GetMatch)
	matches.Put("/:id", middleware.RequireAdmin(), h.UpdateMatch)
	matches.Put("/:id/players/:playerId/stats", middleware.RequireAdmin(), h.UpdateParticipantStats)
	matches.Delete("/:id", middleware.RequireAdmin(), h.DeleteMatch)

	stats := api.Group("/stats")
	stats.Get("/leaderboard", h.GetLeaderboard)
	stats.Get("/teams", h.GetTeamStandings)
	stats.Get("/players/:id", h.GetPlayerSummary)
	stats.Get("/players/:id/matches", h.GetPlayerMatches)
}

// begin opens a unit of work for the request. Callers must defer Rollback;
// rolling back after a successful commit is a no-op.
func (h *Handler) begin(c *fiber.Ctx) (context.Context, interfaces.UnitOfWork, error) {
	ctx := c.UserContext()
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	return ctx, uow, nil
}

func (h *Handler) matchService(uow interfaces.UnitOfWork) interfaces.MatchService {
	return services.NewMatchService(
		uow.MatchRepository(),
		uow.PlayerRepository(),
		uow.ParticipationRepository(),
		uow.EarningRepository(),
		uow.EventBus(),
	)
}

func (h *Handler) playerService(uow interfaces.UnitOfWork) interfaces.PlayerService {
	return services.NewPlayerService(uow.PlayerRepository(), uow.EventBus())
}

func (h *Handler) ledgerService(uow interfaces.UnitOfWork) interfaces.LedgerService {
	return services.NewLedgerService(uow.PlayerRepository(), uow.LedgerRepository())
}
