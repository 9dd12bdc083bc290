package cmd

import (
	"context"
	"fmt"
	"time"

	"volleybank/config"
	"volleybank/database"
	"volleybank/domain/entities"
	"volleybank/domain/interfaces"
	"volleybank/domain/services"
	"volleybank/events"
	"volleybank/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Seed populates an empty database with demo players and a few recorded
// matches. Intended for local development only.
func Seed(ctx context.Context) error {
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL(), cfg.PoolSettings())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uowFactory := repository.NewUnitOfWorkFactory(db, events.NewBus())

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	playerService := services.NewPlayerService(uow.PlayerRepository(), uow.EventBus())

	admin, err := playerService.CreatePlayer(ctx, "Club Admin", "admin@volleybank.local", "", entities.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	roster := []struct {
		name string
		team string
	}{
		{"Ana Silva", "Team A"},
		{"Bruno Costa", "Team A"},
		{"Carla Mendes", "Team A"},
		{"Diego Rocha", "Team B"},
		{"Elena Duarte", "Team B"},
		{"Filipe Nunes", "Team B"},
		{"Gabriela Pinto", "Team C"},
		{"Hugo Tavares", "Team C"},
		{"Ines Martins", "Team C"},
	}

	playersByTeam := make(map[string][]*entities.Player)
	for i, r := range roster {
		email := fmt.Sprintf("player%d@volleybank.local", i+1)
		player, err := playerService.CreatePlayer(ctx, r.name, email, r.team, entities.RolePlayer)
		if err != nil {
			return fmt.Errorf("failed to seed player %s: %w", r.name, err)
		}
		playersByTeam[r.team] = append(playersByTeam[r.team], player)
	}

	matchService := services.NewMatchService(
		uow.MatchRepository(),
		uow.PlayerRepository(),
		uow.ParticipationRepository(),
		uow.EarningRepository(),
		uow.EventBus(),
	)

	fixtures := []struct {
		daysAgo int
		winner  string
		loser   string
		stake   string
	}{
		{21, "Team A", "Team B", "90.00"},
		{14, "Team B", "Team C", "120.00"},
		{7, "Team C", "Team A", "100.00"},
		{2, "Team A", "Team C", "150.00"},
	}

	for _, f := range fixtures {
		stake, err := decimal.NewFromString(f.stake)
		if err != nil {
			return err
		}

		var participants []interfaces.ParticipantInput
		for _, p := range playersByTeam[f.winner] {
			participants = append(participants, participantFor(p.ID))
		}
		for _, p := range playersByTeam[f.loser] {
			participants = append(participants, participantFor(p.ID))
		}

		_, err = matchService.RecordMatch(ctx, interfaces.RecordMatchParams{
			Date:         time.Now().AddDate(0, 0, -f.daysAgo),
			WinningTeam:  f.winner,
			StakeAmount:  stake,
			CreatedBy:    &admin.ID,
			Participants: participants,
		})
		if err != nil {
			return fmt.Errorf("failed to seed match %s vs %s: %w", f.winner, f.loser, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"players": len(roster) + 1,
		"matches": len(fixtures),
	}).Info("Seed data created")
	return nil
}

func participantFor(playerID uuid.UUID) interfaces.ParticipantInput {
	return interfaces.ParticipantInput{
		PlayerID: playerID,
		Role:     "Player",
		Smashes:  int(playerID[0]) % 8,
		Spikes:   int(playerID[1]) % 6,
		Saves:    int(playerID[2]) % 5,
	}
}
