package services

import (
	"context"
	"fmt"
	"strings"

	"volleybank/config"
	"volleybank/domain/entities"
	"volleybank/domain/interfaces"
	"volleybank/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type playerService struct {
	config         *config.Config
	playerRepo     interfaces.PlayerRepository
	eventPublisher interfaces.EventPublisher
}

// NewPlayerService creates a new player service
func NewPlayerService(
	playerRepo interfaces.PlayerRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.PlayerService {
	return &playerService{
		config:         config.Get(),
		playerRepo:     playerRepo,
		eventPublisher: eventPublisher,
	}
}

// CreatePlayer registers a new club member
func (s *playerService) CreatePlayer(ctx context.Context, name, email, team string, role entities.Role) (*entities.Player, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" {
		return nil, &entities.ValidationError{Field: "name", Message: "name is required"}
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, &entities.ValidationError{Field: "email", Message: "a valid email is required"}
	}
	if role == "" {
		role = entities.RolePlayer
	}
	if role != entities.RolePlayer && role != entities.RoleAdmin {
		return nil, &entities.ValidationError{Field: "role", Message: fmt.Sprintf("unknown role %q", role)}
	}
	if team != "" && !s.config.IsKnownTeam(team) {
		return nil, &entities.ValidationError{Field: "team", Message: fmt.Sprintf("unknown team %q", team)}
	}

	existing, err := s.playerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, &entities.ValidationError{Field: "email", Message: "email is already registered"}
	}

	player := &entities.Player{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
		Role:  role,
		Team:  team,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	s.eventPublisher.Publish(events.PlayerCreatedEvent{
		PlayerID: player.ID,
		Name:     player.Name,
		Team:     player.Team,
	})

	log.WithFields(log.Fields{
		"playerId": player.ID,
		"team":     player.Team,
		"role":     player.Role,
	}).Info("Player created")

	return player, nil
}

// GetPlayer returns a player by id
func (s *playerService) GetPlayer(ctx context.Context, id uuid.UUID) (*entities.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, &entities.PlayerNotFoundError{PlayerID: id}
	}
	return player, nil
}

// ListPlayers returns all players, optionally restricted to one team
func (s *playerService) ListPlayers(ctx context.Context, team string) ([]*entities.Player, error) {
	if team != "" {
		players, err := s.playerRepo.ListByTeam(ctx, team)
		if err != nil {
			return nil, fmt.Errorf("failed to list players for team %q: %w", team, err)
		}
		return players, nil
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// UpdatePlayer changes a player's name and/or team
func (s *playerService) UpdatePlayer(ctx context.Context, id uuid.UUID, params interfaces.PlayerUpdateParams) (*entities.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, &entities.PlayerNotFoundError{PlayerID: id}
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, &entities.ValidationError{Field: "name", Message: "name cannot be empty"}
		}
		player.Name = name
	}
	if params.Team != nil {
		if *params.Team != "" && !s.config.IsKnownTeam(*params.Team) {
			return nil, &entities.ValidationError{Field: "team", Message: fmt.Sprintf("unknown team %q", *params.Team)}
		}
		player.Team = *params.Team
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return player, nil
}

// DeletePlayer removes a player
func (s *playerService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return &entities.PlayerNotFoundError{PlayerID: id}
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return nil
}
