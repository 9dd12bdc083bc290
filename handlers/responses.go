package handlers

import (
	"time"

	"volleybank/domain/entities"

	"github.com/google/uuid"
)

// Wire types are kept separate from the domain entities so the JSON shape
// can stay stable while the internals move. Money renders as a fixed
// two-decimal string.

type playerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Team      string    `json:"team,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPlayerResponse(p *entities.Player) playerResponse {
	return playerResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      string(p.Role),
		Team:      p.Team,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type matchResponse struct {
	ID          uuid.UUID  `json:"id"`
	Date        time.Time  `json:"date"`
	WinningTeam string     `json:"winningTeam"`
	StakeAmount string     `json:"stakeAmount"`
	CreatedBy   *uuid.UUID `json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toMatchResponse(m *entities.Match) matchResponse {
	return matchResponse{
		ID:          m.ID,
		Date:        m.Date,
		WinningTeam: m.WinningTeam,
		StakeAmount: m.StakeAmount.StringFixed(2),
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toMatchResponses(matches []*entities.Match) []matchResponse {
	out := make([]matchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, toMatchResponse(m))
	}
	return out
}

type participantResponse struct {
	PlayerID    uuid.UUID `json:"playerId"`
	Name        string    `json:"name"`
	Team        string    `json:"team"` // team at the time the match was recorded
	CurrentTeam string    `json:"currentTeam,omitempty"`
	Role        string    `json:"role"`
	Smashes     int       `json:"smashes"`
	Spikes      int       `json:"spikes"`
	Saves       int       `json:"saves"`
	Earned      *string   `json:"earned"`
}

type matchDetailResponse struct {
	matchResponse
	Participants     []participantResponse `json:"participants"`
	TotalDistributed string                `json:"totalDistributed"`
}

func toMatchDetailResponse(d *entities.MatchDetail) matchDetailResponse {
	participants := make([]participantResponse, 0, len(d.Participants))
	for _, p := range d.Participants {
		var earned *string
		if p.Earned != nil {
			s := p.Earned.StringFixed(2)
			earned = &s
		}
		participants = append(participants, participantResponse{
			PlayerID:    p.PlayerID,
			Name:        p.PlayerName,
			Team:        p.Team,
			CurrentTeam: p.PlayerTeam,
			Role:        p.Role,
			Smashes:     p.Smashes,
			Spikes:      p.Spikes,
			Saves:       p.Saves,
			Earned:      earned,
		})
	}
	return matchDetailResponse{
		matchResponse:    toMatchResponse(d.Match),
		Participants:     participants,
		TotalDistributed: d.TotalDistributed().StringFixed(2),
	}
}

type paginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type pagedResponse struct {
	Data       any                `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type leaderboardEntryResponse struct {
	PlayerID      uuid.UUID `json:"playerId"`
	Name          string    `json:"name"`
	Team          string    `json:"team,omitempty"`
	TotalMatches  int       `json:"totalMatches"`
	Wins          int       `json:"wins"`
	WinRate       float64   `json:"winRate"`
	TotalSmashes  int       `json:"totalSmashes"`
	TotalSpikes   int       `json:"totalSpikes"`
	TotalSaves    int       `json:"totalSaves"`
	TotalPoints   int       `json:"totalPoints"`
	TotalEarnings string    `json:"totalEarnings"`
}

func toLeaderboardResponse(entries []*entities.LeaderboardEntry) []leaderboardEntryResponse {
	out := make([]leaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntryResponse{
			PlayerID:      e.PlayerID,
			Name:          e.Name,
			Team:          e.Team,
			TotalMatches:  e.TotalMatches,
			Wins:          e.Wins,
			WinRate:       e.WinRate,
			TotalSmashes:  e.TotalSmashes,
			TotalSpikes:   e.TotalSpikes,
			TotalSaves:    e.TotalSaves,
			TotalPoints:   e.TotalPoints,
			TotalEarnings: e.TotalEarnings.StringFixed(2),
		})
	}
	return out
}

type teamStandingResponse struct {
	Team          string  `json:"team"`
	TotalMatches  int     `json:"totalMatches"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"winRate"`
	TotalEarnings string  `json:"totalEarnings"`
	PlayerCount   int     `json:"playerCount"`
}

func toTeamStandingsResponse(standings []*entities.TeamStanding) []teamStandingResponse {
	out := make([]teamStandingResponse, 0, len(standings))
	for _, s := range standings {
		out = append(out, teamStandingResponse{
			Team:          s.Team,
			TotalMatches:  s.TotalMatches,
			Wins:          s.Wins,
			Losses:        s.Losses,
			WinRate:       s.WinRate,
			TotalEarnings: s.TotalEarnings.StringFixed(2),
			PlayerCount:   s.PlayerCount,
		})
	}
	return out
}

type playerSummaryResponse struct {
	Player        playerResponse `json:"player"`
	TotalMatches  int            `json:"totalMatches"`
	Wins          int            `json:"wins"`
	WinRate       float64        `json:"winRate"`
	TotalSmashes  int            `json:"totalSmashes"`
	TotalSpikes   int            `json:"totalSpikes"`
	TotalSaves    int            `json:"totalSaves"`
	TotalEarnings string         `json:"totalEarnings"`
}

func toPlayerSummaryResponse(s *entities.PlayerSummary) playerSummaryResponse {
	return playerSummaryResponse{
		Player:        toPlayerResponse(s.Player),
		TotalMatches:  s.TotalMatches,
		Wins:          s.Wins,
		WinRate:       s.WinRate,
		TotalSmashes:  s.TotalSmashes,
		TotalSpikes:   s.TotalSpikes,
		TotalSaves:    s.TotalSaves,
		TotalEarnings: s.TotalEarnings.StringFixed(2),
	}
}

type playerMatchResponse struct {
	Match    matchResponse `json:"match"`
	Role     string        `json:"role"`
	Smashes  int           `json:"smashes"`
	Spikes   int           `json:"spikes"`
	Saves    int           `json:"saves"`
	IsWinner bool          `json:"isWinner"`
	Earned   *string       `json:"earned"`
}

func toPlayerMatchesResponse(entries []*entities.PlayerMatchEntry) []playerMatchResponse {
	out := make([]playerMatchResponse, 0, len(entries))
	for _, e := range entries {
		var earned *string
		if e.Earned != nil {
			s := e.Earned.StringFixed(2)
			earned = &s
		}
		out = append(out, playerMatchResponse{
			Match:    toMatchResponse(e.Match),
			Role:     e.Role,
			Smashes:  e.Smashes,
			Spikes:   e.Spikes,
			Saves:    e.Saves,
			IsWinner: e.IsWinner,
			Earned:   earned,
		})
	}
	return out
}

type clubStatsResponse struct {
	TotalMatches       int        `json:"totalMatches"`
	TotalStakes        string     `json:"totalStakes"`
	AverageStake       string     `json:"averageStake"`
	UniqueWinningTeams int        `json:"uniqueWinningTeams"`
	FirstMatchDate     *time.Time `json:"firstMatchDate"`
	LatestMatchDate    *time.Time `json:"latestMatchDate"`
}

func toClubStatsResponse(s *entities.ClubStats) clubStatsResponse {
	return clubStatsResponse{
		TotalMatches:       s.TotalMatches,
		TotalStakes:        s.TotalStakes.StringFixed(2),
		AverageStake:       s.AverageStake.StringFixed(2),
		UniqueWinningTeams: s.UniqueWinningTeams,
		FirstMatchDate:     s.FirstMatchDate,
		LatestMatchDate:    s.LatestMatchDate,
	}
}
