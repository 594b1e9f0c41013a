package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cosmix/linear-mcp/internal/linear/core"
	"github.com/cosmix/linear-mcp/internal/mcperr"
)

// CycleService lists teams and resolves symbolic cycle references
// (current/next/previous/by-number) to concrete cycle ids.
type CycleService struct {
	teams  TeamAPI
	cycles CycleAPI

	// now is swappable for classification tests.
	now func() time.Time
}

// NewCycleService creates a cycle service over the given upstream clients.
func NewCycleService(teams TeamAPI, cycles CycleAPI) *CycleService {
	return &CycleService{
		teams:  teams,
		cycles: cycles,
		now:    time.Now,
	}
}

// GetTeams lists teams, optionally filtered by a case-insensitive substring
// match against name or key. Entries without an id are dropped; missing
// name/key come back as empty strings rather than dropping the team.
func (s *CycleService) GetTeams(nameFilter string) ([]TeamDTO, error) {
	teams, err := s.teams.GetTeams()
	if err != nil {
		return nil, mcperr.Passthrough(err)
	}

	needle := strings.ToLower(nameFilter)
	result := []TeamDTO{}
	for _, team := range teams {
		if team.ID == "" {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(team.Name), needle) &&
			!strings.Contains(strings.ToLower(team.Key), needle) {
			continue
		}
		result = append(result, TeamDTO{
			ID:          team.ID,
			Name:        team.Name,
			Key:         team.Key,
			Description: team.Description,
		})
	}
	return result, nil
}

// GetTeamCycles lists a team's cycles with derived activity flags.
func (s *CycleService) GetTeamCycles(teamID string) ([]CycleDTO, error) {
	if err := s.requireTeam(teamID); err != nil {
		return nil, err
	}

	cycles, err := s.cycles.ListTeamCycles(teamID)
	if err != nil {
		return nil, mcperr.Passthrough(err)
	}

	now := s.now()
	result := make([]CycleDTO, 0, len(cycles))
	for _, c := range cycles {
		result = append(result, classifyCycle(c, now))
	}
	return result, nil
}

// ResolveCycleFilter resolves a cycle reference to a concrete cycle id.
// An opaque (non-numeric) specific id short-circuits without any lookup.
func (s *CycleService) ResolveCycleFilter(filter CycleFilter) (string, error) {
	if filter.Type == "specific" && filter.ID != "" && !isDigits(filter.ID) {
		return filter.ID, nil
	}

	if filter.TeamID == "" {
		return "", mcperr.InvalidRequest("teamId is required to resolve a cycle filter")
	}
	if err := s.requireTeam(filter.TeamID); err != nil {
		return "", err
	}

	raw, err := s.cycles.ListTeamCycles(filter.TeamID)
	if err != nil {
		return "", mcperr.Passthrough(err)
	}
	if len(raw) == 0 {
		return "", mcperr.InvalidRequestf("No cycles found for team %s", filter.TeamID)
	}

	now := s.now()
	cycles := make([]CycleDTO, 0, len(raw))
	for _, c := range raw {
		cycles = append(cycles, classifyCycle(c, now))
	}

	if filter.Type == "specific" {
		number, convErr := strconv.Atoi(filter.ID)
		if convErr != nil {
			return "", mcperr.InvalidRequestf("Invalid cycle id %q", filter.ID)
		}
		for _, c := range cycles {
			if c.Number == number {
				return c.ID, nil
			}
		}
		return "", mcperr.InvalidRequestf("No cycle found with number %d for team %s", number, filter.TeamID)
	}

	// Most recent first; the partitions below re-sort as needed.
	sort.SliceStable(cycles, func(i, j int) bool {
		return cycles[i].StartsAt > cycles[j].StartsAt
	})

	var active, completed, upcoming []CycleDTO
	for _, c := range cycles {
		switch {
		case c.IsActive:
			active = append(active, c)
		case c.IsCompleted:
			completed = append(completed, c)
		default:
			upcoming = append(upcoming, c)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].EndsAt > completed[j].EndsAt
	})
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartsAt < upcoming[j].StartsAt
	})

	switch filter.Type {
	case "current":
		if len(active) == 0 {
			return "", mcperr.InvalidRequestf("No active cycle found for team %s", filter.TeamID)
		}
		return active[0].ID, nil
	case "next":
		if len(upcoming) == 0 {
			return "", mcperr.InvalidRequestf("No upcoming cycles found for team %s", filter.TeamID)
		}
		return upcoming[0].ID, nil
	case "previous":
		if len(completed) == 0 {
			return "", mcperr.InvalidRequestf("No completed cycles found for team %s", filter.TeamID)
		}
		return completed[0].ID, nil
	default:
		return "", mcperr.InvalidRequestf("Unknown cycle filter type: %s", filter.Type)
	}
}

func (s *CycleService) requireTeam(teamID string) error {
	teams, err := s.teams.GetTeams()
	if err != nil {
		return mcperr.Passthrough(err)
	}
	for _, team := range teams {
		if team.ID == teamID {
			return nil
		}
	}
	return mcperr.InvalidRequest("Team not found")
}

// classifyCycle derives the activity flags from the timestamps. Upstream
// flags are never consulted: a cycle is active iff now falls inside
// [startsAt, endsAt] and no completion timestamp is set; a cycle with a
// completion timestamp is completed regardless of dates; a cycle with
// missing or unparsable dates is never active.
func classifyCycle(c core.Cycle, now time.Time) CycleDTO {
	dto := CycleDTO{
		ID:       c.ID,
		Number:   c.Number,
		Name:     c.Name,
		StartsAt: c.StartsAt,
		EndsAt:   c.EndsAt,
	}
	if c.Team != nil {
		dto.TeamID = c.Team.ID
	}

	dto.IsCompleted = c.CompletedAt != nil && *c.CompletedAt != ""
	if dto.IsCompleted {
		return dto
	}

	starts, err1 := time.Parse(time.RFC3339, c.StartsAt)
	ends, err2 := time.Parse(time.RFC3339, c.EndsAt)
	if err1 != nil || err2 != nil {
		return dto
	}
	dto.IsActive = !now.Before(starts) && !now.After(ends)
	return dto
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
