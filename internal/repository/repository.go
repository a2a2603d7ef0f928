package repository

import (
	"context"
	"team-roster-service/internal/domain"
)

// RosterStore hands out one read session per request.
type RosterStore interface {
	Acquire(ctx context.Context) (RosterSession, error)
}

// RosterSession reads a team and its memberships over a single connection.
// Release must be called once the session is no longer used.
type RosterSession interface {
	TeamByName(ctx context.Context, teamName domain.TeamName) (domain.Team, error)
	// MembershipsByTeamID returns the team's memberships ordered by role name,
	// then member last name, then member id.
	MembershipsByTeamID(ctx context.Context, teamID domain.TeamID) ([]domain.Membership, error)
	Release()
}
