package service

import (
	"context"
	"errors"
	"fmt"
	"team-roster-service/internal/domain"
	"team-roster-service/internal/repository"
)

type RosterService struct {
	store repository.RosterStore
}

func NewRosterService(store repository.RosterStore) *RosterService {
	return &RosterService{
		store: store,
	}
}

// Roster resolves the team named teamName and groups its members by role.
// teamName is matched exactly. The returned error wraps one of domain.ErrMalformedRequest,
// domain.ErrNotFound or domain.ErrStorageUnavailable.
func (s *RosterService) Roster(ctx context.Context, teamName domain.TeamName) (domain.TeamRoster, error) {
	if teamName == "" {
		return domain.TeamRoster{}, domain.ErrMalformedRequest
	}

	session, err := s.store.Acquire(ctx)
	if err != nil {
		return domain.TeamRoster{}, storageError("acquire session", err)
	}
	defer session.Release()

	team, err := session.TeamByName(ctx, teamName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TeamRoster{}, domain.ErrNotFound
		}
		return domain.TeamRoster{}, storageError("lookup team", err)
	}

	memberships, err := session.MembershipsByTeamID(ctx, team.ID)
	if err != nil {
		return domain.TeamRoster{}, storageError("list memberships", err)
	}

	return domain.TeamRoster{
		Team:  team,
		Roles: domain.GroupByRole(memberships),
	}, nil
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStorageUnavailable, op, err)
}
