package inmemory

import (
	"cmp"
	"context"
	"slices"
	"sync/atomic"
	"team-roster-service/internal/domain"
	"team-roster-service/internal/repository"
)

type RosterRepo struct {
	db *InMemoryStorage

	// Err, when set, is returned by Acquire and by every session read.
	Err error

	acquired atomic.Int64
	released atomic.Int64
}

func NewRosterRepo(db *InMemoryStorage) *RosterRepo {
	return &RosterRepo{
		db: db,
	}
}

func (rr *RosterRepo) Acquire(ctx context.Context) (repository.RosterSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if rr.Err != nil {
		return nil, rr.Err
	}
	rr.acquired.Add(1)
	return &rosterSession{repo: rr}, nil
}

// OpenSessions reports sessions acquired but not yet released.
func (rr *RosterRepo) OpenSessions() int64 {
	return rr.acquired.Load() - rr.released.Load()
}

func (rr *RosterRepo) Acquired() int64 {
	return rr.acquired.Load()
}

type rosterSession struct {
	repo     *RosterRepo
	released atomic.Bool
}

func (s *rosterSession) TeamByName(_ context.Context, teamName domain.TeamName) (domain.Team, error) {
	if s.repo.Err != nil {
		return domain.Team{}, s.repo.Err
	}

	db := s.repo.db
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, team := range db.Teams {
		if team.Name == teamName {
			return team, nil
		}
	}

	return domain.Team{}, domain.ErrNotFound
}

func (s *rosterSession) MembershipsByTeamID(_ context.Context, teamID domain.TeamID) ([]domain.Membership, error) {
	if s.repo.Err != nil {
		return nil, s.repo.Err
	}

	db := s.repo.db
	db.mu.RLock()
	defer db.mu.RUnlock()

	memberships := []domain.Membership{}
	for key := range db.Memberships {
		if key.TeamID != teamID {
			continue
		}
		role, ok := db.Roles[key.RoleID]
		if !ok {
			continue
		}
		member, ok := db.Members[key.MemberID]
		if !ok {
			continue
		}
		memberships = append(memberships, domain.Membership{
			TeamID: teamID,
			Role:   role,
			Member: member,
		})
	}

	slices.SortFunc(memberships, func(a, b domain.Membership) int {
		return cmp.Or(
			cmp.Compare(a.Role.Name, b.Role.Name),
			cmp.Compare(a.Member.LastName, b.Member.LastName),
			cmp.Compare(a.Member.ID, b.Member.ID),
		)
	})

	return memberships, nil
}

func (s *rosterSession) Release() {
	if s.released.CompareAndSwap(false, true) {
		s.repo.released.Add(1)
	}
}
