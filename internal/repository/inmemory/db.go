package inmemory

import (
	"sync"
	"team-roster-service/internal/domain"
)

type membershipKey struct {
	TeamID   domain.TeamID
	MemberID domain.MemberID
	RoleID   domain.RoleID
}

type InMemoryStorage struct {
	mu sync.RWMutex

	Teams       map[domain.TeamID]domain.Team
	Members     map[domain.MemberID]domain.Member
	Roles       map[domain.RoleID]domain.Role
	Memberships map[membershipKey]struct{}
}

func NewStorage() (*InMemoryStorage, error) {
	return &InMemoryStorage{
		Teams:       map[domain.TeamID]domain.Team{},
		Members:     map[domain.MemberID]domain.Member{},
		Roles:       map[domain.RoleID]domain.Role{},
		Memberships: map[membershipKey]struct{}{},
	}, nil
}

func (s *InMemoryStorage) PutTeam(team domain.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Teams[team.ID] = team
}

func (s *InMemoryStorage) PutMember(member domain.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Members[member.ID] = member
}

func (s *InMemoryStorage) PutRole(role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Roles[role.ID] = role
}

// Assign records that member holds role within team. Assigning the same triple twice is a no-op.
func (s *InMemoryStorage) Assign(teamID domain.TeamID, memberID domain.MemberID, roleID domain.RoleID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Memberships[membershipKey{TeamID: teamID, MemberID: memberID, RoleID: roleID}] = struct{}{}
}
