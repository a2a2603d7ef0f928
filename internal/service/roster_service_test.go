package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"team-roster-service/internal/domain"
	"team-roster-service/internal/repository/inmemory"
	"team-roster-service/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRosterEnviroment struct {
	ctx     context.Context
	storage *inmemory.InMemoryStorage
	repo    *inmemory.RosterRepo

	rosterService *service.RosterService
}

const (
	roleDeveloper domain.RoleID = iota + 1
	roleDesigner
	roleAdvisor
)

func setupRosterTest() testRosterEnviroment {
	storage, _ := inmemory.NewStorage()

	storage.PutTeam(domain.Team{ID: 1, Name: "ELDR", Description: "Volunteer management platform"})
	storage.PutTeam(domain.Team{ID: 2, Name: "Quiet", Description: "No members yet"})

	storage.PutRole(domain.Role{ID: roleDeveloper, Name: "Developer"})
	storage.PutRole(domain.Role{ID: roleDesigner, Name: "Designer"})
	storage.PutRole(domain.Role{ID: roleAdvisor, Name: "Advisor"})

	storage.PutMember(domain.Member{ID: 1, FirstName: "Wei", LastName: "Chen", Email: "chen@example.org"})
	storage.PutMember(domain.Member{ID: 2, FirstName: "Tolu", LastName: "Ade", Email: "ade@example.org"})
	storage.PutMember(domain.Member{ID: 3, FirstName: "Ji-woo", LastName: "Park", Email: "park@example.org"})

	storage.Assign(1, 1, roleDeveloper)
	storage.Assign(1, 2, roleDeveloper)
	storage.Assign(1, 3, roleDesigner)

	repo := inmemory.NewRosterRepo(storage)

	return testRosterEnviroment{
		ctx:           context.Background(),
		storage:       storage,
		repo:          repo,
		rosterService: service.NewRosterService(repo),
	}
}

func lastNames(members []domain.MemberView) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.LastName
	}
	return names
}

func TestRosterGroupsByRole(t *testing.T) {
	e := setupRosterTest()

	roster, err := e.rosterService.Roster(e.ctx, "ELDR")
	require.NoError(t, err)

	assert.Equal(t, domain.TeamName("ELDR"), roster.Team.Name)
	require.Len(t, roster.Roles, 2)
	assert.Equal(t, domain.RoleName("Designer"), roster.Roles[0].RoleName)
	assert.Equal(t, []string{"Park"}, lastNames(roster.Roles[0].Members))
	assert.Equal(t, domain.RoleName("Developer"), roster.Roles[1].RoleName)
	assert.Equal(t, []string{"Ade", "Chen"}, lastNames(roster.Roles[1].Members))

	for _, g := range roster.Roles {
		for _, m := range g.Members {
			assert.Equal(t, g.RoleName, m.RoleName)
		}
	}
}

func TestRosterMemberWithTwoRoles(t *testing.T) {
	e := setupRosterTest()
	e.storage.Assign(1, 3, roleDeveloper)

	roster, err := e.rosterService.Roster(e.ctx, "ELDR")
	require.NoError(t, err)

	assert.Equal(t, 4, roster.Roles.MemberCount())

	designers, ok := roster.Roles.Group("Designer")
	require.True(t, ok)
	developers, ok := roster.Roles.Group("Developer")
	require.True(t, ok)

	assert.Equal(t, []string{"Park"}, lastNames(designers))
	assert.Equal(t, []string{"Ade", "Chen", "Park"}, lastNames(developers))
	assert.Equal(t, domain.RoleName("Developer"), developers[2].RoleName)
	assert.Equal(t, domain.RoleName("Designer"), designers[0].RoleName)
}

func TestRosterCountsMatchMemberships(t *testing.T) {
	e := setupRosterTest()
	for i := domain.MemberID(10); i < 20; i++ {
		e.storage.PutMember(domain.Member{
			ID:        i,
			FirstName: "Member",
			LastName:  fmt.Sprintf("Last%02d", 30-i),
			Email:     fmt.Sprintf("m%d@example.org", i),
		})
		e.storage.Assign(1, i, domain.RoleID(int(i)%3+1))
	}

	roster, err := e.rosterService.Roster(e.ctx, "ELDR")
	require.NoError(t, err)

	assert.Len(t, roster.Roles, 3)
	assert.Equal(t, 13, roster.Roles.MemberCount())

	for i := 1; i < len(roster.Roles); i++ {
		assert.Less(t, roster.Roles[i-1].RoleName, roster.Roles[i].RoleName)
	}
	for _, g := range roster.Roles {
		for i := 1; i < len(g.Members); i++ {
			assert.LessOrEqual(t, g.Members[i-1].LastName, g.Members[i].LastName)
		}
	}
}

func TestRosterTeamWithoutMembers(t *testing.T) {
	e := setupRosterTest()

	roster, err := e.rosterService.Roster(e.ctx, "Quiet")
	require.NoError(t, err)

	assert.Equal(t, domain.TeamName("Quiet"), roster.Team.Name)
	assert.NotNil(t, roster.Roles)
	assert.Empty(t, roster.Roles)
}

func TestRosterTeamNotFound(t *testing.T) {
	e := setupRosterTest()

	for _, name := range []domain.TeamName{"Unknown", "eldr", " ELDR"} {
		roster, err := e.rosterService.Roster(e.ctx, name)
		require.ErrorIs(t, err, domain.ErrNotFound, "team %q", name)
		assert.NotErrorIs(t, err, domain.ErrStorageUnavailable)
		assert.Empty(t, roster.Team.Name)
	}
}

func TestRosterMalformedRequest(t *testing.T) {
	e := setupRosterTest()

	_, err := e.rosterService.Roster(e.ctx, "")

	require.ErrorIs(t, err, domain.ErrMalformedRequest)
	assert.Zero(t, e.repo.Acquired(), "no session may be opened for an empty name")
}

func TestRosterStorageUnavailable(t *testing.T) {
	e := setupRosterTest()
	connErr := errors.New("dial tcp: connection refused")
	e.repo.Err = connErr

	_, err := e.rosterService.Roster(e.ctx, "ELDR")

	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.ErrorIs(t, err, connErr)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestRosterReleasesSession(t *testing.T) {
	e := setupRosterTest()

	_, err := e.rosterService.Roster(e.ctx, "ELDR")
	require.NoError(t, err)
	_, err = e.rosterService.Roster(e.ctx, "Unknown")
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, int64(2), e.repo.Acquired())
	assert.Zero(t, e.repo.OpenSessions())
}

func TestRosterIsIdempotent(t *testing.T) {
	e := setupRosterTest()

	first, err := e.rosterService.Roster(e.ctx, "ELDR")
	require.NoError(t, err)
	second, err := e.rosterService.Roster(e.ctx, "ELDR")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRosterConcurrentRequests(t *testing.T) {
	e := setupRosterTest()
	want, err := e.rosterService.Roster(e.ctx, "ELDR")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]domain.TeamRoster, 16)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = e.rosterService.Roster(e.ctx, "ELDR")
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
	assert.Zero(t, e.repo.OpenSessions())
}
