package domain_test

import (
	"team-roster-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(memberID domain.MemberID, last string, role domain.RoleName) domain.Membership {
	return domain.Membership{
		TeamID: 1,
		Role:   domain.Role{Name: role},
		Member: domain.Member{
			ID:        memberID,
			FirstName: "First-" + last,
			LastName:  last,
			Email:     last + "@example.org",
		},
	}
}

func lastNames(members []domain.MemberView) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.LastName
	}
	return names
}

func TestGroupByRoleKeepsRowOrder(t *testing.T) {
	rows := []domain.Membership{
		row(3, "Park", "Designer"),
		row(2, "Ade", "Developer"),
		row(1, "Chen", "Developer"),
	}

	roster := domain.GroupByRole(rows)

	require.Len(t, roster, 2)
	assert.Equal(t, domain.RoleName("Designer"), roster[0].RoleName)
	assert.Equal(t, []string{"Park"}, lastNames(roster[0].Members))
	assert.Equal(t, domain.RoleName("Developer"), roster[1].RoleName)
	assert.Equal(t, []string{"Ade", "Chen"}, lastNames(roster[1].Members))
}

func TestGroupByRoleListsMemberOncePerRole(t *testing.T) {
	rows := []domain.Membership{
		row(7, "Okafor", "Designer"),
		row(7, "Okafor", "Developer"),
	}

	roster := domain.GroupByRole(rows)

	require.Len(t, roster, 2)
	assert.Equal(t, 2, roster.MemberCount())
	for _, g := range roster {
		require.Len(t, g.Members, 1)
		assert.Equal(t, domain.MemberID(7), g.Members[0].MemberID)
		assert.Equal(t, g.RoleName, g.Members[0].RoleName)
	}
}

func TestGroupByRoleCountsMatchRows(t *testing.T) {
	rows := []domain.Membership{
		row(1, "Adams", "Advisor"),
		row(2, "Baker", "Designer"),
		row(3, "Cole", "Designer"),
		row(4, "Diaz", "Developer"),
		row(5, "Evans", "Developer"),
		row(6, "Fox", "Developer"),
	}

	roster := domain.GroupByRole(rows)

	assert.Len(t, roster, 3)
	assert.Equal(t, len(rows), roster.MemberCount())

	devs, ok := roster.Group("Developer")
	require.True(t, ok)
	assert.Equal(t, []string{"Diaz", "Evans", "Fox"}, lastNames(devs))

	_, ok = roster.Group("Manager")
	assert.False(t, ok)
}

func TestGroupByRoleEmpty(t *testing.T) {
	roster := domain.GroupByRole(nil)

	require.NotNil(t, roster)
	assert.Empty(t, roster)
	assert.Zero(t, roster.MemberCount())
}

func TestGroupByRoleCarriesOptionalFields(t *testing.T) {
	pronouns := "they/them"
	year := "3"
	r := row(9, "Ngata", "Developer")
	r.Member.Pronouns = &pronouns
	r.Member.YearOfStudy = &year

	roster := domain.GroupByRole([]domain.Membership{r})

	view := roster[0].Members[0]
	require.NotNil(t, view.Pronouns)
	assert.Equal(t, "they/them", *view.Pronouns)
	require.NotNil(t, view.YearOfStudy)
	assert.Equal(t, "3", *view.YearOfStudy)
	assert.Equal(t, "Ngata@example.org", view.Email)
}
