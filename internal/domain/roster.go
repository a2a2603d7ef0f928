package domain

// RoleGroup holds the members listed under one role, in listing order.
type RoleGroup struct {
	RoleName RoleName
	Members  []MemberView
}

// Roster is the grouped roster of a team. Group order is part of the value:
// it is the order in which roles first appeared in the membership rows.
type Roster []RoleGroup

type TeamRoster struct {
	Team  Team
	Roles Roster
}

// GroupByRole reduces membership rows into a Roster in one pass. A member holding
// several roles is listed once under each of them.
func GroupByRole(rows []Membership) Roster {
	roster := Roster{}
	index := make(map[RoleName]int)

	for _, row := range rows {
		i, seen := index[row.Role.Name]
		if !seen {
			i = len(roster)
			index[row.Role.Name] = i
			roster = append(roster, RoleGroup{RoleName: row.Role.Name})
		}
		roster[i].Members = append(roster[i].Members, row.View())
	}

	return roster
}

func (r Roster) MemberCount() int {
	n := 0
	for _, g := range r {
		n += len(g.Members)
	}
	return n
}

// Group returns the members listed under role, or false if the roster has no such role.
func (r Roster) Group(role RoleName) ([]MemberView, bool) {
	for _, g := range r {
		if g.RoleName == role {
			return g.Members, true
		}
	}
	return nil, false
}
