package rosterclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"team-roster-service/internal/domain"
)

type teamPayload struct {
	TeamID      int64  `json:"team_id"`
	TeamName    string `json:"team_name"`
	Description string `json:"description"`
}

type memberViewPayload struct {
	MemberID    int64       `json:"member_id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Pronouns    *string     `json:"pronouns"`
	Email       string      `json:"email"`
	YearOfStudy yearOfStudy `json:"year_of_study"`
	RoleName    string      `json:"role_name"`
}

// yearOfStudy accepts a JSON string, number or null.
type yearOfStudy struct {
	value *string
}

func (y *yearOfStudy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		y.value = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		y.value = &s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year_of_study: %w", err)
	}
	s := n.String()
	y.value = &s
	return nil
}

// rolesPayload decodes the roles object while keeping its key order.
type rolesPayload domain.Roster

var errRolesNotObject = errors.New("roles: expected a JSON object")

func (rp *rolesPayload) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*rp = rolesPayload{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errRolesNotObject
	}

	roster := domain.Roster{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		roleName, ok := tok.(string)
		if !ok {
			return errRolesNotObject
		}

		var members []memberViewPayload
		if err := dec.Decode(&members); err != nil {
			return fmt.Errorf("roles[%q]: %w", roleName, err)
		}

		group := domain.RoleGroup{
			RoleName: domain.RoleName(roleName),
			Members:  make([]domain.MemberView, len(members)),
		}
		for i, m := range members {
			group.Members[i] = m.toDomain()
		}
		roster = append(roster, group)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*rp = rolesPayload(roster)
	return nil
}

type teamRosterPayload struct {
	Team  *teamPayload `json:"team"`
	Roles rolesPayload `json:"roles"`
}

type errorPayload struct {
	Error string `json:"error"`
}

func (m memberViewPayload) toDomain() domain.MemberView {
	return domain.MemberView{
		MemberID:    domain.MemberID(m.MemberID),
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Pronouns:    m.Pronouns,
		Email:       m.Email,
		YearOfStudy: m.YearOfStudy.value,
		RoleName:    domain.RoleName(m.RoleName),
	}
}

func (p teamRosterPayload) toDomain() domain.TeamRoster {
	roles := domain.Roster(p.Roles)
	if roles == nil {
		roles = domain.Roster{}
	}

	return domain.TeamRoster{
		Team: domain.Team{
			ID:          domain.TeamID(p.Team.TeamID),
			Name:        domain.TeamName(p.Team.TeamName),
			Description: p.Team.Description,
		},
		Roles: roles,
	}
}
