package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"team-roster-service/internal/domain"

	"github.com/go-chi/chi/v5"
)

type teamDTO struct {
	TeamID      int64  `json:"team_id"`
	TeamName    string `json:"team_name"`
	Description string `json:"description"`
}

type memberViewDTO struct {
	MemberID    int64   `json:"member_id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Pronouns    *string `json:"pronouns"`
	Email       string  `json:"email"`
	YearOfStudy *string `json:"year_of_study"`
	RoleName    string  `json:"role_name"`
}

type roleGroupDTO struct {
	roleName string
	members  []memberViewDTO
}

// rolesDTO encodes as a JSON object keyed by role name, keys written in slice order.
type rolesDTO []roleGroupDTO

func (rs rolesDTO) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, g := range rs {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(g.roleName)
		if err != nil {
			return nil, err
		}
		members, err := json.Marshal(g.members)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(members)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type teamRosterResponse struct {
	Team  teamDTO  `json:"team"`
	Roles rolesDTO `json:"roles"`
}

func newTeamRosterResponse(roster domain.TeamRoster) teamRosterResponse {
	roles := make(rolesDTO, len(roster.Roles))
	for i, g := range roster.Roles {
		members := make([]memberViewDTO, len(g.Members))
		for j, m := range g.Members {
			members[j] = memberViewDTO{
				MemberID:    int64(m.MemberID),
				FirstName:   m.FirstName,
				LastName:    m.LastName,
				Pronouns:    m.Pronouns,
				Email:       m.Email,
				YearOfStudy: m.YearOfStudy,
				RoleName:    string(m.RoleName),
			}
		}
		roles[i] = roleGroupDTO{roleName: string(g.RoleName), members: members}
	}

	return teamRosterResponse{
		Team: teamDTO{
			TeamID:      int64(roster.Team.ID),
			TeamName:    string(roster.Team.Name),
			Description: roster.Team.Description,
		},
		Roles: roles,
	}
}

// teamNameParam returns the decoded {teamName} path segment. chi matches on the raw
// path when the request carried escapes, so the segment is unescaped only in that case.
func teamNameParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "teamName")
	if r.URL.RawPath == "" {
		return raw, nil
	}
	return url.PathUnescape(raw)
}

func (h *Handler) handleGetTeamRoster(w http.ResponseWriter, r *http.Request) {
	teamName, err := teamNameParam(r)
	if err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid team name encoding"})
		return
	}

	roster, err := h.rosterService.Roster(r.Context(), domain.TeamName(teamName))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, newTeamRosterResponse(roster))
}
