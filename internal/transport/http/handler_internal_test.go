package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolesDTOEncodesOrderedObject(t *testing.T) {
	roles := rolesDTO{
		{roleName: `Zeta "lead"`, members: []memberViewDTO{{MemberID: 1, RoleName: `Zeta "lead"`}}},
		{roleName: "Alpha", members: []memberViewDTO{}},
	}

	b, err := json.Marshal(roles)
	require.NoError(t, err)

	assert.Equal(t,
		`{"Zeta \"lead\"":[{"member_id":1,"first_name":"","last_name":"","pronouns":null,"email":"","year_of_study":null,"role_name":"Zeta \"lead\""}],"Alpha":[]}`,
		string(b))
}

func TestRolesDTOEmpty(t *testing.T) {
	b, err := json.Marshal(rolesDTO(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}
