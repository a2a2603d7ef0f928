package domain

type (
	MemberID int64
	RoleID   int64
	RoleName string
)

type Member struct {
	ID          MemberID
	FirstName   string
	LastName    string
	Pronouns    *string
	Email       string
	YearOfStudy *string
}

type Role struct {
	ID   RoleID
	Name RoleName
}

// Membership is a single (member, role) row of a team, joined with its member and role.
type Membership struct {
	TeamID TeamID
	Role   Role
	Member Member
}

// MemberView is the read-only projection of a member as listed under one role.
type MemberView struct {
	MemberID    MemberID
	FirstName   string
	LastName    string
	Pronouns    *string
	Email       string
	YearOfStudy *string
	RoleName    RoleName
}

func (m Membership) View() MemberView {
	return MemberView{
		MemberID:    m.Member.ID,
		FirstName:   m.Member.FirstName,
		LastName:    m.Member.LastName,
		Pronouns:    m.Member.Pronouns,
		Email:       m.Member.Email,
		YearOfStudy: m.Member.YearOfStudy,
		RoleName:    m.Role.Name,
	}
}
