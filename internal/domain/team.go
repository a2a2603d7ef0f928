package domain

type (
	TeamID   int64
	TeamName string
)

type Team struct {
	ID          TeamID
	Name        TeamName
	Description string
}
