package postgres

import (
	"context"
	"errors"
	"team-roster-service/internal/domain"
	"team-roster-service/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RosterRepo struct {
	db *pgxpool.Pool
}

func NewRosterRepo(db *pgxpool.Pool) *RosterRepo {
	return &RosterRepo{
		db: db,
	}
}

func (rr *RosterRepo) Acquire(ctx context.Context) (repository.RosterSession, error) {
	conn, err := rr.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	return &rosterSession{conn: conn}, nil
}

type rosterSession struct {
	conn *pgxpool.Conn
}

func (s *rosterSession) TeamByName(ctx context.Context, teamName domain.TeamName) (domain.Team, error) {
	teamQuery := `
		SELECT team_id, team_name, description
		FROM teams
		WHERE team_name = $1
	`

	var team domain.Team
	err := s.conn.QueryRow(ctx, teamQuery, teamName).Scan(&team.ID, &team.Name, &team.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Team{}, domain.ErrNotFound
		}
		return domain.Team{}, err
	}

	return team, nil
}

func (s *rosterSession) MembershipsByTeamID(ctx context.Context, teamID domain.TeamID) ([]domain.Membership, error) {
	membershipsQuery := `
		SELECT
			r.role_id,
			r.role_name,
			m.member_id,
			m.first_name,
			m.last_name,
			m.pronouns,
			m.email,
			m.year_of_study
		FROM member_team_roles mtr
		JOIN roles r ON r.role_id = mtr.role_id
		JOIN members m ON m.member_id = mtr.member_id
		WHERE mtr.team_id = $1
		ORDER BY r.role_name COLLATE "C", m.last_name COLLATE "C", m.member_id
	`

	rows, err := s.conn.Query(ctx, membershipsQuery, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memberships := []domain.Membership{}
	for rows.Next() {
		ms := domain.Membership{TeamID: teamID}
		if err := rows.Scan(
			&ms.Role.ID,
			&ms.Role.Name,
			&ms.Member.ID,
			&ms.Member.FirstName,
			&ms.Member.LastName,
			&ms.Member.Pronouns,
			&ms.Member.Email,
			&ms.Member.YearOfStudy,
		); err != nil {
			return nil, err
		}
		memberships = append(memberships, ms)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return memberships, nil
}

func (s *rosterSession) Release() {
	s.conn.Release()
}
