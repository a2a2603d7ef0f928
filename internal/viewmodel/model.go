// Package viewmodel holds the display state of a single team roster page.
//
// A Model is created per mount. Load issues exactly one roster request over the
// model's lifetime and settles the state in NotFound or Ready; there is no way
// back to Pending short of creating a new Model.
package viewmodel

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"team-roster-service/internal/domain"
)

type Status int

const (
	Pending Status = iota
	NotFound
	Ready
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case NotFound:
		return "not_found"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Section is one role heading with the members listed under it.
type Section struct {
	Title   string
	Members []domain.MemberView
}

func (s Section) Empty() bool {
	return len(s.Members) == 0
}

type State struct {
	Status   Status
	Team     domain.Team
	Sections []Section
	// Err is the load failure when the roster could not be fetched for a reason
	// other than the team not existing. It is only set in the NotFound status.
	Err error
}

// Unavailable reports whether the NotFound state was reached because loading failed.
func (s State) Unavailable() bool {
	return s.Status == NotFound && s.Err != nil
}

type RosterFetcher interface {
	TeamRoster(ctx context.Context, teamName string) (domain.TeamRoster, error)
}

type Model struct {
	fetcher  RosterFetcher
	teamName string
	logger   *slog.Logger

	once  sync.Once
	mu    sync.RWMutex
	state State
}

func New(fetcher RosterFetcher, teamName string, logger *slog.Logger) *Model {
	return &Model{
		fetcher:  fetcher,
		teamName: teamName,
		logger:   logger,
		state:    State{Status: Pending},
	}
}

// Load fetches the roster on the first call and returns the resulting state.
// Later calls return the current state without fetching again. If ctx is done
// before the fetch returns, the result is discarded and the model stays Pending.
func (m *Model) Load(ctx context.Context) State {
	m.once.Do(func() {
		roster, err := m.fetcher.TeamRoster(ctx, m.teamName)
		if ctx.Err() != nil {
			m.logger.DebugContext(ctx, "roster load abandoned", "team", m.teamName, "error", ctx.Err())
			return
		}
		m.settle(ctx, roster, err)
	})

	return m.State()
}

func (m *Model) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Model) settle(ctx context.Context, roster domain.TeamRoster, err error) {
	next := State{Status: Ready, Team: roster.Team, Sections: Sections(roster.Roles)}

	if err != nil {
		next = State{Status: NotFound}
		if !errors.Is(err, domain.ErrNotFound) {
			next.Err = err
			m.logger.ErrorContext(ctx, "error fetching team", "team", m.teamName, "error", err)
		}
	}

	m.mu.Lock()
	m.state = next
	m.mu.Unlock()
}

// Sections projects roles into display sections, keeping their order.
func Sections(roles domain.Roster) []Section {
	sections := make([]Section, len(roles))
	for i, g := range roles {
		sections[i] = Section{
			Title:   string(g.RoleName),
			Members: g.Members,
		}
	}
	return sections
}
