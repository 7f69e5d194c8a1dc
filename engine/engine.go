package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/humphreyyy/sitzplatz/internal/logger"
	"github.com/humphreyyy/sitzplatz/internal/metrics"
	"github.com/humphreyyy/sitzplatz/types"
)

// Engine plans occupant-to-resource placements.
//
// An Engine is stateless apart from its logger and metrics sink, so a
// single instance may be shared across goroutines.
type Engine struct {
	logger  types.Logger
	metrics types.EngineMetrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for placement diagnostics.
//
// Parameters:
//   - log: Logger implementation
//
// Returns:
//   - Option: Configuration option
func WithLogger(log types.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.logger = log
		}
	}
}

// WithMetrics sets the metrics sink for placement outcomes.
//
// Parameters:
//   - collector: Metrics implementation
//
// Returns:
//   - Option: Configuration option
func WithMetrics(collector types.EngineMetrics) Option {
	return func(e *Engine) {
		if collector != nil {
			e.metrics = collector
		}
	}
}

// New creates a placement engine.
//
// Parameters:
//   - opts: Optional configuration (WithLogger, WithMetrics)
//
// Returns:
//   - *Engine: Initialized engine
//
// Example:
//
//	eng := engine.New(engine.WithLogger(log))
//	result, err := eng.AssignWeek(occupants, resources, "2025-W43", previous)
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:  logger.NewNop(),
		metrics: metrics.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// AssignDay plans a single weekday.
//
// Occupants enter the plan when their pattern includes the weekday and
// their validity interval contains the date. Carryover entries for the
// same weekday mark their occupants as continuity holders: they are
// placed first and prefer the resource they held. Entries for other
// weekdays are ignored, so callers may pass a whole previous week.
//
// Every attending occupant lands in exactly one of the two result
// lists. An empty resource pool yields conflicts, not an error.
//
// Parameters:
//   - occupants: Full roster; non-attending members are skipped
//   - resources: Full resource pool for the day
//   - week: Week stamped onto produced assignments
//   - day: Weekday to plan
//   - date: Calendar date of the planned day
//   - carryover: Previous week's assignments used as continuity hints
//
// Returns:
//   - DayResult: Placements and conflicts in deterministic order
func (e *Engine) AssignDay(occupants []types.Occupant, resources []types.Resource, week types.Week, day types.Weekday, date types.Date, carryover []types.Assignment) DayResult {
	result := DayResult{Weekday: day, Date: date}

	held := make(map[string]string, len(carryover))
	for _, a := range carryover {
		if a.Weekday == day {
			held[a.OccupantID] = a.ResourceID
		}
	}

	active := make([]types.Occupant, 0, len(occupants))
	for _, o := range occupants {
		if o.AvailableOn(day) && o.ActiveOn(date) {
			active = append(active, o)
		}
	}

	// Continuity holders first, then name, then ID for duplicate names.
	slices.SortFunc(active, func(a, b types.Occupant) int {
		pa, pb := 1, 1
		if _, ok := held[a.ID]; ok {
			pa = 0
		}
		if _, ok := held[b.ID]; ok {
			pb = 0
		}
		if pa != pb {
			return pa - pb
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	free := slices.Clone(resources)
	slices.SortFunc(free, func(a, b types.Resource) int {
		return strings.Compare(a.ID, b.ID)
	})

	for _, occ := range active {
		idx := pickResource(occ, free, held[occ.ID])
		if idx < 0 {
			result.Conflicts = append(result.Conflicts, occ.ID)

			continue
		}
		result.Assignments = append(result.Assignments, types.Assignment{
			OccupantID: occ.ID,
			ResourceID: free[idx].ID,
			Week:       week,
			Weekday:    day,
		})
		free = slices.Delete(free, idx, idx+1)
	}

	if len(result.Conflicts) > 0 {
		e.logger.Debug("placement left occupants unassigned",
			"week", week, "weekday", day, "conflicts", len(result.Conflicts))
	}
	e.metrics.RecordPlacementRun(len(result.Assignments), len(result.Conflicts))

	return result
}

// AssignWeek plans all seven days of a week independently.
//
// Each day receives the full resource pool; only the continuity hints
// thread through from the previous week's assignments.
//
// Parameters:
//   - occupants: Full roster
//   - resources: Full resource pool
//   - week: Week to plan
//   - previous: Previous week's assignments (nil for none)
//
// Returns:
//   - *WeekResult: One DayResult per weekday
//   - error: types.ErrInvalidWeek for a malformed week identifier
//
// Example:
//
//	result, err := eng.AssignWeek(occupants, resources, "2025-W43", prevWeek)
//	if err != nil {
//	    return err
//	}
//	snap.ReplaceWeek("2025-W43", result.Assignments())
func (e *Engine) AssignWeek(occupants []types.Occupant, resources []types.Resource, week types.Week, previous []types.Assignment) (*WeekResult, error) {
	monday, err := week.Monday()
	if err != nil {
		return nil, fmt.Errorf("assign week: %w", err)
	}

	result := &WeekResult{Week: week}
	for _, day := range types.Weekdays() {
		result.Days[day] = e.AssignDay(occupants, resources, week, day, monday.AddDays(int(day)), previous)
	}

	e.logger.Debug("planned week",
		"week", week,
		"placements", len(result.Assignments()),
		"conflicts", result.TotalConflicts(),
	)

	return result, nil
}

// pickResource returns the index of the resource chosen for the
// occupant within the free pool, or -1 when the pool is empty.
//
// The pool must be sorted by ID ascending; the preference ladder is
// carryover resource, all requirements, any requirement, first free.
func pickResource(occ types.Occupant, free []types.Resource, heldID string) int {
	if len(free) == 0 {
		return -1
	}

	if heldID != "" {
		for i, r := range free {
			if r.ID == heldID {
				return i
			}
		}
	}

	if len(occ.Requirements) > 0 {
		for i, r := range free {
			if r.SatisfiesAll(occ.Requirements) {
				return i
			}
		}
		for i, r := range free {
			if r.SatisfiesAny(occ.Requirements) {
				return i
			}
		}
	}

	return 0
}
