package geode

import (
	"fmt"

	"github.com/napolitain/solver-geode/internal/models"
)

// State represents the complete simulation state of one search.
// It is mutated in place and every Apply is undone by the matching Undo.
type State struct {
	// Producers owned, indexed by the resource they yield
	Producers [models.NumResources]int

	// Stock of each resource
	Stock [models.NumResources]int

	// Turns left before the horizon
	Remaining int
}

// NewState creates the initial state: one ore producer, empty stock
func NewState(horizon int) *State {
	if horizon < 0 {
		panic(fmt.Sprintf("geode: negative horizon %d", horizon))
	}
	s := &State{Remaining: horizon}
	s.Producers[models.Ore] = 1
	return s
}

// Projected returns the terminal tally reached if nothing more is built
func (s *State) Projected() int {
	return addChecked(s.Stock[models.Terminal], mulChecked(s.Remaining, s.Producers[models.Terminal]))
}

// Purchase records one applied build so it can be undone exactly
type Purchase struct {
	Producer models.ResourceType
	Turns    int
	Costs    models.Costs
}

// Apply waits turns, pays for and builds a producer.
// Production during those turns comes from the producers owned before the
// build; the new producer only counts from the following turn.
func (s *State) Apply(producer models.ResourceType, costs models.Costs, turns int) Purchase {
	if turns <= 0 || turns > s.Remaining {
		panic(fmt.Sprintf("geode: cannot spend %d turns with %d remaining", turns, s.Remaining))
	}

	for _, rt := range models.AllResourceTypes() {
		s.Stock[rt] = addChecked(s.Stock[rt], mulChecked(turns, s.Producers[rt]))
		s.Stock[rt] -= costs[rt]
		if s.Stock[rt] < 0 {
			panic(fmt.Sprintf("geode: %s stock went negative (%d) building %s producer", rt, s.Stock[rt], producer))
		}
	}
	s.Producers[producer]++
	s.Remaining -= turns

	return Purchase{Producer: producer, Turns: turns, Costs: costs}
}

// Undo reverts a Purchase returned by the most recent Apply
func (s *State) Undo(p Purchase) {
	s.Remaining += p.Turns
	s.Producers[p.Producer]--

	for _, rt := range models.AllResourceTypes() {
		s.Stock[rt] += p.Costs[rt]
		s.Stock[rt] -= p.Turns * s.Producers[rt]
	}

	if s.Producers[p.Producer] < 0 {
		panic(fmt.Sprintf("geode: undo left %d %s producers", s.Producers[p.Producer], p.Producer))
	}
}

// Clone creates a copy of the state
func (s *State) Clone() *State {
	clone := *s
	return &clone
}
