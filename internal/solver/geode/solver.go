package geode

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/napolitain/solver-geode/internal/logging"
	"github.com/napolitain/solver-geode/internal/models"
)

// Options toggles the pruning strategies. None of them changes the result,
// only how much of the tree is explored.
type Options struct {
	// UpperBound stops a branch when even one new terminal producer every
	// remaining turn could not beat the best tally found so far
	UpperBound bool

	// Dominance skips ore producers that cannot repay their own ore cost
	// before time runs out
	Dominance bool

	// SpendCap skips producers of a non-terminal resource once its production
	// already covers the most of it that can be spent in a single turn
	SpendCap bool

	// GreedySeed starts the best-so-far from one greedy descent
	GreedySeed bool
}

// DefaultOptions returns the options with every prune enabled
func DefaultOptions() Options {
	return Options{
		UpperBound: true,
		Dominance:  true,
		SpendCap:   true,
		GreedySeed: true,
	}
}

// Stats counts what a search did
type Stats struct {
	Nodes           int64
	BoundPrunes     int64
	DominancePrunes int64
	SpendCapPrunes  int64
	Unreachable     int64
	OutOfTime       int64
	MaxDepth        int
}

// Add accumulates other into s
func (s *Stats) Add(other Stats) {
	s.Nodes += other.Nodes
	s.BoundPrunes += other.BoundPrunes
	s.DominancePrunes += other.DominancePrunes
	s.SpendCapPrunes += other.SpendCapPrunes
	s.Unreachable += other.Unreachable
	s.OutOfTime += other.OutOfTime
	if other.MaxDepth > s.MaxDepth {
		s.MaxDepth = other.MaxDepth
	}
}

// Step is one purchase of a build order
type Step struct {
	Producer models.ResourceType
	Minute   int // turn at which construction completes
}

// Result holds the outcome of evaluating one blueprint
type Result struct {
	BlueprintID int
	Horizon     int
	Best        int
	Plan        []Step
	Stats       Stats
	Elapsed     time.Duration
}

// Quality returns the blueprint id multiplied by its best tally
func (r *Result) Quality() int {
	return r.BlueprintID * r.Best
}

// Recorder receives every finished evaluation
type Recorder interface {
	RecordEvaluation(r *Result)
}

// Solver evaluates blueprints with a fixed set of options
type Solver struct {
	Options  Options
	Workers  int // parallel evaluations in EvaluateAll, 0 = GOMAXPROCS
	Recorder Recorder
	Logger   *slog.Logger
}

// NewSolver creates a new solver
func NewSolver(opts Options) *Solver {
	return &Solver{
		Options: opts,
		Logger:  logging.NewNop(),
	}
}

// Evaluate returns the most terminal resource a blueprint can produce within
// horizon turns, using every prune
func Evaluate(bp models.Blueprint, horizon int) int {
	return NewSolver(DefaultOptions()).Evaluate(&bp, horizon).Best
}

// Evaluate runs a full search for one blueprint. It never modifies bp and
// always returns the same result for the same inputs.
func (s *Solver) Evaluate(bp *models.Blueprint, horizon int) *Result {
	if horizon < 0 {
		panic(fmt.Sprintf("geode: negative horizon %d for blueprint %d", horizon, bp.ID))
	}

	start := time.Now()
	e := newSearch(bp, horizon, s.Options)
	if s.Options.GreedySeed {
		e.seed()
	}
	e.run()

	if *e.state != *NewState(horizon) {
		panic(fmt.Sprintf("geode: state not restored after search: %+v", *e.state))
	}

	result := &Result{
		BlueprintID: bp.ID,
		Horizon:     horizon,
		Best:        e.best,
		Plan:        e.bestPlan,
		Stats:       e.stats,
		Elapsed:     time.Since(start),
	}

	if s.Recorder != nil {
		s.Recorder.RecordEvaluation(result)
	}
	if s.Logger != nil {
		s.Logger.Debug("blueprint evaluated",
			"blueprint", bp.ID,
			"horizon", horizon,
			"best", result.Best,
			"nodes", result.Stats.Nodes,
			"bound_prunes", result.Stats.BoundPrunes,
			"elapsed", result.Elapsed,
		)
	}

	return result
}

// branchOrder tries clay and geode producers first: finding geodes early
// raises the best-so-far sooner and lets the bound cut more.
var branchOrder = [models.NumResources]models.ResourceType{
	models.Clay,
	models.Geode,
	models.Obsidian,
	models.Ore,
}

type pruneReason int

const (
	notPruned pruneReason = iota
	prunedDominance
	prunedSpendCap
)

// search owns the mutable state and the best-so-far of one evaluation
type search struct {
	bp       *models.Blueprint
	opts     Options
	horizon  int
	maxSpend [models.NumResources]int

	state *State
	path  []Step

	best     int
	bestPlan []Step
	stats    Stats
}

func newSearch(bp *models.Blueprint, horizon int, opts Options) *search {
	e := &search{
		bp:      bp,
		opts:    opts,
		horizon: horizon,
		state:   NewState(horizon),
	}
	for _, rt := range models.AllResourceTypes() {
		e.maxSpend[rt] = bp.MaxSpend(rt)
	}
	return e
}

// record updates the best-so-far with the current state's projection
func (e *search) record() int {
	projected := e.state.Projected()
	if projected > e.best {
		e.best = projected
		e.bestPlan = append([]Step(nil), e.path...)
	}
	return projected
}

// prune reports whether building producer now is provably useless
func (e *search) prune(producer models.ResourceType) pruneReason {
	if e.opts.Dominance && producer == models.Ore {
		// An ore producer finished with r turns left yields at most r-1 ore,
		// which never pays back its own ore cost.
		if e.state.Remaining-1 <= e.bp.Producers[models.Ore][models.Ore] {
			return prunedDominance
		}
	}
	if e.opts.SpendCap && producer != models.Terminal {
		if e.state.Producers[producer] >= e.maxSpend[producer] {
			return prunedSpendCap
		}
	}
	return notPruned
}

func (e *search) run() {
	e.stats.Nodes++
	if len(e.path) > e.stats.MaxDepth {
		e.stats.MaxDepth = len(e.path)
	}

	projected := e.record()
	remaining := e.state.Remaining

	if e.opts.UpperBound {
		bound := addChecked(projected, triangular(remaining))
		if bound <= e.best {
			e.stats.BoundPrunes++
			return
		}
	}

	for _, producer := range branchOrder {
		switch e.prune(producer) {
		case prunedDominance:
			e.stats.DominancePrunes++
			continue
		case prunedSpendCap:
			e.stats.SpendCapPrunes++
			continue
		}

		costs := e.bp.Producers[producer]
		turns, ok := TurnsUntilAffordable(costs, e.state.Producers, e.state.Stock)
		if !ok {
			e.stats.Unreachable++
			continue
		}
		if turns >= remaining {
			e.stats.OutOfTime++
			continue
		}

		purchase := e.state.Apply(producer, costs, turns)
		e.path = append(e.path, Step{Producer: producer, Minute: e.horizon - e.state.Remaining})
		e.run()
		e.path = e.path[:len(e.path)-1]
		e.state.Undo(purchase)
	}
}

// triangular returns n*(n-1)/2, the terminal resource gained by building one
// more terminal producer on every one of n remaining turns
func triangular(n int) int {
	if n <= 1 {
		return 0
	}
	return mulChecked(n, n-1) / 2
}
