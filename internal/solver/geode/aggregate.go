package geode

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/napolitain/solver-geode/internal/models"
)

// Scenario fixes the domain parameters of the two summary metrics
type Scenario struct {
	WeightedHorizon int // horizon for the weighted-sum metric (every blueprint)
	SubsetHorizon   int // horizon for the product metric
	SubsetSize      int // how many leading blueprints the product metric uses
}

// DefaultScenario returns the puzzle's parameters: 24 turns for every
// blueprint, 32 turns for the first three
func DefaultScenario() Scenario {
	return Scenario{
		WeightedHorizon: 24,
		SubsetHorizon:   32,
		SubsetSize:      3,
	}
}

// Summary holds both metrics and the per-blueprint results behind them
type Summary struct {
	Weighted   []*Result
	Subset     []*Result
	QualitySum int
	TopProduct int
	Elapsed    time.Duration
}

// QualitySum returns the sum of blueprint id times best tally
func QualitySum(results []*Result) int {
	sum := 0
	for _, r := range results {
		sum += r.Quality()
	}
	return sum
}

// TopProduct returns the product of the best tallies (1 for no results)
func TopProduct(results []*Result) int {
	product := 1
	for _, r := range results {
		product *= r.Best
	}
	return product
}

func (s *Solver) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// EvaluateAll evaluates every blueprint at the same horizon, running up to
// Workers evaluations at once. Results are in input order. Cancelling ctx
// stops new evaluations from starting; running ones finish.
func (s *Solver) EvaluateAll(ctx context.Context, blueprints []models.Blueprint, horizon int) ([]*Result, error) {
	results := make([]*Result, len(blueprints))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())

	for i := range blueprints {
		if gctx.Err() != nil {
			break
		}
		bp := &blueprints[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.Evaluate(bp, horizon)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the loop may have stopped early without any goroutine seeing the cancellation
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summarize computes both metrics: every blueprint at WeightedHorizon, and
// the first SubsetSize blueprints at SubsetHorizon
func (s *Solver) Summarize(ctx context.Context, blueprints []models.Blueprint, sc Scenario) (*Summary, error) {
	start := time.Now()

	weighted, err := s.EvaluateAll(ctx, blueprints, sc.WeightedHorizon)
	if err != nil {
		return nil, err
	}

	subset := blueprints
	if n := max(sc.SubsetSize, 0); n < len(subset) {
		subset = subset[:n]
	}
	top, err := s.EvaluateAll(ctx, subset, sc.SubsetHorizon)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Weighted:   weighted,
		Subset:     top,
		QualitySum: QualitySum(weighted),
		TopProduct: TopProduct(top),
		Elapsed:    time.Since(start),
	}

	if s.Logger != nil {
		s.Logger.Info("scenario summarized",
			"blueprints", len(blueprints),
			"quality_sum", summary.QualitySum,
			"top_product", summary.TopProduct,
			"elapsed", summary.Elapsed,
		)
	}
	return summary, nil
}
