package geode

import (
	"testing"

	"github.com/napolitain/solver-geode/internal/models"
)

// sampleBlueprints returns the two reference blueprints:
//
//	Blueprint 1: ore 4 ore, clay 2 ore, obsidian 3 ore + 14 clay, geode 2 ore + 7 obsidian
//	Blueprint 2: ore 2 ore, clay 3 ore, obsidian 3 ore + 8 clay, geode 3 ore + 12 obsidian
func sampleBlueprints() []models.Blueprint {
	return []models.Blueprint{
		{
			ID: 1,
			Producers: [models.NumResources]models.Costs{
				models.Ore:      {models.Ore: 4},
				models.Clay:     {models.Ore: 2},
				models.Obsidian: {models.Ore: 3, models.Clay: 14},
				models.Geode:    {models.Ore: 2, models.Obsidian: 7},
			},
		},
		{
			ID: 2,
			Producers: [models.NumResources]models.Costs{
				models.Ore:      {models.Ore: 2},
				models.Clay:     {models.Ore: 3},
				models.Obsidian: {models.Ore: 3, models.Clay: 8},
				models.Geode:    {models.Ore: 3, models.Obsidian: 12},
			},
		},
	}
}

// syntheticBlueprint builds a small valid blueprint from fuzz bytes.
// Costs stay in 1..4 so searches without pruning stay tractable.
func syntheticBlueprint(id int, b [6]uint8) models.Blueprint {
	c := func(v uint8) int { return int(v%4) + 1 }
	return models.Blueprint{
		ID: id,
		Producers: [models.NumResources]models.Costs{
			models.Ore:      {models.Ore: c(b[0])},
			models.Clay:     {models.Ore: c(b[1])},
			models.Obsidian: {models.Ore: c(b[2]), models.Clay: c(b[3])},
			models.Geode:    {models.Ore: c(b[4]), models.Obsidian: c(b[5])},
		},
	}
}

// allOptionCombinations enumerates every on/off mix of the four prunes
func allOptionCombinations() []Options {
	var combos []Options
	for mask := 0; mask < 16; mask++ {
		combos = append(combos, Options{
			UpperBound: mask&1 != 0,
			Dominance:  mask&2 != 0,
			SpendCap:   mask&4 != 0,
			GreedySeed: mask&8 != 0,
		})
	}
	return combos
}

// replayPlan re-simulates a build order from the initial state and returns the
// terminal tally at the horizon. It fails the test if any step is not the
// earliest possible purchase at the minute it claims.
func replayPlan(t *testing.T, bp *models.Blueprint, horizon int, plan []Step) int {
	t.Helper()

	state := NewState(horizon)
	for i, step := range plan {
		costs := bp.Producers[step.Producer]
		turns, ok := TurnsUntilAffordable(costs, state.Producers, state.Stock)
		if !ok {
			t.Fatalf("step %d (%s): unreachable", i, step.Producer)
		}
		if turns >= state.Remaining {
			t.Fatalf("step %d (%s): needs %d turns with %d left", i, step.Producer, turns, state.Remaining)
		}
		state.Apply(step.Producer, costs, turns)
		if minute := horizon - state.Remaining; minute != step.Minute {
			t.Errorf("step %d (%s): completes at minute %d, plan says %d", i, step.Producer, minute, step.Minute)
		}
	}
	return state.Projected()
}
