package geode

import "github.com/napolitain/solver-geode/internal/models"

// greedyOrder ranks producers from the most to the least advanced
var greedyOrder = [models.NumResources]models.ResourceType{
	models.Geode,
	models.Obsidian,
	models.Clay,
	models.Ore,
}

// seed runs one greedy descent before the search: at every step it builds the
// most advanced producer that can still finish in time, as early as possible.
// Any tally it reaches is achievable, so it is a valid starting best-so-far.
// The state and path are restored before returning.
func (e *search) seed() {
	var purchases []Purchase

	for {
		e.record()

		built := false
		for _, producer := range greedyOrder {
			if e.prune(producer) != notPruned {
				continue
			}
			costs := e.bp.Producers[producer]
			turns, ok := TurnsUntilAffordable(costs, e.state.Producers, e.state.Stock)
			if !ok || turns >= e.state.Remaining {
				continue
			}

			purchases = append(purchases, e.state.Apply(producer, costs, turns))
			e.path = append(e.path, Step{Producer: producer, Minute: e.horizon - e.state.Remaining})
			built = true
			break
		}
		if !built {
			break
		}
	}

	for i := len(purchases) - 1; i >= 0; i-- {
		e.state.Undo(purchases[i])
	}
	e.path = e.path[:0]
}
