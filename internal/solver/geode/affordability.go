package geode

import (
	"fmt"
	"math"

	"github.com/napolitain/solver-geode/internal/models"
)

// TurnsUntilAffordable returns the number of turns until a producer with the
// given costs can be bought and finished: the wait for the scarcest resource
// plus one turn to build it. ok is false when some needed resource is short
// and has no producer, so the purchase can never happen from this state.
func TurnsUntilAffordable(costs models.Costs, producers, stock [models.NumResources]int) (turns int, ok bool) {
	maxWait := 0

	for _, rt := range models.AllResourceTypes() {
		cost := costs[rt]
		if cost <= 0 {
			continue
		}
		available := stock[rt]
		rate := producers[rt]
		if available < 0 || rate < 0 {
			panic(fmt.Sprintf("geode: negative %s stock=%d producers=%d", rt, available, rate))
		}
		if available >= cost {
			continue
		}
		if rate == 0 {
			return 0, false
		}

		shortfall := cost - available
		wait := shortfall / rate
		if shortfall%rate != 0 {
			wait++
		}
		if wait > maxWait {
			maxWait = wait
		}
	}

	if maxWait == math.MaxInt {
		panic("geode: affordability wait overflows")
	}
	return maxWait + 1, true
}

// mulChecked multiplies two non-negative ints, panicking on overflow
func mulChecked(a, b int) int {
	if a < 0 || b < 0 {
		panic(fmt.Sprintf("geode: negative operand %d * %d", a, b))
	}
	if a != 0 && b > math.MaxInt/a {
		panic(fmt.Sprintf("geode: overflow %d * %d", a, b))
	}
	return a * b
}

// addChecked adds two non-negative ints, panicking on overflow
func addChecked(a, b int) int {
	if a < 0 || b < 0 {
		panic(fmt.Sprintf("geode: negative operand %d + %d", a, b))
	}
	if a > math.MaxInt-b {
		panic(fmt.Sprintf("geode: overflow %d + %d", a, b))
	}
	return a + b
}
