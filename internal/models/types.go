package models

import (
	"fmt"
	"strings"
)

// ResourceType represents the different resource kinds in a production chain.
// The order is fixed: every Costs and count array is indexed by it.
type ResourceType int

const (
	Ore ResourceType = iota
	Clay
	Obsidian
	Geode
)

// NumResources is the number of resource kinds
const NumResources = 4

// Terminal is the resource being maximized
const Terminal = Geode

// AllResourceTypes returns all resource types in index order
func AllResourceTypes() []ResourceType {
	return []ResourceType{Ore, Clay, Obsidian, Geode}
}

// String returns the lower-case resource name
func (rt ResourceType) String() string {
	switch rt {
	case Ore:
		return "ore"
	case Clay:
		return "clay"
	case Obsidian:
		return "obsidian"
	case Geode:
		return "geode"
	default:
		return fmt.Sprintf("resource(%d)", int(rt))
	}
}

// ParseResourceType converts a resource name ("ore", "Ore", ...) to its type
func ParseResourceType(s string) (ResourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ore":
		return Ore, nil
	case "clay":
		return Clay, nil
	case "obsidian":
		return Obsidian, nil
	case "geode":
		return Geode, nil
	}
	return 0, fmt.Errorf("unknown resource type %q", s)
}

// Costs represents the resources needed to build one producer (no maps)
type Costs [NumResources]int

// Get returns the cost for a specific resource type
func (c Costs) Get(rt ResourceType) int {
	return c[rt]
}

// IsZero reports whether nothing is required
func (c Costs) IsZero() bool {
	return c == Costs{}
}

// String formats non-zero costs as "2 ore and 7 obsidian"
func (c Costs) String() string {
	var parts []string
	for _, rt := range AllResourceTypes() {
		if c[rt] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c[rt], rt))
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, " and ")
}

// Blueprint is one scenario: an identifier plus the cost of each producer type.
// Producers[k] is the cost of a producer that yields resource k.
type Blueprint struct {
	ID        int
	Producers [NumResources]Costs
}

// Cost returns the build cost of the producer for a resource type
func (b *Blueprint) Cost(rt ResourceType) Costs {
	return b.Producers[rt]
}

// MaxSpend returns the largest amount of a resource any single producer costs.
// Only one producer can be built per turn, so this is the most of that
// resource that can ever be spent in one turn.
func (b *Blueprint) MaxSpend(rt ResourceType) int {
	maxCost := 0
	for _, costs := range b.Producers {
		if costs[rt] > maxCost {
			maxCost = costs[rt]
		}
	}
	return maxCost
}

// Validate checks the structural invariants of a blueprint
func (b *Blueprint) Validate() error {
	if b.ID <= 0 {
		return fmt.Errorf("blueprint id must be positive, got %d", b.ID)
	}
	for _, producer := range AllResourceTypes() {
		costs := b.Producers[producer]
		if costs.IsZero() {
			return fmt.Errorf("blueprint %d: missing cost for %s producer", b.ID, producer)
		}
		for _, rt := range AllResourceTypes() {
			if costs[rt] < 0 {
				return fmt.Errorf("blueprint %d: negative %s cost for %s producer", b.ID, rt, producer)
			}
		}
	}
	ore := b.Producers[Ore]
	if ore[Clay] != 0 || ore[Obsidian] != 0 || ore[Geode] != 0 {
		return fmt.Errorf("blueprint %d: ore producer must cost only ore, got %s", b.ID, ore)
	}
	return nil
}
