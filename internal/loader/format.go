package loader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/napolitain/solver-geode/internal/models"
)

// FormatBlueprints writes blueprints in the puzzle text format, one per line
func FormatBlueprints(w io.Writer, blueprints []models.Blueprint) error {
	for i := range blueprints {
		bp := &blueprints[i]
		if _, err := fmt.Fprintf(w, "Blueprint %d:", bp.ID); err != nil {
			return err
		}
		for _, producer := range models.AllResourceTypes() {
			if _, err := fmt.Fprintf(w, " Each %s robot costs %s.", producer, bp.Cost(producer)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

type blueprintJSON struct {
	ID    int                       `json:"id"`
	Costs map[string]map[string]int `json:"costs"`
}

// MarshalBlueprintsJSON encodes blueprints in the format ParseBlueprintsJSON reads
func MarshalBlueprintsJSON(blueprints []models.Blueprint) ([]byte, error) {
	doc := struct {
		Blueprints []blueprintJSON `json:"blueprints"`
	}{Blueprints: make([]blueprintJSON, 0, len(blueprints))}

	for i := range blueprints {
		bp := &blueprints[i]
		entry := blueprintJSON{ID: bp.ID, Costs: make(map[string]map[string]int, models.NumResources)}
		for _, producer := range models.AllResourceTypes() {
			costs := make(map[string]int)
			for _, rt := range models.AllResourceTypes() {
				if amount := bp.Producers[producer][rt]; amount != 0 {
					costs[rt.String()] = amount
				}
			}
			entry.Costs[producer.String()] = costs
		}
		doc.Blueprints = append(doc.Blueprints, entry)
	}

	return json.MarshalIndent(doc, "", "  ")
}
