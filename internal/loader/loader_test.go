package loader

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/napolitain/solver-geode/internal/models"
)

const sampleText = `Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.
Blueprint 2: Each ore robot costs 2 ore. Each clay robot costs 3 ore. Each obsidian robot costs 3 ore and 8 clay. Each geode robot costs 3 ore and 12 obsidian.
`

func expectedSample() []models.Blueprint {
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

func TestParseBlueprints(t *testing.T) {
	got, err := ParseBlueprints(sampleText)
	if err != nil {
		t.Fatalf("ParseBlueprints failed: %v", err)
	}
	if !reflect.DeepEqual(got, expectedSample()) {
		t.Errorf("got %+v\nwant %+v", got, expectedSample())
	}
}

func TestParseBlueprintsWrapped(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "sample.txt"))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	got, err := ParseBlueprints(string(data))
	if err != nil {
		t.Fatalf("ParseBlueprints failed: %v", err)
	}
	if !reflect.DeepEqual(got, expectedSample()) {
		t.Errorf("wrapped records parsed to %+v", got)
	}
}

func TestParseBlueprintsEmpty(t *testing.T) {
	for _, text := range []string{"", "\n\n  \n"} {
		got, err := ParseBlueprints(text)
		if err != nil {
			t.Errorf("ParseBlueprints(%q) failed: %v", text, err)
		}
		if len(got) != 0 {
			t.Errorf("ParseBlueprints(%q) = %v, want none", text, got)
		}
	}
}

func TestParseBlueprintsErrors(t *testing.T) {
	const (
		ore      = "Each ore robot costs 4 ore. "
		clay     = "Each clay robot costs 2 ore. "
		obsidian = "Each obsidian robot costs 3 ore and 14 clay. "
		geode    = "Each geode robot costs 2 ore and 7 obsidian."
	)

	tests := []struct {
		name string
		text string
		want error
	}{
		{"no header", ore + clay + obsidian + geode, ErrMalformedBlueprint},
		{"text before header", "hello\nBlueprint 1: " + ore + clay + obsidian + geode, ErrMalformedBlueprint},
		{"missing producer", "Blueprint 1: " + ore + clay + obsidian, ErrMalformedBlueprint},
		{"duplicate producer", "Blueprint 1: " + ore + ore + clay + obsidian + geode, ErrMalformedBlueprint},
		{"unknown resource", "Blueprint 1: " + ore + clay + obsidian + "Each geode robot costs 2 ore and 7 diamond.", ErrMalformedBlueprint},
		{"unknown producer", "Blueprint 1: " + ore + clay + obsidian + geode + " Each gold robot costs 1 ore.", ErrMalformedBlueprint},
		{"garbled sentence", "Blueprint 1: " + ore + "Each clay robot is cheap. " + clay + obsidian + geode, ErrMalformedBlueprint},
		{"bad amount", "Blueprint 1: " + ore + "Each clay robot costs two ore. " + obsidian + geode, ErrMalformedBlueprint},
		{"zero id", "Blueprint 0: " + ore + clay + obsidian + geode, ErrInvalidBlueprint},
		{"ore producer costs clay", "Blueprint 1: Each ore robot costs 4 ore and 1 clay. " + clay + obsidian + geode, ErrInvalidBlueprint},
		{"free producer", "Blueprint 1: " + ore + "Each clay robot costs 0 ore. " + obsidian + geode, ErrInvalidBlueprint},
		{"duplicate id", "Blueprint 1: " + ore + clay + obsidian + geode + "\nBlueprint 1: " + ore + clay + obsidian + geode, ErrInvalidBlueprint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBlueprints(tt.text)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseBlueprintsJSON(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "sample.json"))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	got, err := ParseBlueprintsJSON(data)
	if err != nil {
		t.Fatalf("ParseBlueprintsJSON failed: %v", err)
	}

	fromText, err := ParseBlueprints(sampleText)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, fromText) {
		t.Errorf("JSON parsed to %+v, text to %+v", got, fromText)
	}
}

func TestParseBlueprintsJSONErrors(t *testing.T) {
	const valid = `"ore":{"ore":4},"clay":{"ore":2},"obsidian":{"ore":3,"clay":14},"geode":{"ore":2,"obsidian":7}`

	tests := []struct {
		name string
		data string
		want error
	}{
		{"not JSON", `{"blueprints":[`, ErrMalformedBlueprint},
		{"no list", `{"items":[]}`, ErrMalformedBlueprint},
		{"string id", `{"blueprints":[{"id":"1","costs":{` + valid + `}}]}`, ErrMalformedBlueprint},
		{"fractional id", `{"blueprints":[{"id":1.5,"costs":{` + valid + `}}]}`, ErrMalformedBlueprint},
		{"missing costs", `{"blueprints":[{"id":1}]}`, ErrMalformedBlueprint},
		{"missing producer", `{"blueprints":[{"id":1,"costs":{"ore":{"ore":4}}}]}`, ErrMalformedBlueprint},
		{"unknown resource", `{"blueprints":[{"id":1,"costs":{` + valid + `,"gold":{"ore":1}}}]}`, ErrMalformedBlueprint},
		{"string amount", `{"blueprints":[{"id":1,"costs":{"ore":{"ore":"4"},"clay":{"ore":2},"obsidian":{"ore":3,"clay":14},"geode":{"ore":2,"obsidian":7}}}]}`, ErrMalformedBlueprint},
		{"negative cost", `{"blueprints":[{"id":1,"costs":{"ore":{"ore":4},"clay":{"ore":-2},"obsidian":{"ore":3,"clay":14},"geode":{"ore":2,"obsidian":7}}}]}`, ErrInvalidBlueprint},
		{"empty producer costs", `{"blueprints":[{"id":1,"costs":{"ore":{"ore":4},"clay":{},"obsidian":{"ore":3,"clay":14},"geode":{"ore":2,"obsidian":7}}}]}`, ErrInvalidBlueprint},
		{"duplicate id", `{"blueprints":[{"id":1,"costs":{` + valid + `}},{"id":1,"costs":{` + valid + `}}]}`, ErrInvalidBlueprint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBlueprintsJSON([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseBlueprintsJSONEmptyList(t *testing.T) {
	got, err := ParseBlueprintsJSON([]byte(`{"blueprints":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d blueprints, want none", len(got))
	}
}

func TestLoadBlueprints(t *testing.T) {
	for _, name := range []string{"sample.txt", "sample.json"} {
		t.Run(name, func(t *testing.T) {
			got, err := LoadBlueprints(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("LoadBlueprints failed: %v", err)
			}
			if !reflect.DeepEqual(got, expectedSample()) {
				t.Errorf("got %+v", got)
			}
		})
	}
}

func TestLoadBlueprintsErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBlueprints(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want os.ErrNotExist", err)
	}

	// JSON content in a text file is parsed as text
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte(`{"blueprints":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadBlueprints(path)
	if !errors.Is(err, ErrMalformedBlueprint) {
		t.Errorf("err = %v, want ErrMalformedBlueprint", err)
	}
	if err != nil && !strings.Contains(err.Error(), "input.txt") {
		t.Errorf("error should name the file: %v", err)
	}
}

func FuzzParseBlueprints(f *testing.F) {
	f.Add(sampleText)
	f.Add("Blueprint 3: Each ore robot costs 1 ore.")
	f.Add("Blueprint 1: Each ore robot costs 4 ore and 0 clay.")

	f.Fuzz(func(t *testing.T, text string) {
		blueprints, err := ParseBlueprints(text)
		if err != nil {
			return
		}
		for _, bp := range blueprints {
			if verr := bp.Validate(); verr != nil {
				t.Errorf("accepted invalid blueprint %+v: %v", bp, verr)
			}
		}
	})
}
