package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/napolitain/solver-geode/internal/models"
)

var (
	// ErrMalformedBlueprint is returned when a record cannot be parsed
	ErrMalformedBlueprint = errors.New("malformed blueprint")

	// ErrInvalidBlueprint is returned when a parsed blueprint is inconsistent
	ErrInvalidBlueprint = errors.New("invalid blueprint")
)

// Precompiled regexes for the puzzle text format
var (
	headerRegex   = regexp.MustCompile(`Blueprint\s+(\d+)\s*:`)
	producerRegex = regexp.MustCompile(`Each\s+(\w+)\s+robot\s+costs\s+([^.]+)\.`)
	amountRegex   = regexp.MustCompile(`^(\d+)\s+(\w+)$`)
	andRegex      = regexp.MustCompile(`\s+and\s+`)
)

// LoadBlueprints reads blueprints from a file, as JSON when the extension is
// .json and as puzzle text otherwise
func LoadBlueprints(path string) ([]models.Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var blueprints []models.Blueprint
	if strings.EqualFold(filepath.Ext(path), ".json") {
		blueprints, err = ParseBlueprintsJSON(data)
	} else {
		blueprints, err = ParseBlueprints(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return blueprints, nil
}

// ParseBlueprints parses the puzzle text format. A record runs from one
// "Blueprint N:" header to the next, so records may wrap across lines.
func ParseBlueprints(text string) ([]models.Blueprint, error) {
	headers := headerRegex.FindAllStringSubmatchIndex(text, -1)

	if len(headers) == 0 {
		if strings.TrimSpace(text) != "" {
			return nil, fmt.Errorf("%w: no \"Blueprint N:\" header found", ErrMalformedBlueprint)
		}
		return []models.Blueprint{}, nil
	}
	if lead := strings.TrimSpace(text[:headers[0][0]]); lead != "" {
		return nil, fmt.Errorf("%w: unexpected text before first header: %q", ErrMalformedBlueprint, lead)
	}

	blueprints := make([]models.Blueprint, 0, len(headers))
	for i, h := range headers {
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}

		id, err := strconv.Atoi(text[h[2]:h[3]])
		if err != nil {
			return nil, fmt.Errorf("%w: bad id %q: %v", ErrMalformedBlueprint, text[h[2]:h[3]], err)
		}

		bp, err := parseRecord(id, text[h[1]:end])
		if err != nil {
			return nil, err
		}
		blueprints = append(blueprints, bp)
	}

	if err := validateAll(blueprints); err != nil {
		return nil, err
	}
	return blueprints, nil
}

// parseRecord parses the body of one record, everything after its header
func parseRecord(id int, body string) (models.Blueprint, error) {
	bp := models.Blueprint{ID: id}
	var seen [models.NumResources]bool

	matches := producerRegex.FindAllStringSubmatchIndex(body, -1)
	consumed := 0
	for _, m := range matches {
		if gap := strings.TrimSpace(body[consumed:m[0]]); gap != "" {
			return bp, fmt.Errorf("%w: blueprint %d: unexpected text %q", ErrMalformedBlueprint, id, gap)
		}
		consumed = m[1]

		producer, err := models.ParseResourceType(body[m[2]:m[3]])
		if err != nil {
			return bp, fmt.Errorf("%w: blueprint %d: %v", ErrMalformedBlueprint, id, err)
		}
		if seen[producer] {
			return bp, fmt.Errorf("%w: blueprint %d: %s producer listed twice", ErrMalformedBlueprint, id, producer)
		}
		seen[producer] = true

		costs, err := parseCosts(body[m[4]:m[5]])
		if err != nil {
			return bp, fmt.Errorf("%w: blueprint %d: %s producer: %v", ErrMalformedBlueprint, id, producer, err)
		}
		bp.Producers[producer] = costs
	}
	if rest := strings.TrimSpace(body[consumed:]); rest != "" {
		return bp, fmt.Errorf("%w: blueprint %d: unexpected text %q", ErrMalformedBlueprint, id, rest)
	}

	for _, rt := range models.AllResourceTypes() {
		if !seen[rt] {
			return bp, fmt.Errorf("%w: blueprint %d: missing %s producer", ErrMalformedBlueprint, id, rt)
		}
	}
	return bp, nil
}

// parseCosts parses "3 ore and 14 clay"
func parseCosts(s string) (models.Costs, error) {
	var costs models.Costs
	for _, part := range andRegex.Split(strings.TrimSpace(s), -1) {
		part = strings.Join(strings.Fields(part), " ")
		m := amountRegex.FindStringSubmatch(part)
		if m == nil {
			return costs, fmt.Errorf("bad cost %q", part)
		}
		amount, err := strconv.Atoi(m[1])
		if err != nil {
			return costs, fmt.Errorf("bad amount %q: %v", m[1], err)
		}
		rt, err := models.ParseResourceType(m[2])
		if err != nil {
			return costs, err
		}
		costs[rt] += amount
	}
	return costs, nil
}

// ParseBlueprintsJSON parses
//
//	{"blueprints":[{"id":1,"costs":{"ore":{"ore":4},"clay":{"ore":2},...}}]}
func ParseBlueprintsJSON(data []byte) ([]models.Blueprint, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedBlueprint)
	}

	list := gjson.GetBytes(data, "blueprints")
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: \"blueprints\" must be an array", ErrMalformedBlueprint)
	}

	blueprints := []models.Blueprint{}
	var parseErr error
	list.ForEach(func(_, v gjson.Result) bool {
		bp, err := parseJSONRecord(v)
		if err != nil {
			parseErr = err
			return false
		}
		blueprints = append(blueprints, bp)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if err := validateAll(blueprints); err != nil {
		return nil, err
	}
	return blueprints, nil
}

func parseJSONRecord(v gjson.Result) (models.Blueprint, error) {
	var bp models.Blueprint

	id := v.Get("id")
	if id.Type != gjson.Number || id.Num != float64(id.Int()) {
		return bp, fmt.Errorf("%w: id must be an integer, got %s", ErrMalformedBlueprint, id.Raw)
	}
	bp.ID = int(id.Int())

	costs := v.Get("costs")
	if !costs.IsObject() {
		return bp, fmt.Errorf("%w: blueprint %d: \"costs\" must be an object", ErrMalformedBlueprint, bp.ID)
	}

	var seen [models.NumResources]bool
	var err error
	costs.ForEach(func(key, producerCosts gjson.Result) bool {
		var producer models.ResourceType
		producer, err = models.ParseResourceType(key.String())
		if err != nil {
			err = fmt.Errorf("%w: blueprint %d: %v", ErrMalformedBlueprint, bp.ID, err)
			return false
		}
		if !producerCosts.IsObject() {
			err = fmt.Errorf("%w: blueprint %d: %s producer costs must be an object", ErrMalformedBlueprint, bp.ID, producer)
			return false
		}
		seen[producer] = true

		producerCosts.ForEach(func(resource, amount gjson.Result) bool {
			var rt models.ResourceType
			rt, err = models.ParseResourceType(resource.String())
			if err != nil {
				err = fmt.Errorf("%w: blueprint %d: %s producer: %v", ErrMalformedBlueprint, bp.ID, producer, err)
				return false
			}
			if amount.Type != gjson.Number || amount.Num != float64(amount.Int()) {
				err = fmt.Errorf("%w: blueprint %d: %s producer: %s amount must be an integer, got %s",
					ErrMalformedBlueprint, bp.ID, producer, rt, amount.Raw)
				return false
			}
			bp.Producers[producer][rt] = int(amount.Int())
			return true
		})
		return err == nil
	})
	if err != nil {
		return bp, err
	}

	for _, rt := range models.AllResourceTypes() {
		if !seen[rt] {
			return bp, fmt.Errorf("%w: blueprint %d: missing %s producer", ErrMalformedBlueprint, bp.ID, rt)
		}
	}
	return bp, nil
}

// validateAll checks each blueprint and rejects duplicate ids
func validateAll(blueprints []models.Blueprint) error {
	ids := make(map[int]bool, len(blueprints))
	for i := range blueprints {
		bp := &blueprints[i]
		if err := bp.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBlueprint, err)
		}
		if ids[bp.ID] {
			return fmt.Errorf("%w: duplicate blueprint id %d", ErrInvalidBlueprint, bp.ID)
		}
		ids[bp.ID] = true
	}
	return nil
}
