package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"petchat/internal/model"
	"petchat/internal/utils"
)

// ErrInvalidSchema is returned when the training data has no "intents" list
var ErrInvalidSchema = errors.New("training data must contain an 'intents' list")

type trainingFile struct {
	Intents  json.RawMessage `json:"intents"`
	Products []model.Product `json:"products"`
}

// ReadTrainingFile reads and validates a JSON training file
func ReadTrainingFile(path string) (*model.Catalog, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read training file: %w", err)
	}
	return ParseTrainingData(data)
}

// ParseTrainingData validates and decodes training data. The returned
// warnings describe intents that were dropped while preparing the table.
func ParseTrainingData(data []byte) (*model.Catalog, []string, error) {
	var raw trainingFile
	if err := utils.DecodeLenientJSON(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to decode training data: %w", err)
	}

	trimmed := bytes.TrimSpace(raw.Intents)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil, ErrInvalidSchema
	}

	var intents []model.Intent
	if err := json.Unmarshal(trimmed, &intents); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	prepared, warnings := PrepareIntents(intents)
	products := raw.Products
	if products == nil {
		products = []model.Product{}
	}

	return &model.Catalog{Intents: prepared, Products: products}, warnings, nil
}

// PrepareIntents normalizes patterns and enforces the table invariants:
// ids are unique (first wins) and every kept intent has at least one response.
func PrepareIntents(intents []model.Intent) ([]model.Intent, []string) {
	var warnings []string
	seen := make(map[string]bool, len(intents))
	out := make([]model.Intent, 0, len(intents))

	for i, intent := range intents {
		id := strings.TrimSpace(intent.ID)
		if id == "" {
			warnings = append(warnings, fmt.Sprintf("intent #%d has no id, skipped", i))
			continue
		}
		if seen[id] {
			warnings = append(warnings, fmt.Sprintf("duplicate intent %q, keeping the first", id))
			continue
		}

		responses := make([]string, 0, len(intent.Responses))
		for _, r := range intent.Responses {
			if strings.TrimSpace(r) != "" {
				responses = append(responses, r)
			}
		}
		if len(responses) == 0 {
			warnings = append(warnings, fmt.Sprintf("intent %q has no responses, skipped", id))
			continue
		}

		patterns := make([]string, 0, len(intent.Patterns))
		for _, p := range intent.Patterns {
			if n := utils.Normalize(p); n != "" {
				patterns = append(patterns, n)
			}
		}

		seen[id] = true
		out = append(out, model.Intent{ID: id, Patterns: patterns, Responses: responses})
	}

	return out, warnings
}
