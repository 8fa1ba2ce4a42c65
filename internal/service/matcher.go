package service

import (
	"strings"

	"petchat/internal/logger"
	"petchat/internal/model"
	"petchat/internal/utils"
)

// IntentMatcher matches a message, together with recent history, against the
// intent table
type IntentMatcher struct {
	intents   []model.Intent
	extractor *AttributeExtractor
	picker    Picker
	log       *logger.Logger
}

// NewIntentMatcher creates a matcher over a loaded catalog
func NewIntentMatcher(catalog *model.Catalog, extractor *AttributeExtractor, picker Picker, log *logger.Logger) *IntentMatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &IntentMatcher{
		intents:   catalog.Intents,
		extractor: extractor,
		picker:    picker,
		log:       log,
	}
}

// Match returns the selected intent and its filled response. ok is false when
// nothing matched, which callers treat as a signal to keep routing.
//
// A combined text that seeks a product category always selects
// inquire_product, ahead of any general pattern. When that intent is missing
// from the table the general phase is still skipped.
func (m *IntentMatcher) Match(text string, history []string) (*model.IntentMatch, bool) {
	text = utils.Normalize(text)
	combined := combineHistory(text, history)
	if combined == "" {
		return nil, false
	}

	if IsProductInquiry(combined) {
		for i := range m.intents {
			if m.intents[i].ID == model.IntentInquireProduct {
				return m.selectResponse(&m.intents[i], "", text, true)
			}
		}
		m.log.Debug("product inquiry without inquire_product intent", "text", combined)
		return nil, false
	}

	for i := range m.intents {
		intent := &m.intents[i]
		if intent.ID == model.IntentInquireProduct {
			continue
		}
		for _, pattern := range intent.Patterns {
			if patternMatches(pattern, combined) {
				return m.selectResponse(intent, pattern, text, false)
			}
		}
	}

	m.log.Debug("no intent matched", "text", combined)
	return nil, false
}

func (m *IntentMatcher) selectResponse(intent *model.Intent, pattern, text string, prioritized bool) (*model.IntentMatch, bool) {
	if len(intent.Responses) == 0 {
		return nil, false
	}
	template := choose(m.picker, intent.Responses)
	response := FillTemplate(template, m.extractor.Extract(text))

	m.log.Debug("intent matched", "intent", intent.ID, "pattern", pattern, "prioritized", prioritized)
	return &model.IntentMatch{
		IntentID:    intent.ID,
		Pattern:     pattern,
		Template:    template,
		Response:    response,
		Prioritized: prioritized,
	}, true
}

// patternMatches reports whether any word of the pattern occurs in text
func patternMatches(pattern, text string) bool {
	return utils.ContainsAny(text, strings.Fields(utils.Normalize(pattern)))
}

// combineHistory joins history and the current text, oldest first
func combineHistory(text string, history []string) string {
	parts := make([]string, 0, len(history)+1)
	for _, h := range history {
		if h = utils.Normalize(h); h != "" {
			parts = append(parts, h)
		}
	}
	if text != "" {
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
