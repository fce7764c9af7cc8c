package application

import (
	"regexp"
	"strings"
)

// Entity is one recognized entity in the extract_entities payload.
type Entity struct {
	Text       string  `json:"text"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// EntityExtraction is the payload of the extract_entities tool.
type EntityExtraction struct {
	Entities []Entity `json:"entities"`
}

// entityPattern pairs a recognition regex with the fixed confidence tagged
// onto its matches. Patterns with a capture group contribute group 1;
// otherwise the full match is used.
type entityPattern struct {
	re         *regexp.Regexp
	confidence float64
}

var entityPatterns = map[string]entityPattern{
	"person": {
		re:         regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`),
		confidence: 0.70,
	},
	"organization": {
		re:         regexp.MustCompile(`\b[A-Z][A-Za-z]*(?: [A-Z][A-Za-z]*)* (?:Inc|Corp|Corporation|LLC|Ltd|Company)\b`),
		confidence: 0.75,
	},
	"location": {
		re:         regexp.MustCompile(`\b(?:in|at|from|near) ([A-Z][a-z]+(?: [A-Z][a-z]+)*)`),
		confidence: 0.65,
	},
}

// extractEntities applies the recognition pattern of each requested category
// over the raw text. Matches are deduplicated case-insensitively within each
// category; categories with no pattern are silently skipped. Zero matches is
// a valid, empty outcome.
func extractEntities(text string, types []string) EntityExtraction {
	entities := make([]Entity, 0)

	for _, category := range types {
		pattern, ok := entityPatterns[category]
		if !ok {
			continue
		}

		seen := make(map[string]bool)
		for _, match := range pattern.re.FindAllStringSubmatch(text, -1) {
			candidate := match[0]
			if len(match) > 1 && match[1] != "" {
				candidate = match[1]
			}

			key := strings.ToLower(candidate)
			if seen[key] {
				continue
			}
			seen[key] = true

			entities = append(entities, Entity{
				Text:       candidate,
				Type:       category,
				Confidence: pattern.confidence,
			})
		}
	}

	return EntityExtraction{Entities: entities}
}
