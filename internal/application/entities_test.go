package application

import (
	"testing"
)

// TestExtractEntitiesPersons tests person recognition
func TestExtractEntitiesPersons(t *testing.T) {
	result := extractEntities("Ada Lovelace met Charles Babbage to discuss the engine", []string{"person"})

	if len(result.Entities) != 2 {
		t.Fatalf("Expected 2 person entities, got %d: %+v", len(result.Entities), result.Entities)
	}

	names := map[string]bool{}
	for _, e := range result.Entities {
		if e.Type != "person" {
			t.Errorf("Expected type 'person', got '%s'", e.Type)
		}
		if e.Confidence != 0.70 {
			t.Errorf("Expected confidence 0.70, got %.2f", e.Confidence)
		}
		names[e.Text] = true
	}
	if !names["Ada Lovelace"] || !names["Charles Babbage"] {
		t.Errorf("Expected both names recognized, got %v", names)
	}
}

// TestExtractEntitiesOrganizations tests organization recognition via legal
// suffixes
func TestExtractEntitiesOrganizations(t *testing.T) {
	result := extractEntities("Acme Corp partnered with Globex Corporation last year", []string{"organization"})

	if len(result.Entities) != 2 {
		t.Fatalf("Expected 2 organization entities, got %d: %+v", len(result.Entities), result.Entities)
	}
	for _, e := range result.Entities {
		if e.Confidence != 0.75 {
			t.Errorf("Expected confidence 0.75, got %.2f", e.Confidence)
		}
	}
}

// TestExtractEntitiesLocations tests that the preposition is stripped from
// location matches
func TestExtractEntitiesLocations(t *testing.T) {
	result := extractEntities("The conference was held in San Francisco near Golden Gate", []string{"location"})

	if len(result.Entities) != 2 {
		t.Fatalf("Expected 2 location entities, got %d: %+v", len(result.Entities), result.Entities)
	}
	for _, e := range result.Entities {
		if e.Text == "in San Francisco" || e.Text == "near Golden Gate" {
			t.Errorf("Expected preposition stripped, got '%s'", e.Text)
		}
	}
	if result.Entities[0].Text != "San Francisco" {
		t.Errorf("Expected 'San Francisco', got '%s'", result.Entities[0].Text)
	}
}

// TestExtractEntitiesDeduplication tests case-insensitive dedup within a
// category
func TestExtractEntitiesDeduplication(t *testing.T) {
	result := extractEntities("John Smith called. Later, John Smith called again.", []string{"person"})

	if len(result.Entities) != 1 {
		t.Errorf("Expected duplicate mention collapsed to 1 entity, got %d", len(result.Entities))
	}
}

// TestExtractEntitiesUnknownCategory tests that unsupported categories are
// skipped silently
func TestExtractEntitiesUnknownCategory(t *testing.T) {
	result := extractEntities("Ada Lovelace arrived shortly after noon", []string{"person", "spaceship"})

	for _, e := range result.Entities {
		if e.Type == "spaceship" {
			t.Errorf("Expected unknown category skipped, got entity %+v", e)
		}
	}
	if len(result.Entities) != 1 {
		t.Errorf("Expected only the person entity, got %d", len(result.Entities))
	}
}

// TestExtractEntitiesNoMatches tests that zero matches yields an empty list
func TestExtractEntitiesNoMatches(t *testing.T) {
	result := extractEntities("nothing capitalized here at all", []string{"person", "organization", "location"})

	if result.Entities == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(result.Entities) != 0 {
		t.Errorf("Expected no entities, got %d: %+v", len(result.Entities), result.Entities)
	}
}
