package config

import "testing"

func TestParseSlotOverrides(t *testing.T) {
	overrides := parseSlotOverrides("13:00=30,21:00=20")
	if len(overrides) != 2 {
		t.Fatalf("expected 2 overrides, got %d", len(overrides))
	}
	if overrides["13:00"] != 30 || overrides["21:00"] != 20 {
		t.Errorf("unexpected overrides: %v", overrides)
	}

	if got := parseSlotOverrides(""); len(got) != 0 {
		t.Errorf("empty input must yield no overrides, got %v", got)
	}

	// Malformed entries are dropped, valid ones survive.
	partial := parseSlotOverrides("13:00=30,garbage,21:00=x")
	if len(partial) != 1 || partial["13:00"] != 30 {
		t.Errorf("expected only the valid entry, got %v", partial)
	}
}

func TestVenueCapacity_MaxCoversAt(t *testing.T) {
	venue := VenueCapacity{
		DefaultMaxCovers: 50,
		SlotOverrides:    map[string]int{"21:00": 20},
	}

	if got := venue.MaxCoversAt("18:00"); got != 50 {
		t.Errorf("expected default 50, got %d", got)
	}
	if got := venue.MaxCoversAt("21:00"); got != 20 {
		t.Errorf("expected override 20, got %d", got)
	}
}
