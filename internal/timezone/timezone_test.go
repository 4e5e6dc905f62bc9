package timezone

import "testing"

func TestIsValid(t *testing.T) {
	for _, tz := range []string{"UTC", "America/Sao_Paulo", "Europe/Berlin"} {
		if !IsValid(tz) {
			t.Errorf("IsValid(%q) = false", tz)
		}
	}
	for _, tz := range []string{"Mars/Olympus", "not-a-zone"} {
		if IsValid(tz) {
			t.Errorf("IsValid(%q) = true", tz)
		}
	}
}

func TestLocationFallsBackToDefault(t *testing.T) {
	loc := Location("definitely/bogus")
	if loc.String() != DefaultTimezone {
		t.Errorf("fallback location = %s, want %s", loc, DefaultTimezone)
	}
}
