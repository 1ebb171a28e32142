package entities

import (
	"errors"
	"testing"
)

func TestParseAudience(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    Audience
		wantErr error
	}{
		{"children", "CHILDREN", AudienceChildren, nil},
		{"young adult", "YOUNG_ADULT", AudienceYoungAdult, nil},
		{"adult", "ADULT", AudienceAdult, nil},
		{"empty", "", "", ErrInvalidAudience},
		{"lowercase", "adult", "", ErrInvalidAudience},
		{"unknown", "TEEN", "", ErrInvalidAudience},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAudience(tt.value)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseAudience(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseAudience(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestAudiences(t *testing.T) {
	all := Audiences()
	if len(all) != 3 {
		t.Fatalf("Audiences() returned %d values, want 3", len(all))
	}
	for _, a := range all {
		if _, err := ParseAudience(string(a)); err != nil {
			t.Errorf("Audiences() contains unparseable value %q", a)
		}
	}
}
