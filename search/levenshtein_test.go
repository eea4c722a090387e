package search

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "anna", "anna", 0},
		{"both empty", "", "", 0},
		{"empty left", "", "jan", 3},
		{"empty right", "jan", "", 3},
		{"single substitution", "jon", "jan", 1},
		{"single insertion", "jon", "john", 1},
		{"kitten sitting", "kitten", "sitting", 3},
		{"case matters", "Anna", "anna", 1},
		{"multibyte runes", "Wiśniewska", "Wisniewska", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			// Symmetric by contract.
			if got := Distance(tt.b, tt.a); got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestNormalizedDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 0},
		{"identical", "anna", "anna", 0},
		{"completely different", "abc", "xyz", 1},
		{"one of four", "jon", "john", 0.25},
		{"empty against nonempty", "", "anna", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizedDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("NormalizedDistance(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNormalizedDistanceBounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "completely unrelated string"},
		{"kitten", "sitting"},
		{"", "x"},
		{"same", "same"},
	}
	for _, pair := range pairs {
		got := NormalizedDistance(pair[0], pair[1])
		if got < 0 || got > 1 {
			t.Errorf("NormalizedDistance(%q, %q) = %v, outside [0, 1]", pair[0], pair[1], got)
		}
	}
}
