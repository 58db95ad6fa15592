package suggest

import (
	"reflect"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"due", "due", 0},
		{"kitten", "sitting", 3},
		{"titel", "title", 2},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClosest(t *testing.T) {
	keys := []string{"backend", "deadline_window_days", "log_format", "log_level", "task_sort"}
	tests := []struct {
		in   string
		want []string
	}{
		{"backnd", []string{"backend"}},
		{"--log-level", []string{"log_level"}},
		{"dead", []string{"deadline_window_days"}},
		{"LOG_LEVL", []string{"log_level"}},
		{"color", nil},
		{"", nil},
	}
	for _, tt := range tests {
		if got := Closest(tt.in, keys); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Closest(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHint(t *testing.T) {
	sorts := []string{"created", "due", "priority", "status", "title"}
	if got := Hint("priorty", sorts); got != "did you mean priority?" {
		t.Errorf("Hint(priorty) = %q", got)
	}
	if got := Hint("xyzzy", sorts); got != "" {
		t.Errorf("Hint(xyzzy) = %q, want empty", got)
	}
}
