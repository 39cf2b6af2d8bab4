package common

import (
	"testing"
	"time"
)

func TestRequiredString(t *testing.T) {
	args := map[string]interface{}{"title": "Weekly Review", "empty": ""}

	got, err := RequiredString(args, "title")
	if err != nil {
		t.Fatalf("RequiredString() unexpected error = %v", err)
	}
	if got != "Weekly Review" {
		t.Errorf("RequiredString() = %q", got)
	}

	if _, err := RequiredString(args, "missing"); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := RequiredString(args, "empty"); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestOptionalString(t *testing.T) {
	args := map[string]interface{}{"period": "week"}
	if got := OptionalString(args, "period", "month"); got != "week" {
		t.Errorf("OptionalString() = %q, want week", got)
	}
	if got := OptionalString(args, "missing", "month"); got != "month" {
		t.Errorf("OptionalString() fallback = %q, want month", got)
	}
}

func TestRequiredTime(t *testing.T) {
	args := map[string]interface{}{
		"start_time": "2025-03-10T14:00:00Z",
		"bad":        "next tuesday",
	}

	got, err := RequiredTime(args, "start_time")
	if err != nil {
		t.Fatalf("RequiredTime() unexpected error = %v", err)
	}
	want := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("RequiredTime() = %s, want %s", got, want)
	}

	if _, err := RequiredTime(args, "bad"); err == nil {
		t.Error("expected error for malformed timestamp")
	}
	if _, err := RequiredTime(args, "missing"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestOptionalTime(t *testing.T) {
	fallback := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	args := map[string]interface{}{
		"end_time": "2025-03-10T15:00:00Z",
		"bad":      "soon",
	}

	got, err := OptionalTime(args, "end_time", fallback)
	if err != nil {
		t.Fatalf("OptionalTime() unexpected error = %v", err)
	}
	if got.Equal(fallback) {
		t.Error("OptionalTime() ignored the provided value")
	}

	got, err = OptionalTime(args, "missing", fallback)
	if err != nil {
		t.Fatalf("OptionalTime() unexpected error = %v", err)
	}
	if !got.Equal(fallback) {
		t.Errorf("OptionalTime() = %s, want fallback", got)
	}

	// A malformed value is an error, not a silent fallback.
	if _, err := OptionalTime(args, "bad", fallback); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}

func TestStringList(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"whitespace", " alice , bob ", []string{"alice", "bob"}},
		{"empty entries", "a,,b,", []string{"a", "b"}},
		{"empty string", "", nil},
		{"wrong type", 42, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]interface{}{"list": tt.input}
			got := StringList(args, "list")
			if len(got) != len(tt.expected) {
				t.Fatalf("StringList(%v) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("StringList(%v)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestIntArgs(t *testing.T) {
	// JSON numbers arrive as float64.
	args := map[string]interface{}{"duration": float64(45)}

	got, err := RequiredInt(args, "duration")
	if err != nil {
		t.Fatalf("RequiredInt() unexpected error = %v", err)
	}
	if got != 45 {
		t.Errorf("RequiredInt() = %d, want 45", got)
	}
	if _, err := RequiredInt(args, "missing"); err == nil {
		t.Error("expected error for missing key")
	}

	if got := OptionalInt(args, "duration", 10); got != 45 {
		t.Errorf("OptionalInt() = %d, want 45", got)
	}
	if got := OptionalInt(args, "missing", 10); got != 10 {
		t.Errorf("OptionalInt() fallback = %d, want 10", got)
	}
}
