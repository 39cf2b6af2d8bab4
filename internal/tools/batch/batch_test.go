package batch

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParseStringOrArray(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    []string
		wantErr bool
	}{
		{
			name:  "single id",
			input: "mtg-001",
			want:  []string{"mtg-001"},
		},
		{
			name:  "array of ids",
			input: []interface{}{"mtg-001", "mtg-002", "mtg-003"},
			want:  []string{"mtg-001", "mtg-002", "mtg-003"},
		},
		{
			name:  "JSON text array",
			input: `["mtg-001", "mtg-002"]`,
			want:  []string{"mtg-001", "mtg-002"},
		},
		{
			name:  "string that only looks like JSON",
			input: `[draft] weekly sync`,
			want:  []string{`[draft] weekly sync`},
		},
		{
			name:  "malformed JSON falls back to a single id",
			input: `[not json`,
			want:  []string{`[not json`},
		},
		{
			name:    "nil",
			input:   nil,
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "empty array",
			input:   []interface{}{},
			wantErr: true,
		},
		{
			name:    "empty JSON text array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "array with non-string element",
			input:   []interface{}{"mtg-001", 7},
			wantErr: true,
		},
		{
			name:    "array with empty id",
			input:   []interface{}{"mtg-001", ""},
			wantErr: true,
		},
		{
			name:    "unsupported type",
			input:   42,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringOrArray(tt.input, "meeting_id")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStringOrArray() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseStringOrArray() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProcessBatch(t *testing.T) {
	ids := []string{"mtg-001", "mtg-002", "mtg-003"}

	results := ProcessBatch(ids, func(id string) (string, error) {
		if id == "mtg-002" {
			return "", errors.New("meeting not found")
		}
		return "scored " + id, nil
	})

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].Status != StatusSuccess || results[0].Result != "scored mtg-001" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Status != StatusError || results[1].Error != "meeting not found" {
		t.Errorf("results[1] = %+v", results[1])
	}
	if results[2].Status != StatusSuccess || results[2].Result != "scored mtg-003" {
		t.Errorf("results[2] = %+v", results[2])
	}
}

func TestFormatResults(t *testing.T) {
	results := []Result{
		NewSuccessResult("mtg-001", "scored"),
		NewSuccessResult("mtg-002", "scored"),
		NewErrorResult("mtg-003", errors.New("meeting not found")),
	}

	var summary Summary
	if err := json.Unmarshal([]byte(FormatResults(results)), &summary); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if summary.Total != 3 || summary.Successful != 2 || summary.Failed != 1 {
		t.Errorf("summary counts = %d/%d/%d, want 3/2/1",
			summary.Total, summary.Successful, summary.Failed)
	}
	if len(summary.Results) != 3 {
		t.Errorf("len(Results) = %d, want 3", len(summary.Results))
	}
}

func TestResultConstructors(t *testing.T) {
	ok := NewSuccessResult("mtg-001", "done")
	if ok.Status != StatusSuccess || ok.Result != "done" || ok.Error != "" {
		t.Errorf("NewSuccessResult = %+v", ok)
	}

	bad := NewErrorResult("mtg-002", errors.New("boom"))
	if bad.Status != StatusError || bad.Error != "boom" || bad.Result != "" {
		t.Errorf("NewErrorResult = %+v", bad)
	}
}
