// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package request

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidatePersona(t *testing.T) {
	known := []string{"ai_engineer", "devops_engineer"}

	if err := ValidatePersona("ai_engineer", known); err != nil {
		t.Fatalf("valid persona rejected: %v", err)
	}

	if err := ValidatePersona("cfo", known); !errors.Is(err, ErrUnknownPersona) {
		t.Fatalf("want ErrUnknownPersona, got %v", err)
	}
	if err := ValidatePersona("", known); !errors.Is(err, ErrUnknownPersona) {
		t.Fatalf("want ErrUnknownPersona for empty name, got %v", err)
	}
}

func TestCleanFocusAreas(t *testing.T) {
	tests := []struct {
		name      string
		in        []string
		defaults  []string
		want      []string
		truncated bool
	}{
		{
			name: "collapses whitespace and strips punctuation",
			in:   []string{"  ai   tools!!", "x", ""},
			want: []string{"Ai tools"},
		},
		{
			name: "keeps allowed characters",
			in:   []string{"ci_cd pipelines", "k8s v1.29", "infra-as-code"},
			want: []string{"Ci_cd pipelines", "K8s v1.29", "Infra-as-code"},
		},
		{
			name:      "caps at ten areas",
			in:        []string{"aaa", "bbb", "ccc", "ddd", "eee", "fff", "ggg", "hhh", "iii", "jjj", "kkk"},
			want:      []string{"Aaa", "Bbb", "Ccc", "Ddd", "Eee", "Fff", "Ggg", "Hhh", "Iii", "Jjj"},
			truncated: true,
		},
		{
			name:     "falls back to persona defaults",
			in:       []string{"!!", "x"},
			defaults: []string{"kubernetes", "terraform"},
			want:     []string{"kubernetes", "terraform"},
		},
		{
			name:     "fallback takes at most eight defaults",
			in:       nil,
			defaults: []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9"},
			want:     []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated, err := CleanFocusAreas(tt.in, tt.defaults)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if truncated != tt.truncated {
				t.Errorf("truncated = %v, want %v", truncated, tt.truncated)
			}
		})
	}
}

func TestCleanFocusAreasNoUsableInput(t *testing.T) {
	_, _, err := CleanFocusAreas([]string{"!!"}, nil)
	if !errors.Is(err, ErrInvalidFocusAreas) {
		t.Fatalf("want ErrInvalidFocusAreas, got %v", err)
	}
}

func TestNormalizeTimeRange(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"7d", "7d"},
		{"30d", "30d"},
		{"90d", "90d"},
		{"6m", "6m"},
		{"1y", "1y"},
		{"Month", "30d"},
		{"WEEK", "7d"},
		{"quarter", "90d"},
		{"year", "1y"},
		{"bogus", "30d"},
		{"", "30d"},
		{"  1y  ", "1y"},
	}

	for _, tt := range tests {
		if got := NormalizeTimeRange(tt.in); got != tt.want {
			t.Errorf("NormalizeTimeRange(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateCorrelationID(t *testing.T) {
	got, err := ValidateCorrelationID("req_12345")
	if err != nil || got != "req_12345" {
		t.Fatalf("valid id: got (%q, %v)", got, err)
	}

	generated, err := ValidateCorrelationID("")
	if err != nil {
		t.Fatalf("empty id should generate: %v", err)
	}
	if len(generated) < 8 {
		t.Fatalf("generated id %q too short", generated)
	}

	for _, bad := range []string{"short", "has spaces here", "bad!chars#"} {
		if _, err := ValidateCorrelationID(bad); !errors.Is(err, ErrInvalidCorrelationID) {
			t.Errorf("ValidateCorrelationID(%q): want ErrInvalidCorrelationID, got %v", bad, err)
		}
	}
}

func TestValidateTimeout(t *testing.T) {
	tests := []struct {
		in      int
		want    int
		wantErr bool
	}{
		{0, 60, false},
		{10, 10, false},
		{120, 120, false},
		{60, 60, false},
		{9, 0, true},
		{121, 0, true},
		{-5, 0, true},
	}

	for _, tt := range tests {
		got, err := ValidateTimeout(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTimeout) {
				t.Errorf("ValidateTimeout(%d): want ErrInvalidTimeout, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ValidateTimeout(%d) = (%d, %v), want %d", tt.in, got, err, tt.want)
		}
	}
}
