// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"strings"
	"testing"
	"time"
)

func TestNewsletterFiveLines(t *testing.T) {
	text := "alpha\nbeta\n\ngamma\ndelta\nepsilon\n"
	out := Newsletter(text, testProfile(), time.Now())

	if !strings.Contains(out, "## Key Updates") {
		t.Fatal("missing Key Updates heading")
	}
	for _, item := range []string{"1. alpha", "2. beta", "3. gamma", "4. delta", "5. epsilon"} {
		if !strings.Contains(out, item) {
			t.Errorf("missing item %q", item)
		}
	}
	if strings.Contains(out, "6. ") {
		t.Error("blank lines must not become items")
	}
	if !strings.Contains(out, "## Action Items") {
		t.Error("missing fixed Action Items block")
	}
}

func TestNewsletterEmptyText(t *testing.T) {
	out := Newsletter("", testProfile(), time.Now())

	if !strings.Contains(out, "No updates available") {
		t.Error("empty input should render the empty-edition notice")
	}
	if !strings.Contains(out, "## Action Items") {
		t.Error("Action Items block is fixed, even for empty input")
	}
}

func TestDailyBriefCapsAtThree(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		want  int
	}{
		{"empty", 0, 0},
		{"one line", 1, 1},
		{"exactly three", 3, 3},
		{"hundred lines", 100, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			for i := 0; i < tt.lines; i++ {
				b.WriteString("headline\n")
			}
			out := DailyBrief(b.String(), testProfile(), []string{"Models"}, time.Now())

			got := strings.Count(out, ". headline")
			if got != tt.want {
				t.Errorf("numbered items = %d, want %d", got, tt.want)
			}
			if strings.Contains(out, "4. ") {
				t.Error("brief must never exceed three items")
			}
		})
	}
}

func TestDailyBriefFooterAndAction(t *testing.T) {
	out := DailyBrief("news\n", testProfile(), []string{"Models", "Training"}, time.Now())

	if !strings.Contains(out, "Focus areas: Models, Training") {
		t.Error("missing focus-areas footer")
	}
	if !strings.Contains(out, "**Today:**") {
		t.Error("missing fixed action line")
	}
}
