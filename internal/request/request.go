// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package request validates and normalizes incoming search parameters.
// All functions are pure: no I/O, no registry access beyond the inputs
// handed in. Validation failures surface before any streaming attempt;
// time-range normalization never fails and degrades to the default.
package request

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Validation error taxonomy.
var (
	ErrUnknownPersona       = errors.New("unknown persona")
	ErrInvalidFocusAreas    = errors.New("invalid focus areas")
	ErrInvalidCorrelationID = errors.New("invalid correlation id")
	ErrInvalidTimeout       = errors.New("invalid timeout")
)

const (
	// MaxFocusAreas caps the cleaned focus-area list per request.
	MaxFocusAreas = 10

	// DefaultTimeRange is used for absent or unrecognized tokens.
	DefaultTimeRange = "30d"

	// Timeout bounds for the streaming phase, in seconds.
	MinTimeoutSeconds     = 10
	MaxTimeoutSeconds     = 120
	DefaultTimeoutSeconds = 60

	minFocusAreaLen = 3
	fallbackAreas   = 8
)

// timeRanges maps accepted tokens (canonical forms and synonyms) to the
// canonical token. This table is part of the wire contract.
var timeRanges = map[string]string{
	"7d":      "7d",
	"30d":     "30d",
	"90d":     "90d",
	"6m":      "6m",
	"1y":      "1y",
	"week":    "7d",
	"month":   "30d",
	"quarter": "90d",
	"year":    "1y",
}

var (
	correlationIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,}$`)
	focusAreaStrip       = regexp.MustCompile(`[^A-Za-z0-9 _.\-]`)
	whitespaceRun        = regexp.MustCompile(`\s+`)
)

// ValidatePersona checks that name is one of the known persona names.
func ValidatePersona(name string, known []string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: persona is required", ErrUnknownPersona)
	}
	for _, k := range known {
		if k == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (available: %v)", ErrUnknownPersona, name, known)
}

// CleanFocusAreas normalizes the caller-supplied focus areas: entries are
// whitespace-collapsed, stripped of characters outside [A-Za-z0-9 _.-],
// capitalized on the first letter, and dropped when shorter than three
// characters. The result is capped at MaxFocusAreas; truncated reports
// whether the cap applied. When nothing survives cleaning the persona's
// first eight configured areas are used instead; ErrInvalidFocusAreas is
// returned only when that fallback is empty too, which a validated
// profile never produces.
func CleanFocusAreas(areas, personaDefaults []string) (cleaned []string, truncated bool, err error) {
	for _, area := range areas {
		c := cleanFocusArea(area)
		if len(c) >= minFocusAreaLen {
			cleaned = append(cleaned, c)
		}
	}

	if len(cleaned) > MaxFocusAreas {
		cleaned = cleaned[:MaxFocusAreas]
		truncated = true
	}

	if len(cleaned) == 0 {
		n := fallbackAreas
		if n > len(personaDefaults) {
			n = len(personaDefaults)
		}
		cleaned = append(cleaned, personaDefaults[:n]...)
	}

	if len(cleaned) == 0 {
		return nil, false, fmt.Errorf("%w: no usable focus areas and persona defines none", ErrInvalidFocusAreas)
	}

	return cleaned, truncated, nil
}

// cleanFocusArea normalizes a single focus-area string.
func cleanFocusArea(area string) string {
	s := whitespaceRun.ReplaceAllString(strings.TrimSpace(area), " ")
	s = focusAreaStrip.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	runes := []rune(s)
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}

// NormalizeTimeRange maps value onto a canonical time-range token,
// case-insensitively and accepting the word synonyms (week, month,
// quarter, year). Unknown values degrade to DefaultTimeRange rather
// than failing.
func NormalizeTimeRange(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if canonical, ok := timeRanges[normalized]; ok {
		return canonical
	}
	return DefaultTimeRange
}

// ValidateCorrelationID returns the supplied id when well formed, or a
// freshly generated one when absent. A supplied id must be at least
// eight characters of [A-Za-z0-9_-].
func ValidateCorrelationID(id string) (string, error) {
	if id == "" {
		return uuid.NewString(), nil
	}
	if !correlationIDPattern.MatchString(id) {
		return "", fmt.Errorf("%w: %q must be >= 8 characters of [A-Za-z0-9_-]", ErrInvalidCorrelationID, id)
	}
	return id, nil
}

// ValidateTimeout bounds the streaming timeout. Zero selects the
// default; anything else outside [MinTimeoutSeconds, MaxTimeoutSeconds]
// is rejected.
func ValidateTimeout(seconds int) (int, error) {
	if seconds == 0 {
		return DefaultTimeoutSeconds, nil
	}
	if seconds < MinTimeoutSeconds || seconds > MaxTimeoutSeconds {
		return 0, fmt.Errorf("%w: %d not in [%d, %d] seconds",
			ErrInvalidTimeout, seconds, MinTimeoutSeconds, MaxTimeoutSeconds)
	}
	return seconds, nil
}
