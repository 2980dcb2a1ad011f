// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package stubapi implements a deterministic stand-in for the AI backend the
dashboard talks to.

It serves the same endpoints and envelope as the real service, with keyword
heuristics in place of models: CVs are scored by overlap with the job
description, policy answers are the best-matching sentences of the uploaded
documents, and chat intent is detected by phrase. Bookings live in memory.

Architecture:

  - [HRHandler] and [AutoSphereHandler] are mounted by internal/api.
  - Wire types are shared with the client packages (hr, autosphere).
  - Nothing here calls out of process.
*/
package stubapi

import (
	"math"
	"strings"
	"unicode"
)

// stopWords are dropped before keyword matching.
var stopWords = map[string]struct{}{
	"and": {}, "the": {}, "for": {}, "with": {}, "you": {}, "your": {}, "our": {},
	"are": {}, "will": {}, "have": {}, "has": {}, "who": {}, "what": {}, "how": {},
	"this": {}, "that": {}, "from": {}, "can": {}, "all": {}, "any": {}, "per": {},
	"not": {}, "they": {}, "their": {}, "about": {}, "into": {}, "must": {}, "should": {},
	"years": {}, "experience": {}, "strong": {}, "team": {}, "work": {}, "using": {},
	"does": {}, "many": {}, "much": {}, "when": {}, "where": {}, "which": {}, "get": {},
}

// words splits text into lowercase tokens of letters, digits, '+' and '#'.
func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
}

// keywords returns the distinct non-stop-word tokens of text in first-seen order.
func keywords(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, word := range words(text) {
		if len(word) < 3 && !strings.ContainsAny(word, "+#") {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}

// counts tallies token occurrences.
func counts(text string) map[string]int {
	tally := make(map[string]int)
	for _, word := range words(text) {
		tally[word]++
	}
	return tally
}

// overlap is the number of keywords present in tally.
func overlap(keys []string, tally map[string]int) int {
	hits := 0
	for _, key := range keys {
		if tally[key] > 0 {
			hits++
		}
	}
	return hits
}

// sentences splits on terminal punctuation and newlines, dropping blanks.
func sentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	out := make([]string, 0, len(raw))
	for _, sentence := range raw {
		if trimmed := strings.TrimSpace(sentence); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
