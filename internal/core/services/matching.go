// Copyright 2025 PopChoice Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package services contains the business logic for interacting with data
// sources. This file implements the title matching policies as pure
// functions: the permissive two-way containment used for exclusion lookup,
// and the three-tier exact / containment / token-overlap policy used to
// resolve a favourite-movie answer to a catalog synopsis. The tiers are
// separate functions so their precedence and thresholds stay auditable.
package services

import "strings"

// TitlesMatch reports whether two titles match under case-insensitive
// two-way containment: either string containing the other counts. This is
// deliberately permissive and accepts false positives for short titles.
func TitlesMatch(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// TokenOverlapScore computes the fuzzy match score between a free-text query
// and a title: the count of title words that share a substring relationship
// with any query word, divided by the count of query words longer than two
// characters. Returns 0 when the query has no usable words.
func TokenOverlapScore(query, title string) float64 {
	queryWords := significantWords(query)
	if len(queryWords) == 0 {
		return 0
	}
	titleWords := strings.Fields(strings.ToLower(title))

	matches := 0
	for _, tw := range titleWords {
		for _, qw := range queryWords {
			if strings.Contains(tw, qw) || strings.Contains(qw, tw) {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(queryWords))
}

// BestSynopsis resolves a favourite-movie answer to the stored synopsis of
// the best-matching catalog film. The policies apply in order until one
// succeeds: exact case-insensitive equality, two-way containment, then
// token-overlap fuzzy matching where the best-scoring candidate is accepted
// only at or above fuzzyThreshold. An empty result is a valid no-match
// outcome, never an error.
func BestSynopsis(query string, films []*FilmSummary, fuzzyThreshold float64) string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return ""
	}

	// Tier 1: exact equality.
	for _, f := range films {
		if strings.EqualFold(trimmed, f.Title) {
			return f.Content
		}
	}

	// Tier 2: containment either direction.
	for _, f := range films {
		if TitlesMatch(trimmed, f.Title) {
			return f.Content
		}
	}

	// Tier 3: token-overlap fuzzy match, best score wins.
	best := ""
	bestScore := 0.0
	for _, f := range films {
		if score := TokenOverlapScore(trimmed, f.Title); score > bestScore {
			bestScore = score
			best = f.Content
		}
	}
	if bestScore >= fuzzyThreshold {
		return best
	}
	return ""
}

// significantWords lowercases the text and keeps words longer than two
// characters.
func significantWords(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > 2 {
			out = append(out, w)
		}
	}
	return out
}
