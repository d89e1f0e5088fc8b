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

// Package profile turns raw per-user answer sets into the two inputs of the
// recommendation pipeline: a natural-language profile string and a numeric
// mood/era preference vector. Classification of a question into a bucket is
// kept separate from formatting and from vote aggregation so each step is
// independently testable.
package profile

import "strings"

// QuestionKind is the bucket a form question falls into, decided by
// substring matching on the cleaned question key.
type QuestionKind int

const (
	// KindOther is the fallback for unrecognized questions; their answers
	// become generic "User prefers ..." statements.
	KindOther QuestionKind = iota
	// KindFavourite marks the favourite-movie question.
	KindFavourite
	// KindEra marks the new-or-classic question. Captured numerically only.
	KindEra
	// KindMood marks the mood question. Captured numerically only.
	KindMood
	// KindPerson marks the famous-film-person question.
	KindPerson
)

// CleanQuestion normalizes a form question key for classification: dashes
// become spaces, question marks are dropped, and the result is lowercased.
// Example: "what's-your-favourite-movie-and-why?" becomes
// "what's your favourite movie and why".
func CleanQuestion(key string) string {
	cleaned := strings.ReplaceAll(key, "-", " ")
	cleaned = strings.ReplaceAll(cleaned, "?", "")
	return strings.ToLower(cleaned)
}

// Classify assigns a question key to its bucket.
func Classify(key string) QuestionKind {
	cleaned := CleanQuestion(key)
	switch {
	case strings.Contains(cleaned, "favourite movie"):
		return KindFavourite
	case strings.Contains(cleaned, "new or classic"):
		return KindEra
	case strings.Contains(cleaned, "mood for"):
		return KindMood
	case strings.Contains(cleaned, "famous film person"):
		return KindPerson
	default:
		return KindOther
	}
}
