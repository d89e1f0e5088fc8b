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

// Package profile turns raw per-user answer sets into pipeline inputs.
// This file implements the vote tally: multi-user answer aggregation is a
// plurality vote over a small fixed set of keyword buckets, normalized per
// group so the era pair and the mood quadruple each sum to 1 whenever any
// vote was cast.
package profile

import (
	"strings"

	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
)

// voteTally accumulates keyword votes across all users before
// normalization.
type voteTally struct {
	eraNew, eraClassic             float64
	fun, serious, inspiring, scary float64
}

// TallyVotes scans every user's era and mood answers and aggregates keyword
// votes into a preference vector. An era answer votes for "new" or "classic"
// by containment; a mood answer may vote several of fun/serious/inspiring/
// scary at once. One user contributes at most one vote per keyword per
// question. A group with zero votes keeps its defaults (0.5/0.5 for era,
// 0.25 each for mood).
func TallyVotes(answers []model.AnswerSet) model.Coefficients {
	var tally voteTally

	for _, user := range answers {
		for _, qa := range user {
			answer := strings.ToLower(qa.Answer)
			if answer == "" {
				continue
			}
			switch Classify(qa.Question) {
			case KindEra:
				if strings.Contains(answer, "new") {
					tally.eraNew++
				}
				if strings.Contains(answer, "classic") {
					tally.eraClassic++
				}
			case KindMood:
				if strings.Contains(answer, "fun") {
					tally.fun++
				}
				if strings.Contains(answer, "serious") {
					tally.serious++
				}
				if strings.Contains(answer, "inspiring") {
					tally.inspiring++
				}
				if strings.Contains(answer, "scary") {
					tally.scary++
				}
			}
		}
	}

	prefs := model.DefaultCoefficients()

	if eraTotal := tally.eraNew + tally.eraClassic; eraTotal > 0 {
		prefs.EraNew = tally.eraNew / eraTotal
		prefs.EraClassic = tally.eraClassic / eraTotal
	}
	if moodTotal := tally.fun + tally.serious + tally.inspiring + tally.scary; moodTotal > 0 {
		prefs.MoodFun = tally.fun / moodTotal
		prefs.MoodSerious = tally.serious / moodTotal
		prefs.MoodInspiring = tally.inspiring / moodTotal
		prefs.MoodScary = tally.scary / moodTotal
	}
	return prefs
}
