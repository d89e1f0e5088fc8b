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
// sources. This file computes the offline mood and era coefficient scores
// stored on every catalog row, used by the ingestion job. Mood scores come
// from TMDB genre ids through a fixed genre-to-mood map; era scores come
// from the release year.
package services

// TMDB genre ids grouped by the mood they signal. Primary genres carry full
// weight, secondary genres half weight.
var genreMoodMap = map[string]struct {
	primary   []int64
	secondary []int64
}{
	// Horror, Thriller; Mystery.
	"scary": {primary: []int64{27, 53}, secondary: []int64{9648}},
	// Comedy, Animation, Family; Adventure, Action.
	"fun": {primary: []int64{35, 16, 10751}, secondary: []int64{12, 28}},
	// Drama, History, Documentary; War, Crime.
	"serious": {primary: []int64{18, 36, 99}, secondary: []int64{10752, 80}},
	// Documentary, Family; Drama, Adventure.
	"inspiring": {primary: []int64{99, 10751}, secondary: []int64{18, 12}},
}

const (
	primaryGenreWeight   = 1.0
	secondaryGenreWeight = 0.5

	classicFullYear = 2000 // Films released before this year are fully classic.
	newFullYear     = 2010 // Films released in or after this year are fully new.
)

// MoodScores maps a film's TMDB genre ids to the four mood scores,
// normalized to sum to 1. Films with no genres, or none that map to a mood,
// get the neutral 0.25 for each mood.
func MoodScores(genreIds []int64) (fun, serious, inspiring, scary float64) {
	raw := make(map[string]float64, len(genreMoodMap))
	for mood, mapping := range genreMoodMap {
		for _, genreId := range genreIds {
			if containsId(mapping.primary, genreId) {
				raw[mood] += primaryGenreWeight
			} else if containsId(mapping.secondary, genreId) {
				raw[mood] += secondaryGenreWeight
			}
		}
	}

	total := raw["fun"] + raw["serious"] + raw["inspiring"] + raw["scary"]
	if total == 0 {
		return 0.25, 0.25, 0.25, 0.25
	}
	return raw["fun"] / total, raw["serious"] / total, raw["inspiring"] / total, raw["scary"] / total
}

// EraScores maps a release year to the new/classic score pair. Releases in
// or after 2010 are fully new, releases before 2000 fully classic, and the
// decade between fades linearly from classic to new. An unknown year (zero)
// yields the neutral 0.5/0.5.
func EraScores(year int) (eraNew, eraClassic float64) {
	if year <= 0 {
		return 0.5, 0.5
	}
	switch {
	case year >= newFullYear:
		return 1.0, 0.1
	case year < classicFullYear:
		return 0.1, 1.0
	default:
		position := float64(year-classicFullYear) / float64(newFullYear-classicFullYear)
		return 0.1 + 0.9*position, 1.0 - 0.9*position
	}
}

func containsId(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
