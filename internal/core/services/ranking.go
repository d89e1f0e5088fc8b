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
// sources. This file implements the ranking blend as a pure function over
// the candidate pool returned by the vector search, so the filtering and
// scoring arithmetic is auditable and testable without a database.
package services

import (
	"sort"

	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
)

// RankingParams are the policy constants for the blend. They come from
// configuration, not code.
type RankingParams struct {
	MatchThreshold    float64 // Minimum cosine similarity for a candidate to survive.
	MatchCount        int     // Maximum number of candidates returned.
	CoefficientWeight float64 // Weight of the mood/era boost relative to raw similarity.
}

// RankCandidates filters and re-scores the candidate pool:
//
//  1. Candidates whose id or franchise collection id is excluded are
//     dropped. Franchise expansion prevents recommending "Part 2" right
//     after the user names "Part 1".
//  2. Candidates below the similarity threshold are dropped.
//  3. Each survivor gets score = similarity + weight * boost, where boost is
//     the dot product of the candidate's stored mood/era coefficients and
//     the request's preference vector. The weight is small so semantic
//     similarity dominates and coefficients only nudge ties.
//  4. Results are ordered descending by score and capped at MatchCount.
//
// An empty result is a valid outcome, not an error.
func RankCandidates(candidates []*model.FilmMatch, prefs model.Coefficients, exclusions *Exclusions, params RankingParams) []*model.FilmMatch {
	excludedIds := make(map[string]bool)
	excludedCollections := make(map[int64]bool)
	if exclusions != nil {
		for _, id := range exclusions.Ids {
			excludedIds[id] = true
		}
		for _, cid := range exclusions.Collections {
			excludedCollections[cid] = true
		}
	}

	out := make([]*model.FilmMatch, 0, len(candidates))
	for _, c := range candidates {
		if excludedIds[c.Id] {
			continue
		}
		if c.CollectionId.Valid && excludedCollections[c.CollectionId.Int64] {
			continue
		}
		if c.Similarity < params.MatchThreshold {
			continue
		}
		c.Boost = c.Coefficients.Dot(prefs)
		c.Score = c.Similarity + params.CoefficientWeight*c.Boost
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if params.MatchCount > 0 && len(out) > params.MatchCount {
		out = out[:params.MatchCount]
	}
	return out
}
