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

package services_test

import (
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/stretchr/testify/require"

	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
	"github.com/popchoice/gcp-go-movie-match/internal/core/services"
)

var rankingParams = services.RankingParams{
	MatchThreshold:    0.3,
	MatchCount:        4,
	CoefficientWeight: 0.05,
}

func candidate(id string, similarity float64) *model.FilmMatch {
	return &model.FilmMatch{
		Id:           id,
		Title:        id,
		Similarity:   similarity,
		Coefficients: model.DefaultCoefficients(),
	}
}

func TestRankCandidatesThreshold(t *testing.T) {
	candidates := []*model.FilmMatch{
		candidate("above", 0.8),
		candidate("at", 0.3),
		candidate("below", 0.29),
	}

	out := services.RankCandidates(candidates, model.DefaultCoefficients(), nil, rankingParams)

	require.Len(t, out, 2)
	require.Equal(t, "above", out[0].Id)
	require.Equal(t, "at", out[1].Id)
}

func TestRankCandidatesExclusions(t *testing.T) {
	inFranchise := candidate("sequel", 0.9)
	inFranchise.CollectionId = bigquery.NullInt64{Int64: 42, Valid: true}

	candidates := []*model.FilmMatch{
		candidate("named", 0.95),
		inFranchise,
		candidate("keeper", 0.5),
	}
	exclusions := &services.Exclusions{
		Ids:         []string{"named"},
		Collections: []int64{42},
	}

	out := services.RankCandidates(candidates, model.DefaultCoefficients(), exclusions, rankingParams)

	// The named film and its franchise sibling are both dropped.
	require.Len(t, out, 1)
	require.Equal(t, "keeper", out[0].Id)
}

func TestRankCandidatesBoostMath(t *testing.T) {
	c := candidate("scored", 0.6)
	c.Coefficients = model.Coefficients{EraNew: 1.0, MoodScary: 1.0}
	prefs := model.Coefficients{EraNew: 0.5, MoodScary: 0.5}

	out := services.RankCandidates([]*model.FilmMatch{c}, prefs, nil, rankingParams)

	require.Len(t, out, 1)
	require.InDelta(t, 1.0, out[0].Boost, 1e-9)
	require.InDelta(t, 0.6+0.05*1.0, out[0].Score, 1e-9)
}

func TestRankCandidatesOrderingAndCap(t *testing.T) {
	// A film with a slightly lower similarity but a much better coefficient
	// agreement can overtake one just above it.
	agreeing := candidate("agreeing", 0.58)
	agreeing.Coefficients = model.Coefficients{MoodScary: 1.0, EraNew: 1.0}
	prefs := model.Coefficients{MoodScary: 1.0, EraNew: 1.0}

	candidates := []*model.FilmMatch{
		candidate("a", 0.60),
		agreeing,
		candidate("b", 0.55),
		candidate("c", 0.50),
		candidate("d", 0.45),
		candidate("e", 0.40),
	}

	out := services.RankCandidates(candidates, prefs, &services.Exclusions{}, rankingParams)

	require.Len(t, out, 4)
	// agreeing: 0.58 + 0.05*2.0 = 0.68; a: 0.60 + 0.05*(0.5+0.25) = 0.6375.
	require.Equal(t, "agreeing", out[0].Id)
	require.Equal(t, "a", out[1].Id)
	require.Equal(t, "b", out[2].Id)
	require.Equal(t, "c", out[3].Id)
}

func TestRankCandidatesEmptyPool(t *testing.T) {
	out := services.RankCandidates(nil, model.DefaultCoefficients(), nil, rankingParams)
	require.Empty(t, out)
}
