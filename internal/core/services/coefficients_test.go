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

	"github.com/stretchr/testify/require"

	"github.com/popchoice/gcp-go-movie-match/internal/core/services"
)

func TestEraScoresBoundaries(t *testing.T) {
	eraNew, eraClassic := services.EraScores(1999)
	require.InDelta(t, 0.1, eraNew, 1e-9)
	require.InDelta(t, 1.0, eraClassic, 1e-9)

	// 2000 sits at the start of the linear blend.
	eraNew, eraClassic = services.EraScores(2000)
	require.InDelta(t, 0.1, eraNew, 1e-9)
	require.InDelta(t, 1.0, eraClassic, 1e-9)

	eraNew, eraClassic = services.EraScores(2005)
	require.InDelta(t, 0.55, eraNew, 1e-9)
	require.InDelta(t, 0.55, eraClassic, 1e-9)

	eraNew, eraClassic = services.EraScores(2010)
	require.InDelta(t, 1.0, eraNew, 1e-9)
	require.InDelta(t, 0.1, eraClassic, 1e-9)

	eraNew, eraClassic = services.EraScores(2024)
	require.InDelta(t, 1.0, eraNew, 1e-9)
	require.InDelta(t, 0.1, eraClassic, 1e-9)
}

func TestEraScoresUnknownYear(t *testing.T) {
	eraNew, eraClassic := services.EraScores(0)
	require.InDelta(t, 0.5, eraNew, 1e-9)
	require.InDelta(t, 0.5, eraClassic, 1e-9)
}

func TestMoodScoresHorror(t *testing.T) {
	// Horror (27) and Thriller (53) are primary scary genres, Mystery (9648)
	// secondary.
	fun, serious, inspiring, scary := services.MoodScores([]int64{27, 53, 9648})
	require.InDelta(t, 1.0, scary, 1e-9)
	require.InDelta(t, 0.0, fun+serious+inspiring, 1e-9)
}

func TestMoodScoresMixedNormalized(t *testing.T) {
	// Comedy (35) votes fun with full weight; Adventure (12) votes fun at
	// half weight and inspiring at half weight.
	fun, serious, inspiring, scary := services.MoodScores([]int64{35, 12})
	require.InDelta(t, 1.0, fun+serious+inspiring+scary, 1e-9)
	require.InDelta(t, 1.5/2.0, fun, 1e-9)
	require.InDelta(t, 0.5/2.0, inspiring, 1e-9)
	require.InDelta(t, 0.0, serious, 1e-9)
	require.InDelta(t, 0.0, scary, 1e-9)
}

func TestMoodScoresNoGenres(t *testing.T) {
	fun, serious, inspiring, scary := services.MoodScores(nil)
	require.InDelta(t, 0.25, fun, 1e-9)
	require.InDelta(t, 0.25, serious, 1e-9)
	require.InDelta(t, 0.25, inspiring, 1e-9)
	require.InDelta(t, 0.25, scary, 1e-9)
}
