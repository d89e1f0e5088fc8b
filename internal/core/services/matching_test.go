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

	"github.com/zeebo/assert"

	"github.com/popchoice/gcp-go-movie-match/internal/core/services"
)

func TestTitlesMatch(t *testing.T) {
	assert.True(t, services.TitlesMatch("The Matrix", "the matrix"))
	assert.True(t, services.TitlesMatch("Matrix", "The Matrix Reloaded"))
	assert.True(t, services.TitlesMatch("The Matrix Reloaded", "Matrix"))
	assert.False(t, services.TitlesMatch("Alien", "The Matrix"))
	assert.False(t, services.TitlesMatch("", "The Matrix"))
	assert.False(t, services.TitlesMatch("   ", "The Matrix"))
}

func TestTokenOverlapScore(t *testing.T) {
	// Both significant query words appear in the title.
	assert.Equal(t, 1.0, services.TokenOverlapScore("harry potter", "Harry Potter and the Philosopher's Stone"))
	// Half of the query words match.
	assert.Equal(t, 0.5, services.TokenOverlapScore("harry houdini", "Harry Potter and the Philosopher's Stone"))
	// Short words (<= 2 chars) do not count as query words.
	assert.Equal(t, 0.0, services.TokenOverlapScore("of it", "The Matrix"))
	assert.Equal(t, 0.0, services.TokenOverlapScore("", "The Matrix"))
}

func TestBestSynopsisExact(t *testing.T) {
	films := []*services.FilmSummary{
		{Title: "The Matrix Reloaded", Content: "reloaded synopsis"},
		{Title: "The Matrix", Content: "matrix synopsis"},
	}

	// Exact equality wins over containment even when a containment candidate
	// appears earlier in the scan.
	out := services.BestSynopsis("the matrix", films, 0.5)
	assert.Equal(t, "matrix synopsis", out)
}

func TestBestSynopsisContainment(t *testing.T) {
	films := []*services.FilmSummary{
		{Title: "The Matrix Reloaded", Content: "reloaded synopsis"},
	}

	out := services.BestSynopsis("Matrix", films, 0.5)
	assert.Equal(t, "reloaded synopsis", out)
}

func TestBestSynopsisFuzzy(t *testing.T) {
	films := []*services.FilmSummary{
		{Title: "Alien", Content: "alien synopsis"},
		{Title: "Harry Potter and the Philosopher's Stone", Content: "potter synopsis"},
	}

	// Answers with extra words still land on the right film through token
	// overlap.
	out := services.BestSynopsis("that harry potter film", films, 0.5)
	assert.Equal(t, "potter synopsis", out)

	// Below the threshold nothing is returned.
	out = services.BestSynopsis("completely unrelated words", films, 0.5)
	assert.Equal(t, "", out)
}

func TestBestSynopsisEmptyQuery(t *testing.T) {
	films := []*services.FilmSummary{{Title: "Alien", Content: "alien synopsis"}}
	assert.Equal(t, "", services.BestSynopsis("  ", films, 0.5))
}
