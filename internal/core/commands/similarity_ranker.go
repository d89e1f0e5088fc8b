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

package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/popchoice/gcp-go-movie-match/internal/core/cor"
	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
	"github.com/popchoice/gcp-go-movie-match/internal/core/services"
)

// CandidateSearcher runs the vector search and returns the raw candidate
// pool, ordered by similarity.
type CandidateSearcher interface {
	FindCandidates(ctx context.Context, embedding []float64) ([]*model.FilmMatch, error)
}

// SimilarityRanker searches the catalog with the profile embedding and then
// filters and re-scores the pool with the preference vector and the
// exclusion sets.
type SimilarityRanker struct {
	cor.BaseCommand
	searcher CandidateSearcher
	params   services.RankingParams
}

// NewSimilarityRanker constructs the command.
func NewSimilarityRanker(name string, searcher CandidateSearcher, params services.RankingParams) *SimilarityRanker {
	out := &SimilarityRanker{BaseCommand: *cor.NewBaseCommand(name), searcher: searcher, params: params}
	out.InputParamName = CtxEmbedding
	out.OutputParamName = CtxMatches
	return out
}

// IsExecutable also requires the preference vector and the exclusion sets.
func (t *SimilarityRanker) IsExecutable(context cor.Context) bool {
	return t.BaseCommand.IsExecutable(context) &&
		context.Get(CtxPreferences) != nil &&
		context.Get(CtxExclusions) != nil
}

// Execute finds and ranks the candidate films.
func (t *SimilarityRanker) Execute(context cor.Context) {
	embedding := context.Get(t.GetInputParam()).([]float64)
	prefs := context.Get(CtxPreferences).(model.Coefficients)
	exclusions := context.Get(CtxExclusions).(*services.Exclusions)

	candidates, err := t.searcher.FindCandidates(context.GetContext(), embedding)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("candidate search failed: %w", err))
		return
	}

	matches := services.RankCandidates(candidates, prefs, exclusions, t.params)
	if len(matches) == 0 {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), errors.New("no film matched above the similarity threshold"))
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), matches)
}
