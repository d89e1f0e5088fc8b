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

// Package commands_test exercises the recommendation pipeline end to end
// with in-memory fakes behind the command interfaces, so the data flow
// between stages is verified without any external service.
package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/popchoice/gcp-go-movie-match/internal/core/commands"
	"github.com/popchoice/gcp-go-movie-match/internal/core/cor"
	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
	"github.com/popchoice/gcp-go-movie-match/internal/core/services"
)

var logger = otelslog.NewLogger("popchoice/tests/commands")

type fakeSynopsisFinder struct {
	synopses map[string]string
	err      error
}

func (f *fakeSynopsisFinder) BestSynopsisFor(_ context.Context, query string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.synopses[query], nil
}

type fakeTitleExtractor struct {
	titles []string
	err    error
	calls  int
}

func (f *fakeTitleExtractor) ExtractTitles(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.titles, f.err
}

type fakeExclusionFinder struct {
	exclusions *services.Exclusions
	calls      int
}

func (f *fakeExclusionFinder) FindExclusions(_ context.Context, _ []string) (*services.Exclusions, error) {
	f.calls++
	return f.exclusions, nil
}

type fakeEmbedder struct {
	embedding []float64
	err       error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	return f.embedding, f.err
}

type fakeSearcher struct {
	candidates []*model.FilmMatch
	err        error
}

func (f *fakeSearcher) FindCandidates(_ context.Context, _ []float64) ([]*model.FilmMatch, error) {
	return f.candidates, f.err
}

type fakeExplainer struct{}

func (f *fakeExplainer) Explain(_ context.Context, content string, _ string) (string, error) {
	return "Because " + content, nil
}

type fakePosterFinder struct{}

func (f *fakePosterFinder) PosterURL(_ context.Context, title string) (string, error) {
	return "https://image.tmdb.org/t/p/original/" + title + ".jpg", nil
}

var testParams = services.RankingParams{
	MatchThreshold:    0.3,
	MatchCount:        4,
	CoefficientWeight: 0.05,
}

func matrixAnswers() []model.AnswerSet {
	return []model.AnswerSet{
		{
			{Question: "what's-your-favourite-movie-and-why?", Answer: "The Matrix"},
			{Question: "do-you-prefer-new-or-classic-movies?", Answer: "Classic"},
			{Question: "what-are-you-in-the-mood-for?", Answer: "Serious"},
		},
	}
}

func buildChain(
	finder commands.SynopsisFinder,
	extractor commands.TitleExtractor,
	exclusions commands.ExclusionFinder,
	embedder commands.Embedder,
	searcher commands.CandidateSearcher,
) cor.Chain {
	chain := cor.NewBaseChain("recommendation-test")
	chain.AddCommand(commands.NewSynopsisLookup("synopsis-lookup", finder))
	chain.AddCommand(commands.NewPreferenceExtractor("preference-extractor"))
	chain.AddCommand(commands.NewMentionResolver("mention-resolver", extractor, exclusions))
	chain.AddCommand(commands.NewEmbeddingCreator("embedding-creator", embedder))
	chain.AddCommand(commands.NewSimilarityRanker("similarity-ranker", searcher, testParams))
	chain.AddCommand(commands.NewResultEnricher("result-enricher", &fakeExplainer{}, &fakePosterFinder{}))
	return chain
}

func runChain(t *testing.T, chain cor.Chain, answers []model.AnswerSet) cor.Context {
	t.Helper()
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(context.Background())
	chainCtx.Add(commands.CtxAnswers, answers)
	chain.Execute(chainCtx)
	return chainCtx
}

func TestPipelineEndToEnd(t *testing.T) {
	finder := &fakeSynopsisFinder{synopses: map[string]string{
		"The Matrix": "A hacker discovers reality is a simulation.",
	}}
	extractor := &fakeTitleExtractor{titles: []string{"The Matrix"}}
	exclusions := &fakeExclusionFinder{exclusions: &services.Exclusions{
		Ids:         []string{"matrix-id"},
		Collections: []int64{2344},
	}}
	embedder := &fakeEmbedder{embedding: []float64{0.1, 0.2, 0.3}}

	sequel := &model.FilmMatch{Id: "sequel-id", Title: "The Matrix Reloaded", Similarity: 0.95, Coefficients: model.DefaultCoefficients()}
	sequel.CollectionId.Int64, sequel.CollectionId.Valid = 2344, true
	searcher := &fakeSearcher{candidates: []*model.FilmMatch{
		{Id: "matrix-id", Title: "The Matrix", Content: "the named film", Similarity: 0.99, Coefficients: model.DefaultCoefficients()},
		sequel,
		{Id: "dark-city", Title: "Dark City", Content: "strangers rearrange a city", Similarity: 0.7, Coefficients: model.DefaultCoefficients()},
		{Id: "weak", Title: "Weak Match", Content: "unrelated", Similarity: 0.1, Coefficients: model.DefaultCoefficients()},
	}}

	chain := buildChain(finder, extractor, exclusions, embedder, searcher)
	chainCtx := runChain(t, chain, matrixAnswers())

	require.False(t, chainCtx.HasErrors(), "chain errors: %v", chainCtx.GetErrors())
	logger.Info("pipeline completed")

	// The profile embeds the synopsis, never the era and mood words.
	profileText := chainCtx.Get(commands.CtxProfile).(string)
	require.Contains(t, profileText, "User loves films like: A hacker discovers reality is a simulation.")
	require.NotContains(t, profileText, "Classic")
	require.NotContains(t, profileText, "Serious")

	prefs := chainCtx.Get(commands.CtxPreferences).(model.Coefficients)
	require.InDelta(t, 1.0, prefs.EraClassic, 1e-9)
	require.InDelta(t, 1.0, prefs.MoodSerious, 1e-9)

	// The named film, its franchise sibling, and the sub-threshold candidate
	// are all gone; only Dark City survives.
	recommendation := chainCtx.Get(commands.CtxRecommendation).(*model.RecommendationSet)
	require.Len(t, recommendation.Matches, 1)
	require.Equal(t, "dark-city", recommendation.Matches[0].Id)
	require.Equal(t, []string{"Because strangers rearrange a city"}, recommendation.Explanations)
	require.Equal(t, []string{"https://image.tmdb.org/t/p/original/Dark City.jpg"}, recommendation.PosterURLs)
}

func TestPipelineSkipsExclusionLookupWithoutTitles(t *testing.T) {
	extractor := &fakeTitleExtractor{titles: []string{}}
	exclusions := &fakeExclusionFinder{}
	searcher := &fakeSearcher{candidates: []*model.FilmMatch{
		{Id: "any", Title: "Any", Similarity: 0.8, Coefficients: model.DefaultCoefficients()},
	}}

	chain := buildChain(&fakeSynopsisFinder{}, extractor, exclusions, &fakeEmbedder{embedding: []float64{1}}, searcher)
	chainCtx := runChain(t, chain, matrixAnswers())

	require.False(t, chainCtx.HasErrors())
	require.Equal(t, 1, extractor.calls)
	require.Equal(t, 0, exclusions.calls, "catalog must not be consulted when no titles were extracted")
}

func TestPipelineAbortsOnEmbeddingFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("quota exceeded")}
	searcher := &fakeSearcher{}

	chain := buildChain(&fakeSynopsisFinder{}, &fakeTitleExtractor{}, &fakeExclusionFinder{}, embedder, searcher)
	chainCtx := runChain(t, chain, matrixAnswers())

	require.True(t, chainCtx.HasErrors())
	// No partial result survives a stage failure.
	require.Nil(t, chainCtx.Get(commands.CtxMatches))
	require.Nil(t, chainCtx.Get(commands.CtxRecommendation))
}

func TestPipelineErrorsWhenNothingClearsThreshold(t *testing.T) {
	searcher := &fakeSearcher{candidates: []*model.FilmMatch{
		{Id: "weak", Title: "Weak", Similarity: 0.05, Coefficients: model.DefaultCoefficients()},
	}}

	chain := buildChain(&fakeSynopsisFinder{}, &fakeTitleExtractor{}, &fakeExclusionFinder{exclusions: &services.Exclusions{}}, &fakeEmbedder{embedding: []float64{1}}, searcher)
	chainCtx := runChain(t, chain, matrixAnswers())

	require.True(t, chainCtx.HasErrors())
	require.Nil(t, chainCtx.Get(commands.CtxRecommendation))
}
