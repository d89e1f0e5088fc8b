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

// Package workflow defines the high-level business logic orchestrations,
// combining commands into coherent pipelines. This file implements the
// recommendation pipeline: synopsis lookup, preference extraction, mention
// resolution, profile embedding, similarity ranking, and result enrichment,
// executed as one traced chain per request.
package workflow

import (
	goctx "context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/popchoice/gcp-go-movie-match/internal/cloud"
	"github.com/popchoice/gcp-go-movie-match/internal/core/commands"
	"github.com/popchoice/gcp-go-movie-match/internal/core/cor"
	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
	"github.com/popchoice/gcp-go-movie-match/internal/core/services"
)

// Logical model names resolved against the configuration maps.
const (
	EmbeddingModelProfile = "profile"
	AgentTitleExtractor   = "title-extractor"
	AgentMovieExpert      = "movie-expert"
)

// RecommendationWorkflow owns the six-stage chain and the services behind it.
// One instance is built at startup and shared by all requests; each Run gets
// its own chain context.
type RecommendationWorkflow struct {
	chain cor.Chain
}

// NewRecommendationWorkflow wires the pipeline from configuration and the
// shared service clients.
func NewRecommendationWorkflow(config *cloud.Config, serviceClients *cloud.ServiceClients) (*RecommendationWorkflow, error) {
	extractorModel, ok := serviceClients.AgentModels[AgentTitleExtractor]
	if !ok {
		return nil, fmt.Errorf("agent model %q is not configured", AgentTitleExtractor)
	}
	expertModel, ok := serviceClients.AgentModels[AgentMovieExpert]
	if !ok {
		return nil, fmt.Errorf("agent model %q is not configured", AgentMovieExpert)
	}
	embeddingModel, ok := serviceClients.EmbeddingModels[EmbeddingModelProfile]
	if !ok {
		return nil, fmt.Errorf("embedding model %q is not configured", EmbeddingModelProfile)
	}

	catalog := &services.CatalogService{
		BigqueryClient: serviceClients.BigQueryClient,
		DatasetName:    config.BigQueryDataSource.DatasetName,
		FilmsTable:     config.BigQueryDataSource.FilmsTable,
		ScanLimit:      config.Matching.CatalogScanLimit,
		FuzzyThreshold: config.Matching.FuzzyOverlapThreshold,
	}

	search := &services.FilmSearchService{
		BigqueryClient: serviceClients.BigQueryClient,
		EmbeddingModel: embeddingModel,
		ModelName:      config.EmbeddingModels[EmbeddingModelProfile].Model,
		DatasetName:    config.BigQueryDataSource.DatasetName,
		FilmsTable:     config.BigQueryDataSource.FilmsTable,
		CandidatePool:  config.Matching.CandidatePool,
	}

	meter := otel.Meter(cor.MeterName)
	extractor := services.NewTitleExtractorService(extractorModel, meter)
	explainer, err := services.NewExplanationService(expertModel, config.PromptTemplates.ExplanationPrompt, meter)
	if err != nil {
		return nil, err
	}

	params := services.RankingParams{
		MatchThreshold:    config.Matching.MatchThreshold,
		MatchCount:        config.Matching.MatchCount,
		CoefficientWeight: config.Matching.CoefficientWeight,
	}

	chain := cor.NewBaseChain("recommendation")
	chain.AddCommand(commands.NewSynopsisLookup("synopsis-lookup", catalog))
	chain.AddCommand(commands.NewPreferenceExtractor("preference-extractor"))
	chain.AddCommand(commands.NewMentionResolver("mention-resolver", extractor, catalog))
	chain.AddCommand(commands.NewEmbeddingCreator("embedding-creator", search))
	chain.AddCommand(commands.NewSimilarityRanker("similarity-ranker", search, params))
	chain.AddCommand(commands.NewResultEnricher("result-enricher", explainer, serviceClients.TMDBClient))

	return &RecommendationWorkflow{chain: chain}, nil
}

// Run executes the pipeline for one complete answer set. Any stage failure
// aborts the run; there is no partial recommendation.
func (w *RecommendationWorkflow) Run(ctx goctx.Context, answers []model.AnswerSet) (*model.RecommendationSet, error) {
	if len(answers) == 0 {
		return nil, errors.New("no answers to recommend from")
	}

	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	chainCtx.Add(commands.CtxAnswers, answers)

	w.chain.Execute(chainCtx)

	if chainCtx.HasErrors() {
		errs := make([]error, 0, len(chainCtx.GetErrors()))
		for name, err := range chainCtx.GetErrors() {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return nil, errors.Join(errs...)
	}

	recommendation, ok := chainCtx.Get(commands.CtxRecommendation).(*model.RecommendationSet)
	if !ok || recommendation == nil {
		return nil, errors.New("pipeline completed without producing a recommendation")
	}
	return recommendation, nil
}
