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

// Package services_test contains the integration tests for the services
// package. These run against live backends and are skipped in short mode.
package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/zeebo/assert"

	"github.com/popchoice/gcp-go-movie-match/internal/cloud"
	"github.com/popchoice/gcp-go-movie-match/internal/core/services"
	"github.com/popchoice/gcp-go-movie-match/internal/core/workflow"
	test "github.com/popchoice/gcp-go-movie-match/internal/testutil"
)

// TestFilmSearchService is an integration test for the embed-and-search
// path: it embeds a sample profile text with a live Vertex AI model and runs
// the vector search against a live BigQuery film catalog.
func TestFilmSearchService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := test.GetConfig()

	serviceClients, err := cloud.NewServiceClients(ctx, config)
	test.HandleErr(err, t)
	defer serviceClients.Close()

	embeddingModel := serviceClients.EmbeddingModels[workflow.EmbeddingModelProfile]
	assert.NotNil(t, embeddingModel)

	searchService := &services.FilmSearchService{
		BigqueryClient: serviceClients.BigQueryClient,
		EmbeddingModel: embeddingModel,
		ModelName:      config.EmbeddingModels[workflow.EmbeddingModelProfile].Model,
		DatasetName:    config.BigQueryDataSource.DatasetName,
		FilmsTable:     config.BigQueryDataSource.FilmsTable,
		CandidatePool:  config.Matching.CandidatePool,
	}

	embedding, err := searchService.Embed(ctx, "User loves films like: a mind-bending science fiction heist inside dreams")
	assert.Nil(t, err)
	assert.True(t, len(embedding) > 0)

	out, err := searchService.FindCandidates(ctx, embedding)
	assert.Nil(t, err)

	for _, o := range out {
		fmt.Printf("%s - %.3f\n", o.Title, o.Similarity)
	}
}

// TestCatalogServiceExclusions verifies the title-to-exclusion resolution
// against the live catalog.
func TestCatalogServiceExclusions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := test.GetConfig()

	serviceClients, err := cloud.NewServiceClients(ctx, config)
	test.HandleErr(err, t)
	defer serviceClients.Close()

	catalog := &services.CatalogService{
		BigqueryClient: serviceClients.BigQueryClient,
		DatasetName:    config.BigQueryDataSource.DatasetName,
		FilmsTable:     config.BigQueryDataSource.FilmsTable,
		ScanLimit:      config.Matching.CatalogScanLimit,
		FuzzyThreshold: config.Matching.FuzzyOverlapThreshold,
	}

	exclusions, err := catalog.FindExclusions(ctx, []string{"The Matrix"})
	assert.Nil(t, err)
	assert.NotNil(t, exclusions)

	// An empty title list must not touch the catalog at all.
	exclusions, err = catalog.FindExclusions(ctx, nil)
	assert.Nil(t, err)
	assert.True(t, exclusions.Empty())
}
