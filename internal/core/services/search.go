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
// sources. This file defines the FilmSearchService, which converts profile
// text into a vector embedding with a GenAI model and retrieves the nearest
// catalog films through a BigQuery vector search. Threshold filtering,
// exclusion and the coefficient blend happen afterwards in the ranker, which
// is pure Go.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/genai"

	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
)

// FilmSearchService encapsulates the clients and configuration needed to
// embed text and run the vector search over the film catalog.
type FilmSearchService struct {
	BigqueryClient *bigquery.Client // Client for Google BigQuery.
	EmbeddingModel *genai.Models    // The GenAI handle used to create embeddings.
	ModelName      string           // The embedding model identifier.
	DatasetName    string           // The name of the BigQuery dataset.
	FilmsTable     string           // The name of the films table.
	CandidatePool  int              // top_k for the vector search.
}

// Embed converts a text string into a fixed-dimension vector. One call per
// recommendation request; a service error aborts the request.
func (s *FilmSearchService) Embed(ctx context.Context, text string) ([]float64, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}
	resp, err := s.EmbeddingModel.EmbedContent(ctx, s.ModelName, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("embedding response contained no values")
	}

	out := make([]float64, 0, len(resp.Embeddings[0].Values))
	for _, f := range resp.Embeddings[0].Values {
		out = append(out, float64(f))
	}
	return out, nil
}

// FindCandidates runs the KNN vector search and returns the candidate pool
// ordered by raw cosine similarity. An empty result is valid.
func (s *FilmSearchService) FindCandidates(ctx context.Context, embedding []float64) ([]*model.FilmMatch, error) {
	fqFilmsTable := strings.Replace(s.BigqueryClient.Dataset(s.DatasetName).Table(s.FilmsTable).FullyQualifiedName(), ":", ".", -1)

	// VECTOR_SEARCH expects the query vector inline as a comma-separated
	// float list.
	stringArray := make([]string, 0, len(embedding))
	for _, f := range embedding {
		stringArray = append(stringArray, strconv.FormatFloat(f, 'f', -1, 64))
	}

	pool := s.CandidatePool
	if pool <= 0 {
		pool = 20
	}
	queryText := fmt.Sprintf(QryFilmKnn, fqFilmsTable, strings.Join(stringArray, ","), pool)

	q := s.BigqueryClient.Query(queryText)
	itr, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read from BigQuery: %w", err)
	}

	out := make([]*model.FilmMatch, 0, pool)
	for {
		row := &model.FilmMatch{}
		err := itr.Next(row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate results: %w", err)
		}
		out = append(out, row)
	}
	return out, nil
}
