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
// sources. This file defines the CatalogService, the data access layer for
// the BigQuery film catalog: scanning rows for title matching, resolving
// exclusion sets for films the users already named, and inserting rows
// during ingestion.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
)

// FilmSummary is a lightweight catalog row used for title matching. It
// omits the embedding vector, which is large and irrelevant here.
type FilmSummary struct {
	Id           string             `bigquery:"id"`
	Title        string             `bigquery:"title"`
	Content      string             `bigquery:"content"`
	CollectionId bigquery.NullInt64 `bigquery:"collection_id"`
}

// Exclusions is the set of catalog ids and franchise collection ids that the
// ranker must not return.
type Exclusions struct {
	Ids         []string `json:"ids"`
	Collections []int64  `json:"collections"`
}

// Empty reports whether nothing is excluded.
func (e *Exclusions) Empty() bool {
	return e == nil || (len(e.Ids) == 0 && len(e.Collections) == 0)
}

// CatalogService is the data access layer for the film catalog.
type CatalogService struct {
	BigqueryClient *bigquery.Client // Client for Google BigQuery.
	DatasetName    string           // The name of the BigQuery dataset.
	FilmsTable     string           // The name of the films table.
	ScanLimit      int              // Row cap for catalog scans.
	FuzzyThreshold float64          // Minimum token-overlap score for fuzzy synopsis matches.
}

// GetFQN returns the fully qualified films table name with dots instead of
// colons, as standard SQL expects.
func (s *CatalogService) GetFQN() string {
	fqn := s.BigqueryClient.Dataset(s.DatasetName).Table(s.FilmsTable).FullyQualifiedName()
	return strings.Replace(fqn, ":", ".", -1)
}

// ListFilms scans the catalog up to the configured row cap.
func (s *CatalogService) ListFilms(ctx context.Context) ([]*FilmSummary, error) {
	limit := s.ScanLimit
	if limit <= 0 {
		limit = 5000
	}
	queryText := fmt.Sprintf(QryListFilms, s.GetFQN(), limit)
	q := s.BigqueryClient.Query(queryText)
	itr, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan film catalog: %w", err)
	}

	out := make([]*FilmSummary, 0)
	for {
		row := &FilmSummary{}
		err := itr.Next(row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate film catalog: %w", err)
		}
		out = append(out, row)
	}
	return out, nil
}

// FindExclusions resolves extracted movie titles to the catalog ids they
// match, expanded with the franchise collection id of every matched film so
// sequels of a named film are excluded too. Matching uses permissive two-way
// containment. An empty title list skips the catalog entirely.
func (s *CatalogService) FindExclusions(ctx context.Context, titles []string) (*Exclusions, error) {
	out := &Exclusions{Ids: make([]string, 0), Collections: make([]int64, 0)}
	if len(titles) == 0 {
		return out, nil
	}

	films, err := s.ListFilms(ctx)
	if err != nil {
		return nil, err
	}

	seenCollections := make(map[int64]bool)
	for _, film := range films {
		for _, title := range titles {
			if !TitlesMatch(title, film.Title) {
				continue
			}
			out.Ids = append(out.Ids, film.Id)
			if film.CollectionId.Valid && !seenCollections[film.CollectionId.Int64] {
				seenCollections[film.CollectionId.Int64] = true
				out.Collections = append(out.Collections, film.CollectionId.Int64)
			}
			break
		}
	}
	return out, nil
}

// BestSynopsisFor resolves one favourite-movie answer to a catalog synopsis
// using the three-tier matching policy. An empty string means no film
// cleared the bar, which is a valid outcome.
func (s *CatalogService) BestSynopsisFor(ctx context.Context, query string) (string, error) {
	films, err := s.ListFilms(ctx)
	if err != nil {
		return "", err
	}
	return BestSynopsis(query, films, s.FuzzyThreshold), nil
}

// Insert writes a batch of film rows, used by the ingestion job.
func (s *CatalogService) Insert(ctx context.Context, films []*model.Film) error {
	if len(films) == 0 {
		return nil
	}
	inserter := s.BigqueryClient.Dataset(s.DatasetName).Table(s.FilmsTable).Inserter()
	if err := inserter.Put(ctx, films); err != nil {
		return fmt.Errorf("failed to insert film rows: %w", err)
	}
	return nil
}
