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

// Package main implements the catalog ingestion job. It discovers popular
// films on TMDB, composes the content string that gets embedded, computes the
// offline mood and era coefficient scores, resolves franchise collections,
// and writes the rows to the BigQuery film catalog in batches.
//
// The job is an offline batch tool, run whenever the catalog should be
// refreshed. It is idempotent only at the table level; rerunning appends
// rows, so refreshes normally target an empty table.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/popchoice/gcp-go-movie-match/internal/cloud"
	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
	"github.com/popchoice/gcp-go-movie-match/internal/core/services"
	"github.com/popchoice/gcp-go-movie-match/internal/core/workflow"
	"github.com/popchoice/gcp-go-movie-match/internal/telemetry"
)

const insertBatchSize = 50

func main() {
	pages := flag.Int("pages", 5, "number of TMDB discover pages to ingest (20 films per page)")
	startPage := flag.Int("start-page", 1, "first TMDB discover page to read")
	limit := flag.Int("limit", 0, "cap on the number of films ingested, 0 for no cap")
	dryRun := flag.Bool("dry-run", false, "compute rows and log them without writing to BigQuery")
	flag.Parse()

	telemetry.SetupLogging()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if os.Getenv(cloud.EnvConfigFilePrefix) == "" {
		if err := os.Setenv(cloud.EnvConfigFilePrefix, "configs"); err != nil {
			log.Fatalf("failed to set config prefix: %v", err)
		}
	}
	config := cloud.NewConfig()
	cloud.LoadConfig(&config)

	serviceClients, err := cloud.NewServiceClients(ctx, config)
	if err != nil {
		log.Fatalf("failed to initialize service clients: %v", err)
	}
	defer serviceClients.Close()

	catalog := &services.CatalogService{
		BigqueryClient: serviceClients.BigQueryClient,
		DatasetName:    config.BigQueryDataSource.DatasetName,
		FilmsTable:     config.BigQueryDataSource.FilmsTable,
	}
	search := &services.FilmSearchService{
		BigqueryClient: serviceClients.BigQueryClient,
		EmbeddingModel: serviceClients.EmbeddingModels[workflow.EmbeddingModelProfile],
		ModelName:      config.EmbeddingModels[workflow.EmbeddingModelProfile].Model,
	}

	total := 0
	batch := make([]*model.Film, 0, insertBatchSize)

	for page := *startPage; page < *startPage+*pages; page++ {
		movies, err := serviceClients.TMDBClient.DiscoverMovies(ctx, page)
		if err != nil {
			log.Fatalf("failed to discover movies on page %d: %v", page, err)
		}

		for i := range movies {
			if *limit > 0 && total >= *limit {
				break
			}
			movie := &movies[i]
			if movie.Overview == "" {
				slog.Warn("skipping film without overview", "title", movie.Title)
				continue
			}

			film, err := buildFilm(ctx, serviceClients.TMDBClient, search, movie)
			if err != nil {
				log.Fatalf("failed to build film row for %q: %v", movie.Title, err)
			}
			total++

			if *dryRun {
				slog.Info("dry run",
					"title", film.Title,
					"year", film.ReleaseYear,
					"collection", film.CollectionId.Int64,
					"coefficients", film.Coefficients)
				continue
			}

			batch = append(batch, film)
			if len(batch) >= insertBatchSize {
				if err := catalog.Insert(ctx, batch); err != nil {
					log.Fatalf("failed to insert batch: %v", err)
				}
				slog.Info("inserted batch", "size", len(batch), "total", total)
				batch = batch[:0]
			}
		}
		if *limit > 0 && total >= *limit {
			break
		}
	}

	if len(batch) > 0 {
		if err := catalog.Insert(ctx, batch); err != nil {
			log.Fatalf("failed to insert final batch: %v", err)
		}
	}
	slog.Info("ingestion complete", "films", total, "dry_run", *dryRun)
}

// buildFilm turns one TMDB movie into a catalog row: content string,
// embedding, coefficient scores, and franchise collection.
func buildFilm(ctx context.Context, tmdb *cloud.TMDBClient, search *services.FilmSearchService, movie *cloud.TMDBMovie) (*model.Film, error) {
	year := movie.ReleaseYear()
	content := contentString(movie, year)

	film := model.NewFilm(movie.Title, content)
	film.ReleaseYear = int64(year)
	film.GenreIds = movie.GenreIDs

	embedding, err := search.Embed(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}
	film.Embeddings = embedding

	fun, serious, inspiring, scary := services.MoodScores(movie.GenreIDs)
	eraNew, eraClassic := services.EraScores(year)
	film.Coefficients = model.Coefficients{
		EraNew:        eraNew,
		EraClassic:    eraClassic,
		MoodFun:       fun,
		MoodSerious:   serious,
		MoodInspiring: inspiring,
		MoodScary:     scary,
	}

	collection, err := tmdb.MovieCollection(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("collection lookup failed: %w", err)
	}
	if collection != nil {
		film.CollectionId = bigquery.NullInt64{Int64: collection.ID, Valid: true}
	}
	return film, nil
}

// contentString composes the text that gets embedded for a film. The year and
// rating are folded into the prose so they influence the vector.
func contentString(movie *cloud.TMDBMovie, year int) string {
	if year > 0 {
		return fmt.Sprintf("%s (%d): %s Rated %.1f on TMDB.", movie.Title, year, movie.Overview, movie.VoteAverage)
	}
	return fmt.Sprintf("%s: %s Rated %.1f on TMDB.", movie.Title, movie.Overview, movie.VoteAverage)
}
