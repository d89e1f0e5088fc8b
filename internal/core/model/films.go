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

// Package model defines the core data structures for the application.
// This file holds the persistent film catalog row and the candidate shape
// produced by the vector search.
package model

import (
	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
)

// Film is one row of the BigQuery film catalog. The content string is the
// text that was embedded; the coefficient scores are precomputed offline by
// the ingestion job from TMDB genres and release year.
type Film struct {
	Id           string             `json:"id" bigquery:"id"`
	Title        string             `json:"title" bigquery:"title"`
	Content      string             `json:"content" bigquery:"content"`
	ReleaseYear  int64              `json:"release_year" bigquery:"release_year"`
	CollectionId bigquery.NullInt64 `json:"collection_id" bigquery:"collection_id"` // Franchise id, null for standalone films.
	GenreIds     []int64            `json:"genre_ids" bigquery:"genre_ids"`
	Embeddings   []float64          `json:"embeddings" bigquery:"embeddings"`
	Coefficients Coefficients       `json:"coefficients" bigquery:"coefficients"`
}

// NewFilm creates a film row with a fresh identifier and default
// coefficient scores.
func NewFilm(title string, content string) *Film {
	return &Film{
		Id:           uuid.NewString(),
		Title:        title,
		Content:      content,
		Coefficients: DefaultCoefficients(),
	}
}

// FilmMatch is one candidate returned by the similarity search, carrying the
// raw cosine similarity and the scores computed by the ranker.
type FilmMatch struct {
	Id           string             `json:"id" bigquery:"id"`
	Title        string             `json:"title" bigquery:"title"`
	Content      string             `json:"content" bigquery:"content"`
	ReleaseYear  int64              `json:"release_year" bigquery:"release_year"`
	CollectionId bigquery.NullInt64 `json:"collection_id" bigquery:"collection_id"`
	Coefficients Coefficients       `json:"coefficients" bigquery:"coefficients"`
	Similarity   float64            `json:"similarity" bigquery:"similarity"` // Cosine similarity of the stored embedding to the query vector.
	Boost        float64            `json:"boost" bigquery:"-"`               // Mood/era agreement boost, set by the ranker.
	Score        float64            `json:"score" bigquery:"-"`               // similarity + coefficientWeight * boost, set by the ranker.
}

// RecommendationSet is the final pipeline output: ranked candidates with a
// generated rationale and a poster URL per candidate, aligned by index. It
// lives only for the duration of one session and is discarded on reset.
type RecommendationSet struct {
	Matches      []*FilmMatch `json:"matches"`
	Explanations []string     `json:"explanations"`
	PosterURLs   []string     `json:"poster_urls"`
}
