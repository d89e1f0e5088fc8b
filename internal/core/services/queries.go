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
// sources. This file centralizes the BigQuery SQL query strings. The queries
// use fmt.Sprintf format verbs as placeholders for values injected at
// runtime.
package services

const (
	// QryFilmKnn performs the k-nearest-neighbor vector search over the film
	// catalog.
	//
	// - `VECTOR_SEARCH` scans the `embeddings` column of the films table for
	//   the vectors closest to the query vector.
	// - `distance_type => 'COSINE'` yields a cosine distance in [0, 2];
	//   `1 - distance` converts it back to the cosine similarity the ranker
	//   thresholds against.
	// - `top_k => %d` is the candidate pool size. The pool is intentionally
	//   larger than the final result cap so that threshold filtering and
	//   exclusion still leave enough candidates.
	//
	// Placeholders: fully qualified films table, the query vector as a
	// comma-separated float list, and top_k.
	QryFilmKnn = "SELECT base.id, base.title, base.content, base.release_year, base.collection_id, base.coefficients, (1 - distance) AS similarity FROM VECTOR_SEARCH(TABLE `%s`, 'embeddings', (SELECT [ %s ] AS embed), top_k => %d, distance_type => 'COSINE') ORDER BY distance ASC"

	// QryListFilms retrieves the id, title, content and collection id of
	// every catalog row, capped at a scan limit. Title matching against user
	// text happens in Go, where the permissive two-way containment and fuzzy
	// rules live as testable functions.
	//
	// Placeholders: fully qualified films table and the row cap.
	QryListFilms = "SELECT id, title, content, collection_id FROM `%s` LIMIT %d"
)
