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

// Package cloud provides components for interacting with external services.
// This file implements a small client for The Movie Database (TMDB) REST
// API. The recommendation pipeline uses it to resolve poster art, and the
// ingestion job uses it to discover popular films, their genres, and their
// franchise collections. All calls go through a client-side rate limiter to
// stay inside TMDB's request quota.
package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// TMDBMovie is one movie record as returned by the TMDB search and discover
// endpoints.
type TMDBMovie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"` // "YYYY-MM-DD", may be empty.
	VoteAverage float64 `json:"vote_average"`
	GenreIDs    []int64 `json:"genre_ids"`
}

// ReleaseYear parses the year out of the release date. Returns 0 when the
// date is missing or malformed.
func (m *TMDBMovie) ReleaseYear() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// TMDBPoster is a single poster entry from the movie images endpoint.
type TMDBPoster struct {
	FilePath string `json:"file_path"`
}

// TMDBCollection identifies the franchise a movie belongs to.
type TMDBCollection struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type tmdbListResponse struct {
	Page         int         `json:"page"`
	Results      []TMDBMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

type tmdbImagesResponse struct {
	Posters []TMDBPoster `json:"posters"`
}

type tmdbDetailsResponse struct {
	BelongsToCollection *TMDBCollection `json:"belongs_to_collection"`
}

// ErrTMDBNotFound is returned when a lookup produced no usable result, such
// as a title search with no hits or a movie without posters.
var ErrTMDBNotFound = errors.New("tmdb: not found")

// TMDBClient is a rate-limited HTTP client for the TMDB v3 API.
type TMDBClient struct {
	apiKey        string
	baseURL       string
	imagesBaseURL string
	httpClient    *http.Client
	limiter       *rate.Limiter
}

// NewTMDBClient builds a client from configuration. The API key is required;
// everything else has a sensible default.
func NewTMDBClient(config TMDBConfig) (*TMDBClient, error) {
	if config.APIKey == "" {
		return nil, errors.New("tmdb: api key is required")
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	imagesBaseURL := config.ImagesBaseURL
	if imagesBaseURL == "" {
		imagesBaseURL = "https://image.tmdb.org/t/p/"
	}
	rps := config.RequestsPerSecond
	if rps < 1 {
		rps = 4
	}
	return &TMDBClient{
		apiKey:        config.APIKey,
		baseURL:       baseURL,
		imagesBaseURL: imagesBaseURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		limiter:       rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// get performs a rate-limited GET against the API and decodes the JSON body
// into out.
func (c *TMDBClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb: request %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb: request %s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// SearchMovie looks up movies by title and returns the raw result list,
// best match first.
func (c *TMDBClient) SearchMovie(ctx context.Context, query string) ([]TMDBMovie, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("language", "en-US")
	var body tmdbListResponse
	if err := c.get(ctx, "/search/movie", params, &body); err != nil {
		return nil, err
	}
	return body.Results, nil
}

// DiscoverMovies returns one page of popular movies, used by the catalog
// ingestion job.
func (c *TMDBClient) DiscoverMovies(ctx context.Context, page int) ([]TMDBMovie, error) {
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("language", "en-US")
	params.Set("page", strconv.Itoa(page))
	var body tmdbListResponse
	if err := c.get(ctx, "/discover/movie", params, &body); err != nil {
		return nil, err
	}
	return body.Results, nil
}

// MovieCollection returns the franchise collection a movie belongs to, or
// nil when the movie is standalone.
func (c *TMDBClient) MovieCollection(ctx context.Context, movieID int64) (*TMDBCollection, error) {
	var body tmdbDetailsResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil, &body); err != nil {
		return nil, err
	}
	return body.BelongsToCollection, nil
}

// PosterURL resolves a full-size poster URL for a title: search by title,
// take the first hit's id, fetch its image set, and compose the first poster
// path onto the image CDN base with the "original" size segment.
func (c *TMDBClient) PosterURL(ctx context.Context, title string) (string, error) {
	results, err := c.SearchMovie(ctx, title)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%w: no search results for %q", ErrTMDBNotFound, title)
	}

	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("include_image_language", "en,null")
	var images tmdbImagesResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/images", results[0].ID), params, &images); err != nil {
		return "", err
	}
	if len(images.Posters) == 0 {
		return "", fmt.Errorf("%w: no posters for %q", ErrTMDBNotFound, title)
	}
	return c.imagesBaseURL + "original" + images.Posters[0].FilePath, nil
}
