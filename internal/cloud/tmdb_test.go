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

package cloud_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/popchoice/gcp-go-movie-match/internal/cloud"
)

// newTestClient spins up a fake TMDB API and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *cloud.TMDBClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := cloud.NewTMDBClient(cloud.TMDBConfig{
		APIKey:        "test-key",
		BaseURL:       server.URL,
		ImagesBaseURL: "https://image.tmdb.org/t/p/",
	})
	require.NoError(t, err)
	return client
}

func TestNewTMDBClientRequiresKey(t *testing.T) {
	_, err := cloud.NewTMDBClient(cloud.TMDBConfig{})
	require.Error(t, err)
}

func TestPosterURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		switch r.URL.Path {
		case "/search/movie":
			require.Equal(t, "The Matrix", r.URL.Query().Get("query"))
			_, _ = w.Write([]byte(`{"page":1,"results":[{"id":603,"title":"The Matrix","release_date":"1999-03-30"}]}`))
		case "/movie/603/images":
			require.Equal(t, "en,null", r.URL.Query().Get("include_image_language"))
			_, _ = w.Write([]byte(`{"posters":[{"file_path":"/matrix.jpg"},{"file_path":"/alt.jpg"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	url, err := client.PosterURL(context.Background(), "The Matrix")
	require.NoError(t, err)
	require.Equal(t, "https://image.tmdb.org/t/p/original/matrix.jpg", url)
}

func TestPosterURLNoResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"page":1,"results":[]}`))
	})

	_, err := client.PosterURL(context.Background(), "Unknown Film")
	require.Error(t, err)
	require.True(t, errors.Is(err, cloud.ErrTMDBNotFound))
}

func TestPosterURLNoPosters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/movie":
			_, _ = w.Write([]byte(`{"page":1,"results":[{"id":7,"title":"Obscure"}]}`))
		default:
			_, _ = w.Write([]byte(`{"posters":[]}`))
		}
	})

	_, err := client.PosterURL(context.Background(), "Obscure")
	require.True(t, errors.Is(err, cloud.ErrTMDBNotFound))
}

func TestMovieCollection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/671", r.URL.Path)
		_, _ = w.Write([]byte(`{"belongs_to_collection":{"id":1241,"name":"Harry Potter Collection"}}`))
	})

	collection, err := client.MovieCollection(context.Background(), 671)
	require.NoError(t, err)
	require.NotNil(t, collection)
	require.Equal(t, int64(1241), collection.ID)
	require.Equal(t, "Harry Potter Collection", collection.Name)
}

func TestMovieCollectionStandalone(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"belongs_to_collection":null}`))
	})

	collection, err := client.MovieCollection(context.Background(), 550)
	require.NoError(t, err)
	require.Nil(t, collection)
}

func TestDiscoverMovies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/discover/movie", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))
		_, _ = w.Write([]byte(`{"page":2,"results":[{"id":1,"title":"A","genre_ids":[27,53],"release_date":"2015-01-01"}]}`))
	})

	movies, err := client.DiscoverMovies(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	require.Equal(t, []int64{27, 53}, movies[0].GenreIDs)
	require.Equal(t, 2015, movies[0].ReleaseYear())
}

func TestReleaseYearMalformed(t *testing.T) {
	m := &cloud.TMDBMovie{ReleaseDate: "19"}
	require.Equal(t, 0, m.ReleaseYear())
	m.ReleaseDate = "abcd-01-01"
	require.Equal(t, 0, m.ReleaseYear())
}

func TestGetErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.SearchMovie(context.Background(), "anything")
	require.Error(t, err)
}
