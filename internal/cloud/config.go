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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files, and the client container for all external services.
//
// This file centralizes the configuration structs so the rest of the
// application receives a single *Config built once at process start. Nothing
// below this layer reads environment variables or ambient state.
//
// Structs:
//   - BigQueryDataSource: Configuration for the BigQuery film catalog.
//   - PromptTemplates: Text templates for prompts sent to GenAI models.
//   - VertexAiEmbeddingModel: Configuration for a Vertex AI embedding model.
//   - VertexAiLLMModel: Configuration for a Vertex AI LLM persona.
//   - TMDBConfig: Configuration for The Movie Database HTTP client.
//   - RedisConfig: Configuration for the session store.
//   - MatchingConfig: Tuning constants for similarity ranking and title matching.
//   - Config: The top-level struct aggregating all of the above.
package cloud

import "google.golang.org/genai"

// DefaultSafetySettings defines the default content safety thresholds for
// GenAI models. The inputs are short user answers about movies, so all
// categories pass through unblocked.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// BigQueryDataSource represents the configuration for the film catalog tables.
type BigQueryDataSource struct {
	DatasetName string `toml:"dataset"`     // The name of the BigQuery dataset.
	FilmsTable  string `toml:"films_table"` // The table holding film rows with embedded content and coefficient scores.
}

// PromptTemplates holds the templates for the generative prompts.
type PromptTemplates struct {
	// ExplanationPrompt is the user-turn template for the rationale request.
	// It receives CONTENT (the candidate film's stored description) and
	// PROFILE (the composed user profile text).
	ExplanationPrompt string `toml:"explanation"`
}

// VertexAiEmbeddingModel represents the configuration for a Vertex AI
// embedding model.
type VertexAiEmbeddingModel struct {
	Model                string `toml:"model"`                   // The name of the Vertex AI embedding model.
	MaxRequestsPerMinute int    `toml:"max_requests_per_minute"` // The maximum number of requests allowed per minute.
}

// VertexAiLLMModel represents the configuration for a Vertex AI large
// language model persona, such as the title extractor or the movie expert.
type VertexAiLLMModel struct {
	Model              string  `toml:"model"`               // The name of the Vertex AI LLM.
	SystemInstructions string  `toml:"system_instructions"` // The system instructions for the persona.
	Temperature        float32 `toml:"temperature"`         // The sampling temperature.
	TopP               float32 `toml:"top_p"`               // The top_p parameter.
	TopK               float32 `toml:"top_k"`               // The top_k parameter.
	MaxTokens          int32   `toml:"max_tokens"`          // The maximum number of output tokens.
	OutputFormat       string  `toml:"output_format"`       // The response MIME type (e.g., "application/json").
	RateLimit          int     `toml:"rate_limit"`          // The rate limit in requests per second.
}

// TMDBConfig holds the settings for The Movie Database client, used for
// poster lookups and by the catalog ingestion job.
type TMDBConfig struct {
	APIKey            string `toml:"api_key"`             // The TMDB API key.
	BaseURL           string `toml:"base_url"`            // The API base URL (e.g., "https://api.themoviedb.org/3").
	ImagesBaseURL     string `toml:"images_base_url"`     // The image CDN base URL (e.g., "https://image.tmdb.org/t/p/").
	RequestsPerSecond int    `toml:"requests_per_second"` // Client-side rate limit for TMDB calls.
}

// RedisConfig holds the settings for the Redis session store.
type RedisConfig struct {
	Addr              string `toml:"addr"`                // host:port of the Redis server.
	Password          string `toml:"password"`            // Password, empty when auth is disabled.
	DB                int    `toml:"db"`                  // Logical database number.
	SessionTTLMinutes int    `toml:"session_ttl_minutes"` // Idle lifetime of a session before it expires.
}

// MatchingConfig carries the ranking and title-matching constants. These are
// tuning values with no single correct setting, so they live in configuration
// rather than code.
type MatchingConfig struct {
	MatchThreshold        float64 `toml:"match_threshold"`         // Minimum cosine similarity for a candidate to survive.
	MatchCount            int     `toml:"match_count"`             // Maximum number of candidates returned.
	CoefficientWeight     float64 `toml:"coefficient_weight"`      // Weight of the mood/era boost relative to raw similarity.
	CandidatePool         int     `toml:"candidate_pool"`          // top_k passed to the vector search before filtering.
	FuzzyOverlapThreshold float64 `toml:"fuzzy_overlap_threshold"` // Minimum token-overlap score for a fuzzy synopsis match.
	CatalogScanLimit      int     `toml:"catalog_scan_limit"`      // Row cap when scanning the catalog for title matches.
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It acts as the root container for all other configuration
// structs and is passed by reference wherever settings are needed.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name            string `toml:"name"`              // The name of the application.
		GoogleProjectId string `toml:"google_project_id"` // The Google Cloud project ID.
		GoogleLocation  string `toml:"location"`          // The Google Cloud location.
	} `toml:"application"`
	BigQueryDataSource BigQueryDataSource                `toml:"big_query_data_source"` // Film catalog configuration.
	TMDB               TMDBConfig                        `toml:"tmdb"`                  // TMDB client configuration.
	Redis              RedisConfig                       `toml:"redis"`                 // Session store configuration.
	Matching           MatchingConfig                    `toml:"matching"`              // Ranking and matching constants.
	PromptTemplates    PromptTemplates                   `toml:"prompt_templates"`      // Prompt templates configuration.
	EmbeddingModels    map[string]VertexAiEmbeddingModel `toml:"embedding_models"`      // Embedding models, keyed by a logical name (e.g., "profile").
	AgentModels        map[string]VertexAiLLMModel       `toml:"agent_models"`          // LLM personas, keyed by a logical name (e.g., "title-extractor").
}

// NewConfig creates a new, initialized Config instance. The maps must be
// allocated before the TOML loader populates them.
func NewConfig() *Config {
	return &Config{
		EmbeddingModels: make(map[string]VertexAiEmbeddingModel),
		AgentModels:     make(map[string]VertexAiLLMModel),
	}
}
