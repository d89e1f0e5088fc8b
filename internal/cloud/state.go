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
// This file initializes and holds the client objects the application needs:
// the GenAI client for embeddings and text generation, BigQuery for the film
// catalog and vector search, Redis for session state, and the TMDB client
// for poster art and catalog ingestion. It acts as a dependency injection
// container: `NewServiceClients` is called once at startup and the resulting
// struct is passed wherever clients are needed.
package cloud

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/redis/go-redis/v9"
	"google.golang.org/genai"
)

// ServiceClients is a container for all clients that talk to external
// services. A single instance is shared across the application.
type ServiceClients struct {
	GenAIClient     *genai.Client                           // Client for Vertex AI generative services.
	BigQueryClient  *bigquery.Client                        // Client for the film catalog and vector search.
	RedisClient     *redis.Client                           // Client for the session store.
	TMDBClient      *TMDBClient                             // Client for The Movie Database.
	EmbeddingModels map[string]*genai.Models                // GenAI model handles for embeddings, keyed by logical name.
	AgentModels     map[string]*QuotaAwareGenerativeAIModel // Rate-limited LLM personas, keyed by logical name.
}

// Close releases the client connections. The GenAI client has no close
// function in the current library.
func (c *ServiceClients) Close() {
	_ = c.BigQueryClient.Close()
	_ = c.RedisClient.Close()
}

// NewServiceClients initializes all external service clients from the
// provided configuration. A Redis ping verifies the session store is
// reachable so misconfiguration fails at startup rather than on the first
// request.
//
// Inputs:
//   - ctx: The root context for the application.
//   - config: The loaded application configuration.
//
// Outputs:
//   - *ServiceClients: The fully initialized client container.
//   - error: An error if any client fails to initialize.
func NewServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  config.Application.GoogleProjectId,
		Location: config.Application.GoogleLocation,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	bc, err := bigquery.NewClient(ctx, config.Application.GoogleProjectId)
	if err != nil {
		return nil, fmt.Errorf("failed to create bigquery client: %w", err)
	}

	rc := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	if err := rc.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Redis.Addr, err)
	}

	tc, err := NewTMDBClient(config.TMDB)
	if err != nil {
		return nil, err
	}

	// The embedding API hangs off the shared Models handle; the logical name
	// in the config selects which model identifier a service uses.
	embeddingModels := make(map[string]*genai.Models)
	for embKey := range config.EmbeddingModels {
		embeddingModels[embKey] = gc.Models
	}

	// Build a rate-limited persona wrapper per configured agent model.
	agentModels := make(map[string]*QuotaAwareGenerativeAIModel)
	for amKey := range config.AgentModels {
		values := config.AgentModels[amKey]
		genConfig := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			ResponseMIMEType:  values.OutputFormat,
		}
		agentModels[amKey] = NewQuotaAwareModel(genConfig, values.Model, gc.Models, values.RateLimit)
	}

	return &ServiceClients{
		GenAIClient:     gc,
		BigQueryClient:  bc,
		RedisClient:     rc,
		TMDBClient:      tc,
		EmbeddingModels: embeddingModels,
		AgentModels:     agentModels,
	}, nil
}
