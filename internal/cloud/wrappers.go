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
// This file implements a decorator around the GenAI model handle that adds
// rate limiting, so the application stays inside Vertex AI request quotas
// even when several recommendation requests run at once.
package cloud

import (
	"context"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// QuotaAwareGenerativeAIModel wraps a GenAI model handle together with its
// generation config and a rate limiter. Callers use it exactly like the
// underlying model; the limiter gates every GenerateContent call.
type QuotaAwareGenerativeAIModel struct {
	GenerativeContentConfig *genai.GenerateContentConfig // Persona settings (temperature, system instructions, output format).
	ModelName               string                       // The Vertex AI model identifier.
	ModelHandle             *genai.Models                // The shared model handle from the GenAI client.
	RateLimit               *rate.Limiter                // Token bucket limiting request frequency.
}

// NewQuotaAwareModel creates a rate-limited model wrapper.
//
// Inputs:
//   - config: The generation config carrying the persona settings.
//   - name: The Vertex AI model identifier.
//   - handle: The shared *genai.Models handle.
//   - requestsPerSecond: The maximum number of API calls allowed per second.
func NewQuotaAwareModel(config *genai.GenerateContentConfig, name string, handle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	if requestsPerSecond < 1 {
		requestsPerSecond = 1
	}
	return &QuotaAwareGenerativeAIModel{
		GenerativeContentConfig: config,
		ModelName:               name,
		ModelHandle:             handle,
		RateLimit:               rate.NewLimiter(rate.Every(time.Second/time.Duration(requestsPerSecond)), requestsPerSecond),
	}
}

// GenerateContent blocks until the rate limiter grants a slot, then forwards
// the call to the underlying model with the wrapper's persona config.
// Cancellation of ctx releases a waiting caller.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error) {
	if err := q.RateLimit.Wait(ctx); err != nil {
		return nil, err
	}
	return q.ModelHandle.GenerateContent(ctx, q.ModelName, content, q.GenerativeContentConfig)
}
