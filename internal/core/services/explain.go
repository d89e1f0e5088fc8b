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
// sources. This file defines the ExplanationService, which asks the
// movie-expert persona for a short rationale for one candidate, given the
// candidate's stored description and the user profile as context.
package services

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"go.opentelemetry.io/otel/metric"

	"github.com/popchoice/gcp-go-movie-match/internal/cloud"
)

// ExplanationService wraps the movie-expert persona with the configured
// prompt template.
type ExplanationService struct {
	Model              *cloud.QuotaAwareGenerativeAIModel
	Template           *template.Template
	InputTokenCounter  metric.Int64Counter
	OutputTokenCounter metric.Int64Counter
	RetryCounter       metric.Int64Counter
}

// NewExplanationService parses the prompt template and sets up token
// counters on the provided meter.
func NewExplanationService(model *cloud.QuotaAwareGenerativeAIModel, promptTemplate string, meter metric.Meter) (*ExplanationService, error) {
	tmpl, err := template.New("explanation").Parse(promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse explanation prompt template: %w", err)
	}
	s := &ExplanationService{Model: model, Template: tmpl}
	s.InputTokenCounter, _ = meter.Int64Counter("explainer.gemini.token.input")
	s.OutputTokenCounter, _ = meter.Int64Counter("explainer.gemini.token.output")
	s.RetryCounter, _ = meter.Int64Counter("explainer.gemini.retry")
	return s, nil
}

// Explain generates the rationale for one candidate.
func (s *ExplanationService) Explain(ctx context.Context, content string, profileText string) (string, error) {
	var buffer bytes.Buffer
	err := s.Template.Execute(&buffer, map[string]interface{}{
		"CONTENT": content,
		"PROFILE": profileText,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute explanation template: %w", err)
	}

	out, err := cloud.GenerateText(ctx, s.InputTokenCounter, s.OutputTokenCounter, s.RetryCounter, 0, s.Model, cloud.NewTextContent(buffer.String()))
	if err != nil {
		return "", fmt.Errorf("explanation request failed: %w", err)
	}
	return out, nil
}
