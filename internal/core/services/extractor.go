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
// sources. This file defines the TitleExtractorService, which asks a
// generative model to pull the literal movie titles out of the profile text.
// Model output is nominally a JSON array, but generative output drifts, so
// parsing falls back through progressively looser interpretations before
// giving up. An empty title list is a valid result.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/metric"

	"github.com/popchoice/gcp-go-movie-match/internal/cloud"
)

var arrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)

// TitleExtractorService wraps the title-extractor persona.
type TitleExtractorService struct {
	Model              *cloud.QuotaAwareGenerativeAIModel
	InputTokenCounter  metric.Int64Counter
	OutputTokenCounter metric.Int64Counter
	RetryCounter       metric.Int64Counter
}

// NewTitleExtractorService builds the service with token counters on the
// provided meter.
func NewTitleExtractorService(model *cloud.QuotaAwareGenerativeAIModel, meter metric.Meter) *TitleExtractorService {
	s := &TitleExtractorService{Model: model}
	s.InputTokenCounter, _ = meter.Int64Counter("title_extractor.gemini.token.input")
	s.OutputTokenCounter, _ = meter.Int64Counter("title_extractor.gemini.token.output")
	s.RetryCounter, _ = meter.Int64Counter("title_extractor.gemini.retry")
	return s
}

// ExtractTitles sends the profile text to the extractor persona and parses
// the returned title list.
func (s *TitleExtractorService) ExtractTitles(ctx context.Context, profileText string) ([]string, error) {
	out, err := cloud.GenerateText(ctx, s.InputTokenCounter, s.OutputTokenCounter, s.RetryCounter, 0, s.Model, cloud.NewTextContent(profileText))
	if err != nil {
		return nil, fmt.Errorf("title extraction failed: %w", err)
	}
	return ParseTitleList(out), nil
}

// ParseTitleList interprets a model response as a list of movie titles.
// Attempts, in order:
//
//  1. The whole response as a JSON string array.
//  2. A JSON object carrying the array under a "movies" or "titles" key.
//  3. The first bracketed substring as a JSON array.
//  4. Line splitting, stripping list bullets and quotes.
//
// Whatever survives is filtered for empty strings. No titles is a valid
// outcome and yields an empty slice.
func ParseTitleList(response string) []string {
	text := strings.TrimSpace(response)
	if text == "" {
		return []string{}
	}

	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		var titles []string
		if err := json.Unmarshal([]byte(text), &titles); err == nil {
			return filterTitles(titles)
		}
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &wrapper); err == nil {
		for _, key := range []string{"movies", "titles"} {
			raw, ok := wrapper[key]
			if !ok {
				continue
			}
			var titles []string
			if err := json.Unmarshal(raw, &titles); err == nil {
				return filterTitles(titles)
			}
			var single string
			if err := json.Unmarshal(raw, &single); err == nil {
				return filterTitles([]string{single})
			}
		}
	}

	if match := arrayPattern.FindString(text); match != "" {
		var titles []string
		if err := json.Unmarshal([]byte(match), &titles); err == nil {
			return filterTitles(titles)
		}
	}

	// Last resort: one title per line.
	lines := strings.Split(text, "\n")
	titles := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-•* ")
		line = strings.ReplaceAll(line, `"`, "")
		if line != "" {
			titles = append(titles, line)
		}
	}
	return filterTitles(titles)
}

func filterTitles(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
