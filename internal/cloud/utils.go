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
// This file contains the hierarchical configuration loader and a resilient
// helper for text generation calls.
//
// Functions:
//   - LoadConfig: Reads a base TOML file and then overwrites values with an
//     environment-specific file (e.g., .env.local.toml, .env.test.toml). The
//     environment is selected via the POPCHOICE_RUNTIME environment variable.
//   - GenerateText: A wrapper for GenAI text calls with bounded retries and
//     OpenTelemetry token accounting.
package cloud

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"go.opentelemetry.io/otel/metric"

	"github.com/BurntSushi/toml"
	"google.golang.org/genai"
)

const (
	ConfigFileBaseName  = ".env"                    // The base name for configuration files (e.g., ".env.toml").
	ConfigFileExtension = ".toml"                   // The file extension for configuration files.
	ConfigSeparator     = "."                       // The separator used in config file names (e.g., ".env.local.toml").
	EnvConfigFilePrefix = "POPCHOICE_CONFIG_PREFIX" // The environment variable for specifying the config directory.
	EnvConfigRuntime    = "POPCHOICE_RUNTIME"       // The environment variable for specifying the runtime context (e.g., "local", "test").
	MaxRetries          = 3                         // The maximum number of times to retry a failed generation call.
)

// fileExists checks if a file exists at the given path.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig provides hierarchical configuration loading. It first decodes a
// base configuration file and then overwrites its values with an
// environment-specific file. The directory prefix and runtime name come from
// environment variables so the same binary can run locally, under test, or in
// production with different settings.
//
// Inputs:
//   - baseConfig: a pointer to the target configuration struct that will be
//     populated from the TOML files.
func LoadConfig(baseConfig interface{}) {
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	// Default to the "test" runtime when no environment is declared.
	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "test"
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		_, err := toml.DecodeFile(baseConfigFileName, baseConfig)
		if err != nil {
			log.Fatalf("failed to decode base configuration file %s with error: %s", baseConfigFileName, err)
		}
	}

	// Values in the environment file overwrite values from the base config.
	if fileExists(envConfigFileName) {
		_, err := toml.DecodeFile(envConfigFileName, baseConfig)
		if err != nil {
			log.Fatalf("failed to decode environment configuration file: %s with error: %s", envConfigFileName, err)
		}
	}
}

// GenerateText executes a text request against a generative model with
// bounded retries. Token usage and retry counts are recorded on the provided
// OpenTelemetry counters. Any code fences around a JSON payload are stripped
// so callers can parse the body directly.
//
// Inputs:
//   - ctx: The context for the request, controls cancellation and tracing.
//   - inputTokenCounter: Counter for prompt tokens used.
//   - outputTokenCounter: Counter for response tokens generated.
//   - retryCounter: Counter for retry attempts.
//   - tryCount: The current attempt number (starts at 0).
//   - model: The rate-limited, quota-aware generative model to use.
//   - content: The conversation content forming the prompt.
//
// Outputs:
//   - string: The concatenated text content of the model's response.
//   - error: An error if the request fails after all retries.
func GenerateText(
	ctx context.Context,
	inputTokenCounter metric.Int64Counter,
	outputTokenCounter metric.Int64Counter,
	retryCounter metric.Int64Counter,
	tryCount int,
	model *QuotaAwareGenerativeAIModel,
	content []*genai.Content) (value string, err error) {
	resp, err := model.GenerateContent(ctx, content)
	if err != nil {
		if tryCount < MaxRetries {
			retryCounter.Add(ctx, 1)
			return GenerateText(ctx, inputTokenCounter, outputTokenCounter, retryCounter, tryCount+1, model, content)
		}
		return "", err
	}

	if resp.UsageMetadata != nil {
		inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
		outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	value = ""
	for _, candidate := range resp.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				value += fmt.Sprint(part.Text)
			}
		}
	}
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "```json")
	value = strings.TrimPrefix(value, "```")
	value = strings.TrimSuffix(value, "```")
	return strings.TrimSpace(value), nil
}

// NewTextContent wraps a string as a single user-role content turn.
func NewTextContent(in string) []*genai.Content {
	return []*genai.Content{genai.NewContentFromText(in, genai.RoleUser)}
}
