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

// Package commands provides the concrete pipeline commands of the
// recommendation workflow. This file defines the context keys the commands
// share. Every value flowing between stages is addressed by name rather
// than by the chain's default piping, because several stages read more than
// one upstream value.
package commands

const (
	// CtxAnswers holds the ordered per-user answer sets ([]model.AnswerSet).
	// Seeded by the workflow before the chain runs.
	CtxAnswers = "answers"

	// CtxSynopses holds the favourite-answer to catalog-synopsis map
	// (map[string]string) produced by the synopsis lookup.
	CtxSynopses = "synopses"

	// CtxProfile holds the composed natural-language profile text (string).
	CtxProfile = "profile"

	// CtxPreferences holds the aggregated mood/era preference vector
	// (model.Coefficients).
	CtxPreferences = "preferences"

	// CtxExclusions holds the catalog and franchise exclusion sets
	// (*services.Exclusions).
	CtxExclusions = "exclusions"

	// CtxEmbedding holds the profile embedding vector ([]float64).
	CtxEmbedding = "embedding"

	// CtxMatches holds the ranked candidate list ([]*model.FilmMatch).
	CtxMatches = "matches"

	// CtxRecommendation holds the final enriched result
	// (*model.RecommendationSet).
	CtxRecommendation = "recommendation"
)
