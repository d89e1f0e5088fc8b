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

package commands

import (
	"errors"

	"github.com/popchoice/gcp-go-movie-match/internal/core/cor"
	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
	"github.com/popchoice/gcp-go-movie-match/internal/core/profile"
)

// PreferenceExtractor turns the raw answer sets into the two values the rest
// of the pipeline consumes: the natural-language profile text that gets
// embedded, and the aggregated mood/era preference vector used for score
// boosting. Both are pure computations over the answers and the synopsis map.
type PreferenceExtractor struct {
	cor.BaseCommand
}

// NewPreferenceExtractor constructs the command.
func NewPreferenceExtractor(name string) *PreferenceExtractor {
	out := &PreferenceExtractor{BaseCommand: *cor.NewBaseCommand(name)}
	out.InputParamName = CtxAnswers
	out.OutputParamName = CtxProfile
	return out
}

// IsExecutable also requires the synopsis map from the lookup stage.
func (t *PreferenceExtractor) IsExecutable(context cor.Context) bool {
	return t.BaseCommand.IsExecutable(context) && context.Get(CtxSynopses) != nil
}

// Execute composes the profile text and tallies the preference votes.
func (t *PreferenceExtractor) Execute(context cor.Context) {
	answers := context.Get(t.GetInputParam()).([]model.AnswerSet)
	synopses := context.Get(CtxSynopses).(map[string]string)

	profileText := profile.BuildProfile(answers, synopses)
	if profileText == "" {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), errors.New("answers produced an empty profile"))
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), profileText)
	context.Add(CtxPreferences, profile.TallyVotes(answers))
}
