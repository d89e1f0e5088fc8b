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
// recommendation workflow. This file defines the synopsis lookup stage: for
// every favourite-movie answer, it asks the catalog for the best-matching
// stored synopsis, so the profile text can carry a full film description
// instead of a bare title. A richer query text produces a better embedding.
package commands

import (
	"context"
	"fmt"

	"github.com/popchoice/gcp-go-movie-match/internal/core/cor"
	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
	"github.com/popchoice/gcp-go-movie-match/internal/core/profile"
)

// SynopsisFinder resolves one favourite-movie answer to a catalog synopsis.
// An empty string is the valid no-match outcome.
type SynopsisFinder interface {
	BestSynopsisFor(ctx context.Context, query string) (string, error)
}

// SynopsisLookup is the first pipeline stage. It re-scans the raw answers
// for favourite-movie entries and builds the answer-to-synopsis map used by
// the preference extractor.
type SynopsisLookup struct {
	cor.BaseCommand
	finder SynopsisFinder
}

// NewSynopsisLookup constructs the command.
func NewSynopsisLookup(name string, finder SynopsisFinder) *SynopsisLookup {
	out := &SynopsisLookup{BaseCommand: *cor.NewBaseCommand(name), finder: finder}
	out.InputParamName = CtxAnswers
	out.OutputParamName = CtxSynopses
	return out
}

// Execute looks up a synopsis for each favourite answer. Only answers that
// actually matched a catalog film appear in the output map.
func (t *SynopsisLookup) Execute(context cor.Context) {
	answers := context.Get(t.GetInputParam()).([]model.AnswerSet)

	synopses := make(map[string]string)
	for _, answer := range profile.FavouriteAnswers(answers) {
		synopsis, err := t.finder.BestSynopsisFor(context.GetContext(), answer)
		if err != nil {
			t.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(t.GetName(), fmt.Errorf("synopsis lookup for %q failed: %w", answer, err))
			return
		}
		if synopsis != "" {
			synopses[answer] = synopsis
		}
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), synopses)
}
