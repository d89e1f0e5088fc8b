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
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/popchoice/gcp-go-movie-match/internal/core/cor"
	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
)

// Explainer writes a short pitch for one film in terms of the group's
// profile.
type Explainer interface {
	Explain(ctx context.Context, content string, profileText string) (string, error)
}

// PosterFinder resolves a film title to a poster image URL.
type PosterFinder interface {
	PosterURL(ctx context.Context, title string) (string, error)
}

// ResultEnricher decorates the ranked matches with a generated explanation
// and a poster URL per film. The per-film lookups run concurrently and the
// first failure cancels the rest.
type ResultEnricher struct {
	cor.BaseCommand
	explainer Explainer
	posters   PosterFinder
}

// NewResultEnricher constructs the command.
func NewResultEnricher(name string, explainer Explainer, posters PosterFinder) *ResultEnricher {
	out := &ResultEnricher{BaseCommand: *cor.NewBaseCommand(name), explainer: explainer, posters: posters}
	out.InputParamName = CtxMatches
	out.OutputParamName = CtxRecommendation
	return out
}

// IsExecutable also requires the profile text for the explanation prompt.
func (t *ResultEnricher) IsExecutable(context cor.Context) bool {
	return t.BaseCommand.IsExecutable(context) && context.Get(CtxProfile) != nil
}

// Execute builds the final recommendation set.
func (t *ResultEnricher) Execute(context cor.Context) {
	matches := context.Get(t.GetInputParam()).([]*model.FilmMatch)
	profileText := context.Get(CtxProfile).(string)

	explanations := make([]string, len(matches))
	posterURLs := make([]string, len(matches))

	group, groupCtx := errgroup.WithContext(context.GetContext())
	for i, match := range matches {
		group.Go(func() error {
			explanation, err := t.explainer.Explain(groupCtx, match.Content, profileText)
			if err != nil {
				return fmt.Errorf("explanation for %q failed: %w", match.Title, err)
			}
			explanations[i] = explanation
			return nil
		})
		group.Go(func() error {
			posterURL, err := t.posters.PosterURL(groupCtx, match.Title)
			if err != nil {
				return fmt.Errorf("poster lookup for %q failed: %w", match.Title, err)
			}
			posterURLs[i] = posterURL
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), err)
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), &model.RecommendationSet{
		Matches:      matches,
		Explanations: explanations,
		PosterURLs:   posterURLs,
	})
}
