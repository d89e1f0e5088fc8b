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

	"github.com/popchoice/gcp-go-movie-match/internal/core/cor"
	"github.com/popchoice/gcp-go-movie-match/internal/core/services"
)

// TitleExtractor pulls movie titles out of free-form profile text.
type TitleExtractor interface {
	ExtractTitles(ctx context.Context, text string) ([]string, error)
}

// ExclusionFinder maps extracted titles to catalog films and their franchise
// collections.
type ExclusionFinder interface {
	FindExclusions(ctx context.Context, titles []string) (*services.Exclusions, error)
}

// MentionResolver identifies the movies the users already named so the
// ranking stage never recommends a film someone has plainly seen. When the
// extractor finds no titles, the catalog is not consulted at all.
type MentionResolver struct {
	cor.BaseCommand
	extractor TitleExtractor
	finder    ExclusionFinder
}

// NewMentionResolver constructs the command.
func NewMentionResolver(name string, extractor TitleExtractor, finder ExclusionFinder) *MentionResolver {
	out := &MentionResolver{BaseCommand: *cor.NewBaseCommand(name), extractor: extractor, finder: finder}
	out.InputParamName = CtxProfile
	out.OutputParamName = CtxExclusions
	return out
}

// Execute extracts mentioned titles and resolves them to exclusion sets.
func (t *MentionResolver) Execute(context cor.Context) {
	profileText := context.Get(t.GetInputParam()).(string)

	titles, err := t.extractor.ExtractTitles(context.GetContext(), profileText)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("title extraction failed: %w", err))
		return
	}

	exclusions := &services.Exclusions{}
	if len(titles) > 0 {
		exclusions, err = t.finder.FindExclusions(context.GetContext(), titles)
		if err != nil {
			t.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(t.GetName(), fmt.Errorf("exclusion lookup failed: %w", err))
			return
		}
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), exclusions)
}
