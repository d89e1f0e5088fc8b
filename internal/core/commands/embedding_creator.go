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
)

// Embedder converts text into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// EmbeddingCreator embeds the composed profile text so the similarity stage
// can search the film catalog in vector space.
type EmbeddingCreator struct {
	cor.BaseCommand
	embedder Embedder
}

// NewEmbeddingCreator constructs the command.
func NewEmbeddingCreator(name string, embedder Embedder) *EmbeddingCreator {
	out := &EmbeddingCreator{BaseCommand: *cor.NewBaseCommand(name), embedder: embedder}
	out.InputParamName = CtxProfile
	out.OutputParamName = CtxEmbedding
	return out
}

// Execute creates the profile embedding.
func (t *EmbeddingCreator) Execute(context cor.Context) {
	profileText := context.Get(t.GetInputParam()).(string)

	embedding, err := t.embedder.Embed(context.GetContext(), profileText)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("profile embedding failed: %w", err))
		return
	}

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(t.GetOutputParam(), embedding)
}
