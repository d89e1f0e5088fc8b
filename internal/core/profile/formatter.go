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

// Package profile turns raw per-user answer sets into pipeline inputs.
// This file composes the natural-language profile string used as the
// semantic query. Mood and era answers never appear in the text; they are
// captured numerically by the vote tally instead, so the qualitative signal
// is not counted twice.
package profile

import (
	"strings"

	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
)

// BuildProfile composes the profile text from every user's answers.
//
// For each question (in the order of the first user's answer set) the
// non-empty answers of all users are joined by ". " into a composite answer,
// then rendered as a natural preference statement according to the question
// bucket. The favourite-movie question is rendered per user instead, so each
// user's answer can be substituted with its catalog synopsis when one was
// found: "User loves films like: {synopsis}" reads much closer to a film
// description than a bare title and embeds better.
//
// Inputs:
//   - answers: the ordered per-user answer sets.
//   - synopses: favourite answer text to catalog synopsis, as produced by
//     the synopsis lookup stage. May be nil.
//
// Outputs:
//   - string: the profile text, statements joined by ". ".
func BuildProfile(answers []model.AnswerSet, synopses map[string]string) string {
	if len(answers) == 0 {
		return ""
	}

	statements := make([]string, 0, len(answers[0]))
	for _, qa := range answers[0] {
		question := qa.Question
		kind := Classify(question)

		switch kind {
		case KindEra, KindMood:
			// Captured numerically only.
			continue
		case KindFavourite:
			for _, user := range answers {
				answer := strings.TrimSpace(user.Answer(question))
				if answer == "" {
					continue
				}
				if synopsis, ok := synopses[answer]; ok && synopsis != "" {
					statements = append(statements, "User loves films like: "+synopsis)
				} else {
					statements = append(statements, "User's favourite movie is "+answer)
				}
			}
		default:
			composite := compositeAnswer(answers, question)
			if composite == "" {
				continue
			}
			if kind == KindPerson {
				statements = append(statements, "User likes movies with "+composite)
			} else {
				statements = append(statements, "User prefers "+composite)
			}
		}
	}

	return strings.Join(statements, ". ")
}

// FavouriteAnswers returns the raw favourite-movie answers of every user.
// The synopsis lookup stage uses these directly, before any formatting.
func FavouriteAnswers(answers []model.AnswerSet) []string {
	out := make([]string, 0, len(answers))
	for _, user := range answers {
		for _, qa := range user {
			if Classify(qa.Question) != KindFavourite {
				continue
			}
			if answer := strings.TrimSpace(qa.Answer); answer != "" {
				out = append(out, answer)
			}
		}
	}
	return out
}

// compositeAnswer joins the non-empty answers of all users for one question.
func compositeAnswer(answers []model.AnswerSet, question string) string {
	parts := make([]string, 0, len(answers))
	for _, user := range answers {
		if answer := strings.TrimSpace(user.Answer(question)); answer != "" {
			parts = append(parts, answer)
		}
	}
	return strings.Join(parts, ". ")
}
