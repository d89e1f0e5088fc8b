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

// Package model defines the core data structures for the application.
// This file holds the session shapes: the party's start parameters, the
// ordered per-user answer sets, and the session envelope persisted in the
// session store between pipeline invocations.
package model

import (
	"time"

	"github.com/google/uuid"
)

// StartData are the parameters collected when a viewing session begins.
type StartData struct {
	PeopleNumber int `json:"people_number"` // Declared party size; the pipeline runs once this many answer sets exist.
	TimeMinutes  int `json:"time_minutes"`  // How long the party wants to watch, informational.
}

// QA is a single question and its free-text or single-choice answer. The
// question key is the form field name (e.g.
// "what's-your-favourite-movie-and-why?").
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnswerSet is one user's ordered answers. Order is preserved so the profile
// text reads in question order for every user.
type AnswerSet []QA

// Answer returns the answer for a question key, or the empty string when the
// user skipped it.
func (a AnswerSet) Answer(question string) string {
	for _, qa := range a {
		if qa.Question == question {
			return qa.Answer
		}
	}
	return ""
}

// Session is the envelope persisted in the session store. It collects answer
// sets until the party is complete, then holds the last recommendation
// result. Deleting the session resets everything.
type Session struct {
	Id             string             `json:"id"`
	Start          StartData          `json:"start"`
	Answers        []AnswerSet        `json:"answers"`
	Recommendation *RecommendationSet `json:"recommendation,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// NewSession creates a session with a fresh identifier.
func NewSession(start StartData) *Session {
	return &Session{
		Id:        uuid.NewString(),
		Start:     start,
		Answers:   make([]AnswerSet, 0, start.PeopleNumber),
		CreatedAt: time.Now().UTC(),
	}
}

// Complete reports whether every declared party member has answered.
func (s *Session) Complete() bool {
	return len(s.Answers) >= s.Start.PeopleNumber
}
