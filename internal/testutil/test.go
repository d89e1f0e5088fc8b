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

// Package test provides utility functions and sample data to support the
// test suite: a cached test configuration and canned answer sets that
// exercise the profile and recommendation pipeline.
package test

import (
	"log"
	"os"
	"testing"

	"github.com/popchoice/gcp-go-movie-match/internal/cloud"
	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
)

// Question keys shared by the sample answer sets. These mirror the form
// field names the frontend submits.
const (
	QuestionFavourite = "what's-your-favourite-movie-and-why?"
	QuestionEra       = "do-you-prefer-new-or-classic-movies?"
	QuestionMood      = "what-are-you-in-the-mood-for?"
	QuestionPerson    = "which-famous-film-person-would-you-like-to-be-stranded-on-an-island-with-and-why?"
)

// StateManager caches the test configuration so TOML files load once per
// test run.
type StateManager struct {
	config *cloud.Config
}

var state = &StateManager{}

// HandleErr fails the test when err is not nil.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("Error reading config file: %v", err)
	}
}

// SetupOS points the configuration loader at the test configuration files.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// SingleUserAnswers is one complete answer set for a solo viewer who wants a
// serious classic like The Matrix.
func SingleUserAnswers() []model.AnswerSet {
	return []model.AnswerSet{
		{
			{Question: QuestionFavourite, Answer: "The Matrix because it changed how I see reality"},
			{Question: QuestionEra, Answer: "Classic"},
			{Question: QuestionMood, Answer: "Serious"},
			{Question: QuestionPerson, Answer: "Keanu Reeves because he seems humble"},
		},
	}
}

// GroupAnswers is a two-person party with split era votes and different
// favourites.
func GroupAnswers() []model.AnswerSet {
	return []model.AnswerSet{
		{
			{Question: QuestionFavourite, Answer: "Inception, the layered dream logic is brilliant"},
			{Question: QuestionEra, Answer: "New"},
			{Question: QuestionMood, Answer: "Scary"},
			{Question: QuestionPerson, Answer: "Christopher Nolan, I want to hear how he plans a shot"},
		},
		{
			{Question: QuestionFavourite, Answer: "Casablanca"},
			{Question: QuestionEra, Answer: "Classic"},
			{Question: QuestionMood, Answer: "Serious"},
			{Question: QuestionPerson, Answer: "Ingrid Bergman"},
		},
	}
}
