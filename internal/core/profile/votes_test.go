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

package profile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
	"github.com/popchoice/gcp-go-movie-match/internal/core/profile"
)

func TestTallyVotesDefaults(t *testing.T) {
	prefs := profile.TallyVotes(nil)
	require.Equal(t, model.DefaultCoefficients(), prefs)

	// Answers that carry no recognizable keywords keep the defaults too.
	prefs = profile.TallyVotes([]model.AnswerSet{
		{
			{Question: "do-you-prefer-new-or-classic-movies?", Answer: "whatever"},
			{Question: "what-are-you-in-the-mood-for?", Answer: "surprise me"},
		},
	})
	require.Equal(t, model.DefaultCoefficients(), prefs)
}

func TestTallyVotesSplitEra(t *testing.T) {
	prefs := profile.TallyVotes([]model.AnswerSet{
		{{Question: "do-you-prefer-new-or-classic-movies?", Answer: "New"}},
		{{Question: "do-you-prefer-new-or-classic-movies?", Answer: "Classic"}},
	})

	require.InDelta(t, 0.5, prefs.EraNew, 1e-9)
	require.InDelta(t, 0.5, prefs.EraClassic, 1e-9)
	// Mood group saw no votes, so it keeps the defaults.
	require.InDelta(t, 0.25, prefs.MoodFun, 1e-9)
}

func TestTallyVotesMoodMajority(t *testing.T) {
	prefs := profile.TallyVotes([]model.AnswerSet{
		{{Question: "what-are-you-in-the-mood-for?", Answer: "Fun"}},
		{{Question: "what-are-you-in-the-mood-for?", Answer: "Fun"}},
		{{Question: "what-are-you-in-the-mood-for?", Answer: "Serious"}},
	})

	require.InDelta(t, 2.0/3.0, prefs.MoodFun, 1e-9)
	require.InDelta(t, 1.0/3.0, prefs.MoodSerious, 1e-9)
	require.InDelta(t, 0, prefs.MoodInspiring, 1e-9)
	require.InDelta(t, 0, prefs.MoodScary, 1e-9)
}

func TestTallyVotesMultiKeywordAnswer(t *testing.T) {
	// A free-text answer can vote for more than one mood at once.
	prefs := profile.TallyVotes([]model.AnswerSet{
		{{Question: "what-are-you-in-the-mood-for?", Answer: "something fun but also scary"}},
	})

	require.InDelta(t, 0.5, prefs.MoodFun, 1e-9)
	require.InDelta(t, 0.5, prefs.MoodScary, 1e-9)
}

func TestTallyVotesNormalization(t *testing.T) {
	prefs := profile.TallyVotes([]model.AnswerSet{
		{
			{Question: "do-you-prefer-new-or-classic-movies?", Answer: "new"},
			{Question: "what-are-you-in-the-mood-for?", Answer: "inspiring"},
		},
		{
			{Question: "do-you-prefer-new-or-classic-movies?", Answer: "new"},
			{Question: "what-are-you-in-the-mood-for?", Answer: "serious"},
		},
	})

	require.InDelta(t, 1.0, prefs.EraNew+prefs.EraClassic, 1e-9)
	require.InDelta(t, 1.0, prefs.MoodFun+prefs.MoodSerious+prefs.MoodInspiring+prefs.MoodScary, 1e-9)
	require.InDelta(t, 1.0, prefs.EraNew, 1e-9)
}
