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
// This file holds the six-dimensional mood/era vector shared by film rows
// (as precomputed coefficient scores) and recommendation requests (as the
// aggregated group preference).
package model

// Coefficients carries the two era scores and four mood scores. On a film
// row they describe the film; on a request they describe the party's
// aggregated preference. The ranker computes the dot product of the two.
type Coefficients struct {
	EraNew        float64 `json:"era_new" bigquery:"era_new" toml:"era_new"`
	EraClassic    float64 `json:"era_classic" bigquery:"era_classic" toml:"era_classic"`
	MoodFun       float64 `json:"mood_fun" bigquery:"mood_fun" toml:"mood_fun"`
	MoodSerious   float64 `json:"mood_serious" bigquery:"mood_serious" toml:"mood_serious"`
	MoodInspiring float64 `json:"mood_inspiring" bigquery:"mood_inspiring" toml:"mood_inspiring"`
	MoodScary     float64 `json:"mood_scary" bigquery:"mood_scary" toml:"mood_scary"`
}

// DefaultCoefficients returns the neutral vector used when no votes were
// cast and when a film's genres or year are unknown: both eras 0.5, each
// mood 0.25.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		EraNew:        0.5,
		EraClassic:    0.5,
		MoodFun:       0.25,
		MoodSerious:   0.25,
		MoodInspiring: 0.25,
		MoodScary:     0.25,
	}
}

// Dot returns the agreement measure between two coefficient vectors: the sum
// over all six dimensions of the pairwise products.
func (c Coefficients) Dot(other Coefficients) float64 {
	return c.EraNew*other.EraNew +
		c.EraClassic*other.EraClassic +
		c.MoodFun*other.MoodFun +
		c.MoodSerious*other.MoodSerious +
		c.MoodInspiring*other.MoodInspiring +
		c.MoodScary*other.MoodScary
}
