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

// Package services contains the business logic for interacting with data
// sources. This file defines the SessionService, a key-scoped Redis store
// for viewing sessions: start parameters, per-user answers, and the last
// recommendation result. The pipeline itself stays stateless; it receives
// and returns plain data and never touches this store.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
)

// ErrSessionNotFound is returned when no session exists under the given id,
// either because it was never created, was reset, or expired.
var ErrSessionNotFound = errors.New("session not found")

// ErrPartyComplete is returned when answers arrive for a session that
// already has a full set.
var ErrPartyComplete = errors.New("all party members have already answered")

const sessionKeyPrefix = "popchoice:session:"

// SessionService stores sessions in Redis as JSON documents under
// popchoice:session:<id>, each with an idle TTL.
type SessionService struct {
	Client *redis.Client
	TTL    time.Duration
}

// SessionKey builds the Redis key for a session id.
func SessionKey(id string) string {
	return sessionKeyPrefix + id
}

// Create persists a fresh session for the given start parameters.
func (s *SessionService) Create(ctx context.Context, start model.StartData) (*model.Session, error) {
	session := model.NewSession(start)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session by id.
func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	payload, err := s.Client.Get(ctx, SessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	session := &model.Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return session, nil
}

// AddAnswers appends one user's answer set. Once the declared party size is
// reached, further answers are rejected.
func (s *SessionService) AddAnswers(ctx context.Context, id string, answers model.AnswerSet) (*model.Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Complete() {
		return nil, ErrPartyComplete
	}
	session.Answers = append(session.Answers, answers)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetRecommendation stores the latest pipeline result on the session.
func (s *SessionService) SetRecommendation(ctx context.Context, id string, rec *model.RecommendationSet) (*model.Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Recommendation = rec
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Delete resets a session, discarding answers and any held recommendation.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := s.Client.Del(ctx, SessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

func (s *SessionService) save(ctx context.Context, session *model.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.Id, err)
	}
	if err := s.Client.Set(ctx, SessionKey(session.Id), payload, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", session.Id, err)
	}
	return nil
}
