// Copyright 2025 PopChoice Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main is the entry point for the movie recommendation backend.
//
// The server exposes a REST API over Gin for managing viewing sessions and
// producing group movie recommendations. A session collects one answer set
// per party member; once the declared party size is reached, the
// recommendation pipeline composes a shared profile, embeds it, runs a
// vector search over the film catalog, and returns ranked matches with
// generated explanations and poster art.
//
// The server is instrumented with OpenTelemetry for logging, tracing, and
// metrics.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/popchoice/gcp-go-movie-match/internal/core/model"
	"github.com/popchoice/gcp-go-movie-match/internal/core/services"
	"github.com/popchoice/gcp-go-movie-match/internal/telemetry"
)

// main wires logging, telemetry, application state, the HTTP routes, and
// graceful shutdown.
func main() {
	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := GetConfig()

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState(ctx)
	slog.Info("Initialized State")

	r := gin.Default()
	r.Use(otelgin.Middleware("movie-match-server"))
	r.Use(cors.Default())

	apiV1 := r.Group("/api/v1")
	{
		SessionRouter(apiV1)
		CatalogRouter(apiV1)
	}

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      r,
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen: ", "error", err)
		}
	}()
	slog.Info("Server Ready on port 8080")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed:", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry Shutdown Failed:", "error", err)
	}
	state.cloud.Close()

	log.Println("Server exiting")
}

// SessionRouter sets up the session lifecycle routes.
//
// Endpoints:
//   - POST /sessions: Creates a session from the party's start parameters.
//   - GET /sessions/:id: Returns the session, including any held result.
//   - DELETE /sessions/:id: Resets the session.
//   - POST /sessions/:id/answers: Appends one user's answer set.
//   - POST /sessions/:id/recommendations: Runs the pipeline once the party
//     is complete and stores the result on the session.
func SessionRouter(r *gin.RouterGroup) {
	sessions := r.Group("/sessions")
	{
		sessions.POST("", func(c *gin.Context) {
			var start model.StartData
			if err := c.ShouldBindJSON(&start); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start data"})
				return
			}
			if start.PeopleNumber < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "people_number must be at least 1"})
				return
			}
			session, err := state.sessionService.Create(c, start)
			if err != nil {
				log.Printf("Error creating session: %v\n", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusCreated, session)
		})

		sessions.GET("/:id", func(c *gin.Context) {
			session, err := state.sessionService.Get(c, c.Param("id"))
			if err != nil {
				sessionError(c, err)
				return
			}
			c.JSON(http.StatusOK, session)
		})

		sessions.DELETE("/:id", func(c *gin.Context) {
			if err := state.sessionService.Delete(c, c.Param("id")); err != nil {
				log.Printf("Error deleting session: %v\n", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.Status(http.StatusNoContent)
		})

		sessions.POST("/:id/answers", func(c *gin.Context) {
			var answers model.AnswerSet
			if err := c.ShouldBindJSON(&answers); err != nil || len(answers) == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid answer set"})
				return
			}
			session, err := state.sessionService.AddAnswers(c, c.Param("id"), answers)
			if err != nil {
				sessionError(c, err)
				return
			}
			c.JSON(http.StatusOK, session)
		})

		sessions.POST("/:id/recommendations", func(c *gin.Context) {
			session, err := state.sessionService.Get(c, c.Param("id"))
			if err != nil {
				sessionError(c, err)
				return
			}
			if !session.Complete() {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":    "party is not complete yet",
					"answered": len(session.Answers),
					"expected": session.Start.PeopleNumber,
				})
				return
			}

			recommendation, err := state.recommendationWorkflow.Run(c, session.Answers)
			if err != nil {
				log.Printf("Error running recommendation pipeline: %v\n", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendation failed"})
				return
			}

			session, err = state.sessionService.SetRecommendation(c, session.Id, recommendation)
			if err != nil {
				sessionError(c, err)
				return
			}
			c.JSON(http.StatusOK, session)
		})
	}
}

// CatalogRouter sets up read-only catalog routes used by operators to verify
// the ingested film set.
func CatalogRouter(r *gin.RouterGroup) {
	films := r.Group("/films")
	{
		films.GET("", func(c *gin.Context) {
			out, err := state.catalogService.ListFilms(c)
			if err != nil {
				log.Printf("Error listing films: %v\n", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, out)
		})
	}
}

// sessionError maps session store errors to HTTP statuses.
func sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, services.ErrPartyComplete):
		c.JSON(http.StatusConflict, gin.H{"error": "all party members have already answered"})
	default:
		log.Printf("Session store error: %v\n", err)
		c.Status(http.StatusInternalServerError)
	}
}
