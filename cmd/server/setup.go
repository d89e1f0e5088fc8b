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

// Package main contains the setup and initialization logic for the
// application's state. A single StateManager holds the configuration, the
// external service clients, the session store, the catalog service, and the
// recommendation workflow, so handlers share one set of dependencies.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/popchoice/gcp-go-movie-match/internal/cloud"
	"github.com/popchoice/gcp-go-movie-match/internal/core/services"
	"github.com/popchoice/gcp-go-movie-match/internal/core/workflow"
)

// StateManager holds all the shared dependencies for the application.
type StateManager struct {
	config                 *cloud.Config
	cloud                  *cloud.ServiceClients
	sessionService         *services.SessionService
	catalogService         *services.CatalogService
	recommendationWorkflow *workflow.RecommendationWorkflow
}

// state is the single instance of StateManager.
var state = &StateManager{}

// SetupOS points the configuration loader at the configs directory and the
// local runtime, so .env.local.toml overrides the base settings.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "local")
	return err
}

// GetConfig provides a singleton instance of the application configuration,
// loading it from the TOML files on first use.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup os environment: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}

// InitState initializes the application state: the external service clients,
// the session store, the catalog service, and the recommendation workflow.
func InitState(ctx context.Context) {
	config := GetConfig()

	serviceClients, err := cloud.NewServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = serviceClients

	ttl := time.Duration(config.Redis.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	state.sessionService = &services.SessionService{
		Client: serviceClients.RedisClient,
		TTL:    ttl,
	}

	state.catalogService = &services.CatalogService{
		BigqueryClient: serviceClients.BigQueryClient,
		DatasetName:    config.BigQueryDataSource.DatasetName,
		FilmsTable:     config.BigQueryDataSource.FilmsTable,
		ScanLimit:      config.Matching.CatalogScanLimit,
		FuzzyThreshold: config.Matching.FuzzyOverlapThreshold,
	}

	state.recommendationWorkflow, err = workflow.NewRecommendationWorkflow(config, serviceClients)
	if err != nil {
		panic(err)
	}
}
