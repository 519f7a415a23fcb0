// Copyright 2026 Confero Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config defines process configuration, layered from defaults,
// an optional YAML file, and CONFERO_-prefixed environment variables.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DBPath is the storage directory. Empty means in-memory.
	DBPath string `koanf:"db_path"`

	// ProfileCacheTTL bounds how long resolved weight profiles are reused.
	ProfileCacheTTL time.Duration `koanf:"profile_cache_ttl"`

	// Workers sets the all-pairs computation worker count.
	Workers int `koanf:"workers"`

	// DateHorizonDays tunes the release proximity decay.
	DateHorizonDays float64 `koanf:"date_horizon_days"`

	// Temperature tunes the numeric z-exp similarity decay.
	Temperature float64 `koanf:"temperature"`

	// ScanHorizonHours bounds how far back a badge scan still counts.
	ScanHorizonHours int `koanf:"scan_horizon_hours"`

	// MaxUploadRows caps ingest upload size.
	MaxUploadRows int `koanf:"max_upload_rows"`

	// TaxonomySampleLimit caps how many actors a taxonomy report reads.
	TaxonomySampleLimit int `koanf:"taxonomy_sample_limit"`

	// EmbeddingHost is an OpenAI-compatible embedding API base URL.
	// Empty disables embedding enrichment.
	EmbeddingHost string `koanf:"embedding_host"`

	// EmbeddingModel is the embedding model identifier.
	EmbeddingModel string `koanf:"embedding_model"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		DBPath:              "confero.db",
		ProfileCacheTTL:     5 * time.Minute,
		Workers:             8,
		DateHorizonDays:     365,
		Temperature:         1.0,
		ScanHorizonHours:    48,
		MaxUploadRows:       10_000,
		TaxonomySampleLimit: 5000,
		EmbeddingModel:      "embeddinggemma",
	}
}
