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

// Package ai defines the embedding service used to enrich actors with
// semantic vectors during ingestion. Embeddings are optional: the
// scoring engine works without them and simply lacks the embedding
// similarity signal.
package ai

import "context"

// Embedder generates vector embeddings from text. Implementations must
// be safe for concurrent use.
type Embedder interface {
	// EmbedText generates an embedding for a single text.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for a batch, in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
