// Copyright 2026 Confero Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package signal computes normalized per-signal similarity between two corpus
// actors.
//
// The engine holds corpus-wide statistics: a TF-IDF term index over the free
// text fields and per-numeric-field mean/standard deviation. Initialize
// rebuilds them wholesale; there is no incremental update, and a rebuild is
// not safe to run concurrently with metric reads. Callers serialize
// reinitialization relative to match computation (the match engine does this
// behind its corpus-revision check).
//
// Every metric produces a value in [0,1]. Metrics returns a key->value map
// with zero and NaN entries removed: the absence of a signal means "no
// evidence available", never "evidence of mismatch". The aggregation in the
// match package depends on that convention.
package signal
