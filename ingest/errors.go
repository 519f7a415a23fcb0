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

package ingest

import "errors"

var (
	// ErrUnsupportedSource is returned for uploads of a type outside the
	// allow-list.
	ErrUnsupportedSource = errors.New("unsupported source type")

	// ErrEmptyUpload is returned when an upload contains no data rows.
	ErrEmptyUpload = errors.New("upload contains no rows")

	// ErrTooManyRows is returned when an upload exceeds the row ceiling.
	ErrTooManyRows = errors.New("upload exceeds row limit")

	// ErrUnknownPolicy is returned for an unrecognized duplicate policy.
	ErrUnknownPolicy = errors.New("unknown duplicate policy")
)
