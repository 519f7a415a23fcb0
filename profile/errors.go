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

package profile

import "errors"

var (
	// ErrDefaultProtected is returned when deleting a persona's default
	// profile. Defaults are reseeded lazily, so deleting one would only
	// bring it back; rejecting the call makes that explicit.
	ErrDefaultProtected = errors.New("default profile cannot be deleted")

	// ErrUnknownPersona is returned when no template exists for a persona.
	ErrUnknownPersona = errors.New("unknown persona")

	// ErrInvalidBundle is returned when an import payload cannot be parsed
	// or contains an invalid profile.
	ErrInvalidBundle = errors.New("invalid profile bundle")
)
