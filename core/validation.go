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

package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateActor validates an Actor according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Kind must be a known variant
//   - Attendee variant must carry an AttendeeProfile
//
// NOT validated (populated by processors):
//   - Vector (can be empty until an embedder runs)
//   - Id (generated from content when empty)
func ValidateActor(actor *Actor) error {
	if actor == nil {
		return fmt.Errorf("%w: actor is nil", ErrInvalidActor)
	}

	if actor.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidActor, ErrEmptyActorName)
	}

	if err := ValidateActorKind(actor.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidActor, err)
	}

	if actor.Kind == ActorKindAttendee && actor.Attendee == nil {
		return fmt.Errorf("%w: %w", ErrInvalidActor, ErrMissingAttendeeProfile)
	}

	return nil
}

// ValidateActorKind validates that an ActorKind has a known value.
func ValidateActorKind(kind ActorKind) error {
	switch kind {
	case ActorKindCompany, ActorKindSponsor, ActorKindAttendee:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidActorKind, kind)
	}
}

// ValidateWeightProfile validates a WeightProfile according to domain rules.
// Validation is all-or-nothing: every violation is collected and aggregated
// into a single rejection error, and callers must not persist any part of a
// profile that fails.
//
// Validation rules:
//   - every weight must lie in [0,100]
//   - Thresholds.MinScore and MinConfidence must lie in [0,1]
//   - Thresholds.MaxResults must lie in [1,1000]
//   - Normalization.Temperature must be positive when set
//   - Name and Persona must not be empty
func ValidateWeightProfile(profile *WeightProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	var violations []string

	if profile.Name == "" {
		violations = append(violations, "name cannot be empty")
	}
	if profile.Persona == "" {
		violations = append(violations, "persona cannot be empty")
	}

	for metric, weight := range profile.Weights {
		if weight < 0 || weight > 100 {
			violations = append(violations,
				fmt.Sprintf("weight for %q must be in [0,100], got %g", metric, weight))
		}
	}

	if profile.Thresholds.MinScore < 0 || profile.Thresholds.MinScore > 1 {
		violations = append(violations,
			fmt.Sprintf("minimum score must be in [0,1], got %g", profile.Thresholds.MinScore))
	}
	if profile.Thresholds.MinConfidence < 0 || profile.Thresholds.MinConfidence > 1 {
		violations = append(violations,
			fmt.Sprintf("minimum confidence must be in [0,1], got %g", profile.Thresholds.MinConfidence))
	}
	if profile.Thresholds.MaxResults < 1 || profile.Thresholds.MaxResults > 1000 {
		violations = append(violations,
			fmt.Sprintf("maximum results must be in [1,1000], got %d", profile.Thresholds.MaxResults))
	}

	if profile.Normalization.Temperature < 0 {
		violations = append(violations,
			fmt.Sprintf("temperature must not be negative, got %g", profile.Normalization.Temperature))
	}

	if len(violations) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(violations, "; "))
	}
	return nil
}

// ValidateScanEvent validates a ScanEvent according to domain rules.
func ValidateScanEvent(event *ScanEvent) error {
	if event == nil {
		return fmt.Errorf("%w: event is nil", ErrInvalidScanEvent)
	}
	if event.From == "" || event.To == "" {
		return fmt.Errorf("%w: both actor ids are required", ErrInvalidScanEvent)
	}
	if event.From == event.To {
		return fmt.Errorf("%w: actors cannot scan themselves", ErrInvalidScanEvent)
	}
	if !IsValidTimestamp(event.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidScanEvent, ErrFutureTimestamp)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
