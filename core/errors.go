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

import "errors"

// Domain validation errors
var (
	// ErrInvalidActor indicates an Actor failed validation.
	ErrInvalidActor = errors.New("invalid actor")

	// ErrEmptyActorName indicates the actor Name field is empty.
	ErrEmptyActorName = errors.New("actor name cannot be empty")

	// ErrInvalidActorKind indicates an unrecognized ActorKind value.
	ErrInvalidActorKind = errors.New("invalid actor kind")

	// ErrMissingAttendeeProfile indicates an attendee actor without a profile.
	ErrMissingAttendeeProfile = errors.New("attendee actor requires a profile")

	// ErrInvalidProfile indicates a WeightProfile failed validation.
	// Individual violations are aggregated into the wrapping message.
	ErrInvalidProfile = errors.New("invalid weight profile")

	// ErrInvalidScanEvent indicates a ScanEvent failed validation.
	ErrInvalidScanEvent = errors.New("invalid scan event")

	// ErrFutureTimestamp indicates a timestamp in the future.
	ErrFutureTimestamp = errors.New("timestamp cannot be in the future")
)
