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

package storage

import (
	"fmt"

	"github.com/confero/confero/core"
	"github.com/goccy/go-json"
)

// MarshalActor serializes an Actor to bytes.
func MarshalActor(actor *core.Actor) ([]byte, error) {
	return marshal(actor)
}

// UnmarshalActor deserializes an Actor from bytes.
func UnmarshalActor(data []byte) (*core.Actor, error) {
	return unmarshal[core.Actor](data)
}

// MarshalProfile serializes a WeightProfile to bytes.
func MarshalProfile(profile *core.WeightProfile) ([]byte, error) {
	return marshal(profile)
}

// UnmarshalProfile deserializes a WeightProfile from bytes.
func UnmarshalProfile(data []byte) (*core.WeightProfile, error) {
	return unmarshal[core.WeightProfile](data)
}

// MarshalMatch serializes a Match to bytes.
func MarshalMatch(match *core.Match) ([]byte, error) {
	return marshal(match)
}

// UnmarshalMatch deserializes a Match from bytes.
func UnmarshalMatch(data []byte) (*core.Match, error) {
	return unmarshal[core.Match](data)
}

// MarshalScanEvent serializes a ScanEvent to bytes.
func MarshalScanEvent(event *core.ScanEvent) ([]byte, error) {
	return marshal(event)
}

// UnmarshalScanEvent deserializes a ScanEvent from bytes.
func UnmarshalScanEvent(data []byte) (*core.ScanEvent, error) {
	return unmarshal[core.ScanEvent](data)
}

// MarshalIngestLog serializes an IngestLog to bytes.
func MarshalIngestLog(log *core.IngestLog) ([]byte, error) {
	return marshal(log)
}

// UnmarshalIngestLog deserializes an IngestLog from bytes.
func UnmarshalIngestLog(data []byte) (*core.IngestLog, error) {
	return unmarshal[core.IngestLog](data)
}

func marshal[T any](v *T) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return data, nil
}

func unmarshal[T any](data []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}
	return &v, nil
}
