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

package badger

// Repositories bundles every repository over one backend.
type Repositories struct {
	Backend    *Backend
	Actors     *ActorRepository
	Profiles   *ProfileRepository
	Matches    *MatchRepository
	Scans      *ScanRepository
	IngestLogs *IngestLogRepository
}

// Close closes the shared backend.
func (r *Repositories) Close() error {
	return r.Backend.Close()
}

// NewRepositories opens a backend at path and wires every repository over it.
func NewRepositories(path string) (*Repositories, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return wrap(backend), nil
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must Close when done.
func NewMemoryRepositories() (*Repositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return wrap(backend), nil
}

func wrap(backend *Backend) *Repositories {
	return &Repositories{
		Backend:    backend,
		Actors:     NewActorRepository(backend),
		Profiles:   NewProfileRepository(backend),
		Matches:    NewMatchRepository(backend),
		Scans:      NewScanRepository(backend),
		IngestLogs: NewIngestLogRepository(backend),
	}
}
