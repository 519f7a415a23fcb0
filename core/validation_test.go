package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateActor(t *testing.T) {
	tests := []struct {
		name    string
		actor   *Actor
		wantErr error
	}{
		{
			name:    "valid company",
			actor:   &Actor{Id: "c1", Kind: ActorKindCompany, Name: "Acme"},
			wantErr: nil,
		},
		{
			name: "valid attendee",
			actor: &Actor{
				Id: "a1", Kind: ActorKindAttendee, Name: "jdoe",
				Attendee: &AttendeeProfile{},
			},
			wantErr: nil,
		},
		{
			name:    "nil actor",
			actor:   nil,
			wantErr: ErrInvalidActor,
		},
		{
			name:    "empty name",
			actor:   &Actor{Id: "c1", Kind: ActorKindCompany},
			wantErr: ErrEmptyActorName,
		},
		{
			name:    "unknown kind",
			actor:   &Actor{Id: "c1", Kind: ActorKind(99), Name: "Acme"},
			wantErr: ErrInvalidActorKind,
		},
		{
			name:    "attendee without profile",
			actor:   &Actor{Id: "a1", Kind: ActorKindAttendee, Name: "jdoe"},
			wantErr: ErrMissingAttendeeProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateActor(tt.actor)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWeightProfile(t *testing.T) {
	valid := func() *WeightProfile {
		return &WeightProfile{
			Name:    "default",
			Persona: "company",
			Weights: map[string]float64{"platform_overlap": 30, "rating": 5},
			Thresholds: Thresholds{
				MinScore:      0.3,
				MinConfidence: 0.2,
				MaxResults:    50,
			},
		}
	}

	t.Run("valid profile", func(t *testing.T) {
		if err := ValidateWeightProfile(valid()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("weight out of range", func(t *testing.T) {
		p := valid()
		p.Weights["platform_overlap"] = 150
		err := ValidateWeightProfile(p)
		if !errors.Is(err, ErrInvalidProfile) {
			t.Fatalf("got %v, want ErrInvalidProfile", err)
		}
	})

	t.Run("violations are aggregated", func(t *testing.T) {
		p := valid()
		p.Name = ""
		p.Weights["rating"] = -3
		p.Thresholds.MinScore = 1.7
		p.Thresholds.MaxResults = 0
		err := ValidateWeightProfile(p)
		if !errors.Is(err, ErrInvalidProfile) {
			t.Fatalf("got %v, want ErrInvalidProfile", err)
		}
		msg := err.Error()
		for _, want := range []string{"name", "rating", "minimum score", "maximum results"} {
			if !strings.Contains(msg, want) {
				t.Errorf("aggregated message missing %q: %s", want, msg)
			}
		}
	})

	t.Run("nil profile", func(t *testing.T) {
		if err := ValidateWeightProfile(nil); !errors.Is(err, ErrInvalidProfile) {
			t.Fatalf("got %v, want ErrInvalidProfile", err)
		}
	})
}

func TestValidateScanEvent(t *testing.T) {
	now := time.Now().Add(-time.Minute)

	tests := []struct {
		name    string
		event   *ScanEvent
		wantErr error
	}{
		{"valid", &ScanEvent{From: "a", To: "b", Timestamp: now}, nil},
		{"nil", nil, ErrInvalidScanEvent},
		{"missing actor", &ScanEvent{From: "a", Timestamp: now}, ErrInvalidScanEvent},
		{"self scan", &ScanEvent{From: "a", To: "a", Timestamp: now}, ErrInvalidScanEvent},
		{"future", &ScanEvent{From: "a", To: "b", Timestamp: time.Now().Add(time.Hour)}, ErrFutureTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScanEvent(tt.event)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNumericFieldRegistry(t *testing.T) {
	actor := &Actor{Rating: 4.5, TeamSize: 12}

	v, ok := NumericRating.Value(actor)
	if !ok || v != 4.5 {
		t.Errorf("rating = (%g,%v), want (4.5,true)", v, ok)
	}

	v, ok = NumericTeamSize.Value(actor)
	if !ok || v != 12 {
		t.Errorf("team size = (%g,%v), want (12,true)", v, ok)
	}

	// Zero means unset
	if _, ok := NumericPrice.Value(actor); ok {
		t.Error("unset price reported as present")
	}

	seen := map[string]bool{}
	for _, f := range NumericFields {
		key := f.Key()
		if key == "unknown" {
			t.Errorf("registered field %d has no key", f)
		}
		if seen[key] {
			t.Errorf("duplicate key %q", key)
		}
		seen[key] = true
	}
}
