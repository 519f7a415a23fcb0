package storage

import (
	"testing"
	"time"

	"github.com/confero/confero/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorRoundTrip(t *testing.T) {
	actor := &core.Actor{
		Id:           "abc123",
		Kind:         core.ActorKindAttendee,
		Name:         "jdoe",
		Platforms:    []string{"web", "mobile"},
		Needs:        []string{"Publishing Services"},
		Rating:       4.2,
		Vector:       []float32{0.1, 0.2},
		Extras:       map[string]string{"booth": "A12"},
		CreatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Attendee: &core.AttendeeProfile{
			Roles:             []string{"developer"},
			PreferredLocation: "expo-hall",
			ConsentPublicCard: true,
		},
	}

	data, err := MarshalActor(actor)
	require.NoError(t, err)

	got, err := UnmarshalActor(data)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestProfileRoundTrip(t *testing.T) {
	profile := &core.WeightProfile{
		Id:      "p1",
		Name:    "sponsor default",
		Persona: "sponsor",
		Weights: map[string]float64{"market_overlap": 40},
		Rules: core.ContextRules{
			MarketSynergy: map[string]map[string]float64{"fintech": {"banking": 0.9}},
		},
		Thresholds: core.Thresholds{MinScore: 0.3, MaxResults: 25},
	}

	data, err := MarshalProfile(profile)
	require.NoError(t, err)

	got, err := UnmarshalProfile(data)
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestUnmarshalGarbage(t *testing.T) {
	_, err := UnmarshalActor([]byte("{not json"))
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalMatch([]byte("\x00\x01"))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
