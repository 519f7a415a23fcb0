package core

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// IDFromContent generates a deterministic actor ID from text content using
// BLAKE2b hashing. Identical content always produces the same ID, which keeps
// re-imports idempotent.
func IDFromContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(strings.ToLower(strings.TrimSpace(text))))
	return hex.EncodeToString(h.Sum(nil))
}

// PairKey returns the canonical unordered key for a pair of actor IDs.
// The two IDs are sorted before joining, so PairKey(a, b) == PairKey(b, a).
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// ActorKind identifies the variant of an Actor.
type ActorKind int

const (
	// ActorKindCompany represents an exhibiting or presenting company.
	ActorKindCompany ActorKind = iota + 1
	// ActorKindSponsor represents a conference sponsor.
	ActorKindSponsor
	// ActorKindAttendee represents an individual attendee.
	ActorKindAttendee
)

// String returns the lowercase name of the kind.
func (k ActorKind) String() string {
	switch k {
	case ActorKindCompany:
		return "company"
	case ActorKindSponsor:
		return "sponsor"
	case ActorKindAttendee:
		return "attendee"
	default:
		return "unknown"
	}
}

// ParseActorKind parses a kind name. Returns 0 for unrecognized input.
func ParseActorKind(s string) ActorKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "company":
		return ActorKindCompany
	case "sponsor":
		return ActorKindSponsor
	case "attendee":
		return ActorKindAttendee
	default:
		return 0
	}
}

// Actor is the unified representation of a company, sponsor, or attendee in
// the matching corpus. The Kind tag is authoritative; Attendee is populated
// only for ActorKindAttendee.
type Actor struct {
	Id   string
	Kind ActorKind
	Name string

	// Free text
	Title       string
	Description string
	Abstract    string
	Pitch       string

	// Categorical lists
	Platforms    []string
	Markets      []string
	Capabilities []string
	Needs        []string
	Categories   []string

	Stage   string
	Country string
	Website string
	Email   string

	// Numeric slots; zero means unset (see NumericField accessors)
	Rating      float64
	Price       float64
	Cost        float64
	TeamSize    int
	FoundedYear int

	ReleasedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Vector is an optional embedding, populated during ingestion when an
	// embedder is configured.
	Vector []float32

	// Extras holds unmapped upload columns verbatim.
	Extras map[string]string

	Attendee *AttendeeProfile
}

// AttendeeProfile carries person-level fields for the attendee variant.
// PII visibility is governed by the consent flags.
type AttendeeProfile struct {
	FullName     string
	ContactEmail string

	ConsentPublicCard bool
	ConsentContact    bool

	Roles             []string
	Interests         []string
	Availability      []string
	PreferredLocation string
	ScanCount         int
}

// PublicCard is the externally-visible projection of an actor.
type PublicCard struct {
	Id        string
	Kind      string
	Name      string
	Title     string
	Roles     []string
	Interests []string
	FullName  string
	Email     string
}

// PublicCard builds the externally-visible projection of the actor.
// Attendee PII (full name, contact email) is included only when the
// corresponding consent flags are set; without card consent the projection
// carries no person-level fields at all.
func (a *Actor) PublicCard() PublicCard {
	card := PublicCard{
		Id:    a.Id,
		Kind:  a.Kind.String(),
		Name:  a.Name,
		Title: a.Title,
	}
	if a.Kind != ActorKindAttendee || a.Attendee == nil {
		return card
	}
	if !a.Attendee.ConsentPublicCard {
		return card
	}
	card.Roles = a.Attendee.Roles
	card.Interests = a.Attendee.Interests
	card.FullName = a.Attendee.FullName
	if a.Attendee.ConsentContact {
		card.Email = a.Attendee.ContactEmail
	}
	return card
}

// ScanEvent is a directed interaction record between two actors.
// Events are append-only.
type ScanEvent struct {
	From      string
	To        string
	Context   string
	Timestamp time.Time
}

// PairKey returns the canonical unordered key for the event's actor pair.
func (e *ScanEvent) PairKey() string {
	return PairKey(e.From, e.To)
}
