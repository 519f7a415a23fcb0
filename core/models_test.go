package core

import (
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	id1 := IDFromContent("Acme Publishing")
	id2 := IDFromContent("Acme Publishing")
	if id1 != id2 {
		t.Errorf("same content produced different ids: %s vs %s", id1, id2)
	}

	// Leading/trailing space and case do not change identity
	id3 := IDFromContent("  acme publishing ")
	if id1 != id3 {
		t.Errorf("normalized content produced different id: %s vs %s", id1, id3)
	}

	other := IDFromContent("Globex")
	if id1 == other {
		t.Errorf("different content produced identical ids")
	}

	if len(id1) != 16 {
		t.Errorf("expected 16 hex chars, got %d (%s)", len(id1), id1)
	}
}

func TestPairKeyOrderIndependent(t *testing.T) {
	if PairKey("a1", "b2") != PairKey("b2", "a1") {
		t.Error("pair key depends on argument order")
	}
	if PairKey("a1", "b2") != "a1|b2" {
		t.Errorf("unexpected pair key %q", PairKey("a1", "b2"))
	}
	if MatchID("zz", "aa") != "aa|zz" {
		t.Errorf("unexpected match id %q", MatchID("zz", "aa"))
	}
}

func TestActorKindString(t *testing.T) {
	tests := []struct {
		kind ActorKind
		want string
	}{
		{ActorKindCompany, "company"},
		{ActorKindSponsor, "sponsor"},
		{ActorKindAttendee, "attendee"},
		{ActorKind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ActorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}

	if ParseActorKind("Sponsor") != ActorKindSponsor {
		t.Error("ParseActorKind should be case-insensitive")
	}
	if ParseActorKind("robot") != 0 {
		t.Error("ParseActorKind should return 0 for unknown input")
	}
}

func TestPublicCardConsent(t *testing.T) {
	attendee := &Actor{
		Id:    "att-1",
		Kind:  ActorKindAttendee,
		Name:  "jdoe",
		Title: "Engineer",
		Attendee: &AttendeeProfile{
			FullName:     "Jordan Doe",
			ContactEmail: "jordan@example.com",
			Roles:        []string{"developer"},
			Interests:    []string{"publishing"},
		},
	}

	// No consent: no person-level fields at all
	card := attendee.PublicCard()
	if card.FullName != "" || card.Email != "" || card.Roles != nil || card.Interests != nil {
		t.Errorf("card leaked PII without consent: %+v", card)
	}

	// Card consent only: name and declared tags, no contact email
	attendee.Attendee.ConsentPublicCard = true
	card = attendee.PublicCard()
	if card.FullName != "Jordan Doe" {
		t.Errorf("expected full name with card consent, got %q", card.FullName)
	}
	if card.Email != "" {
		t.Errorf("card leaked email without contact consent: %q", card.Email)
	}

	// Full consent
	attendee.Attendee.ConsentContact = true
	card = attendee.PublicCard()
	if card.Email != "jordan@example.com" {
		t.Errorf("expected email with contact consent, got %q", card.Email)
	}
}

func TestPublicCardCompany(t *testing.T) {
	company := &Actor{Id: "c1", Kind: ActorKindCompany, Name: "Acme", Title: "Acme Publishing"}
	card := company.PublicCard()
	if card.Name != "Acme" || card.Kind != "company" {
		t.Errorf("unexpected card %+v", card)
	}
}

func TestWeightProfileWeightDefault(t *testing.T) {
	p := &WeightProfile{Weights: map[string]float64{"platform_overlap": 30}}
	if p.Weight("platform_overlap") != 30 {
		t.Error("configured weight not returned")
	}
	// Unlisted metric keys default to 1, not 0
	if p.Weight("bio_similarity") != 1 {
		t.Errorf("unlisted key weight = %g, want 1", p.Weight("bio_similarity"))
	}
}

func TestWeightProfileClone(t *testing.T) {
	p := &WeightProfile{
		Name:    "base",
		Weights: map[string]float64{"rating": 5},
		Rules: ContextRules{
			MarketSynergy: map[string]map[string]float64{"fintech": {"banking": 0.8}},
		},
	}
	cp := p.Clone()
	cp.Weights["rating"] = 99
	cp.Rules.MarketSynergy["fintech"]["banking"] = 0
	if p.Weights["rating"] != 5 {
		t.Error("clone shares weight map with original")
	}
	if p.Rules.MarketSynergy["fintech"]["banking"] != 0.8 {
		t.Error("clone shares context rules with original")
	}
}

func TestScanEventPairKey(t *testing.T) {
	e1 := &ScanEvent{From: "b", To: "a", Timestamp: time.Now()}
	e2 := &ScanEvent{From: "a", To: "b", Timestamp: time.Now()}
	if e1.PairKey() != e2.PairKey() {
		t.Error("scan pair key depends on direction")
	}
}

func TestIngestLogCounts(t *testing.T) {
	log := &IngestLog{
		Issues: []RowIssue{
			{Row: 1, Severity: SeverityError},
			{Row: 2, Severity: SeverityWarning},
			{Row: 3, Severity: SeverityWarning},
		},
	}
	if log.ErrorCount() != 1 {
		t.Errorf("ErrorCount = %d, want 1", log.ErrorCount())
	}
	if log.WarningCount() != 2 {
		t.Errorf("WarningCount = %d, want 2", log.WarningCount())
	}
}
