package profile

import (
	"strings"

	"github.com/confero/confero/core"
	"github.com/confero/confero/signal"
)

// Personas with built-in default profiles.
const (
	PersonaCompany  = "company"
	PersonaSponsor  = "sponsor"
	PersonaAttendee = "attendee"
	PersonaInvestor = "investor"
)

// Personas lists every persona that has a built-in template.
var Personas = []string{PersonaCompany, PersonaSponsor, PersonaAttendee, PersonaInvestor}

// baseTemplate is the shared starting point every persona inherits. A
// persona template only records what it changes.
func baseTemplate() *core.WeightProfile {
	return &core.WeightProfile{
		Weights: map[string]float64{
			signal.MetricPlatformOverlap: 2,
			signal.MetricMarketOverlap:   2,
			signal.MetricTextRelevance:   1.5,
			signal.MetricNeedCapability:  2,
		},
		Normalization: core.Normalization{
			Method:      "z_exp",
			Temperature: 1.0,
		},
		Thresholds: core.Thresholds{
			MinScore:      0.2,
			MinConfidence: 0.1,
			MaxResults:    50,
		},
	}
}

type personaTemplate struct {
	description string
	weights     map[string]float64
	thresholds  *core.Thresholds
	rules       core.ContextRules
}

var personaTemplates = map[string]personaTemplate{
	PersonaCompany: {
		description: "Companies looking for partners, customers, and peers.",
		weights: map[string]float64{
			signal.MetricMarketSynergy: 2.5,
			signal.MetricStageFit:      1.5,
		},
	},
	PersonaSponsor: {
		description: "Sponsors looking for exposure to relevant exhibitors.",
		weights: map[string]float64{
			signal.MetricCategoryOverlap: 3,
			signal.MetricMarketOverlap:   2.5,
			signal.MetricNeedCapability:  1,
		},
	},
	PersonaAttendee: {
		description: "Attendees looking for people and booths worth visiting.",
		weights: map[string]float64{
			"role_intent":         2.5,
			"interest_capability": 2.5,
			"bio_similarity":      1.5,
			"scan_recency":        1,
		},
		thresholds: &core.Thresholds{
			MinScore:      0.15,
			MinConfidence: 0.05,
			MaxResults:    30,
		},
	},
	PersonaInvestor: {
		description: "Investors scanning for early-stage companies.",
		weights: map[string]float64{
			signal.MetricStageFit:      3,
			"role_intent":              2.5,
			"team_size":                1.5,
			signal.MetricMarketOverlap: 2,
		},
		rules: core.ContextRules{
			StageMatrix: map[string]map[string]float64{
				"idea": {"idea": 0.6, "seed": 0.8, "growth": 0.5, "mature": 0.3},
				"seed": {"idea": 0.8, "seed": 0.9, "growth": 0.7, "mature": 0.4},
			},
		},
	},
}

// buildDefaultProfile materializes the default profile for a persona by
// layering the persona's template over the shared base. The id is
// derived from the persona, so repeated seeding always lands on the
// same record.
func buildDefaultProfile(persona string) (*core.WeightProfile, error) {
	persona = strings.ToLower(strings.TrimSpace(persona))
	tmpl, ok := personaTemplates[persona]
	if !ok {
		return nil, ErrUnknownPersona
	}

	p := baseTemplate()
	p.Id = defaultProfileID(persona)
	p.Name = "Default " + persona
	p.Description = tmpl.description
	p.Persona = persona
	p.IsDefault = true

	for metric, weight := range tmpl.weights {
		p.Weights[metric] = weight
	}
	if tmpl.thresholds != nil {
		p.Thresholds = *tmpl.thresholds
	}
	if tmpl.rules.PlatformBoosts != nil || tmpl.rules.MarketSynergy != nil || tmpl.rules.StageMatrix != nil {
		p.Rules = tmpl.rules
	}
	return p, nil
}

// applyPersonaDefaults fills the unset fields of a profile from its
// persona template before validation. Explicit values always win;
// unknown personas are left untouched and fail validation on their own
// merits.
func applyPersonaDefaults(p *core.WeightProfile) {
	persona := strings.ToLower(strings.TrimSpace(p.Persona))
	tmpl, ok := personaTemplates[persona]
	if !ok {
		return
	}

	defaults := baseTemplate()
	for metric, weight := range tmpl.weights {
		defaults.Weights[metric] = weight
	}
	if tmpl.thresholds != nil {
		defaults.Thresholds = *tmpl.thresholds
	}

	if p.Weights == nil {
		p.Weights = make(map[string]float64, len(defaults.Weights))
	}
	for metric, weight := range defaults.Weights {
		if _, set := p.Weights[metric]; !set {
			p.Weights[metric] = weight
		}
	}
	if p.Thresholds == (core.Thresholds{}) {
		p.Thresholds = defaults.Thresholds
	} else if p.Thresholds.MaxResults == 0 {
		// Zero is never a valid result cap, so it always means unset.
		p.Thresholds.MaxResults = defaults.Thresholds.MaxResults
	}
	if p.Normalization == (core.Normalization{}) {
		p.Normalization = defaults.Normalization
	}
	if p.Rules.PlatformBoosts == nil && p.Rules.MarketSynergy == nil && p.Rules.StageMatrix == nil {
		p.Rules = tmpl.rules
	}
}

func defaultProfileID(persona string) string {
	return core.IDFromContent("default-profile/" + persona)
}
