package core

// Completeness returns the filled fraction of an actor's
// scoring-relevant fields, in [0,1]. List fields count when non-empty;
// numeric fields count when set (zero means unset). Adding data never
// lowers the result.
func Completeness(a *Actor) float64 {
	checks := []bool{
		a.Name != "",
		a.Title != "",
		a.Description != "",
		a.Abstract != "" || a.Pitch != "",
		len(a.Platforms) > 0,
		len(a.Markets) > 0,
		len(a.Capabilities) > 0,
		len(a.Needs) > 0,
		len(a.Categories) > 0,
		a.Stage != "",
		a.Country != "",
		a.Website != "",
		a.Email != "",
		a.Rating != 0,
		a.Price != 0 || a.Cost != 0,
		a.TeamSize != 0,
		a.FoundedYear != 0,
		!a.ReleasedAt.IsZero(),
		len(a.Vector) > 0,
		attendeeComplete(a),
	}
	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return float64(filled) / float64(len(checks))
}

func attendeeComplete(a *Actor) bool {
	if a.Attendee == nil {
		return false
	}
	return a.Attendee.FullName != "" && len(a.Attendee.Interests) > 0
}
