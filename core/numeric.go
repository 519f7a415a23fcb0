package core

// NumericField enumerates the known numeric actor fields. A typed registry
// avoids silent string-key typos in corpus statistics and metric lookups.
type NumericField int

const (
	NumericRating NumericField = iota
	NumericPrice
	NumericCost
	NumericTeamSize
	NumericFoundedYear
)

// NumericFields lists every registered numeric field.
var NumericFields = []NumericField{
	NumericRating,
	NumericPrice,
	NumericCost,
	NumericTeamSize,
	NumericFoundedYear,
}

// Key returns the stable metric key for the field.
func (f NumericField) Key() string {
	switch f {
	case NumericRating:
		return "rating"
	case NumericPrice:
		return "price"
	case NumericCost:
		return "cost"
	case NumericTeamSize:
		return "team_size"
	case NumericFoundedYear:
		return "founded_year"
	default:
		return "unknown"
	}
}

// Value returns the field's value on the actor and whether it is set.
// Zero values are treated as unset.
func (f NumericField) Value(a *Actor) (float64, bool) {
	switch f {
	case NumericRating:
		return a.Rating, a.Rating != 0
	case NumericPrice:
		return a.Price, a.Price != 0
	case NumericCost:
		return a.Cost, a.Cost != 0
	case NumericTeamSize:
		return float64(a.TeamSize), a.TeamSize != 0
	case NumericFoundedYear:
		return float64(a.FoundedYear), a.FoundedYear != 0
	default:
		return 0, false
	}
}
