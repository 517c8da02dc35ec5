// Package spotlight resolves the creator spotlight record
//
// Resolution walks an ordered chain of strategies and the first record wins
// The static fallback always closes the chain, so Resolve only fails when the
// caller gives up
package spotlight

// Record is the resolved spotlight, always fully populated
type Record struct {
	Quote   string `json:"quote" example:"Open budgets turn every voter into an auditor."`
	Creator string `json:"creator" example:"Digital Diwan Outreach Team"`
	Handle  string `json:"handle" example:"@digitaldiwan"`
}

// Shape is the wire shape a producer answers with
type Shape int

const (
	// ThreeField is {quote, creator, handle}
	ThreeField Shape = iota
	// TwoField is {quote, handle}; creator is optional and defaults to ""
	TwoField
)

func (s Shape) String() string {
	switch s {
	case ThreeField:
		return "three-field"
	case TwoField:
		return "two-field"
	default:
		return "unknown"
	}
}

// DefaultTopic is used when the caller sends none
const DefaultTopic = "digital civic innovation"

// Fallback is the known good record served whenever the upstream cannot be used
func Fallback() Record {
	return Record{
		Quote:   "Community-driven policy debates, AI-assisted briefs, and transparent funding dashboards keep voters engaged every step of the way.",
		Creator: "Digital Diwan Outreach Team",
		Handle:  "@digitaldiwan",
	}
}
