// Package candidates filters and pages the immutable candidate directory
package candidates

// Gender values accepted in the catalog and in filters
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Candidate is one entry in the directory
type Candidate struct {
	ID           string   `json:"id" yaml:"id" validate:"required,slug" example:"cand-002"`
	Name         string   `json:"name" yaml:"name" validate:"required,max=120" example:"Hassan al-Tamimi"`
	Party        string   `json:"party" yaml:"party" validate:"required,max=120" example:"Basra Renewal Bloc"`
	Governorate  string   `json:"governorate" yaml:"governorate" validate:"required,slug" example:"basra"`
	Gender       string   `json:"gender" yaml:"gender" validate:"required,oneof=male female" example:"male"`
	Biography    string   `json:"biography" yaml:"biography" validate:"required"`
	Priorities   []string `json:"priorities" yaml:"priorities" validate:"dive,required"`
	Incumbent    bool     `json:"incumbent" yaml:"incumbent" example:"true"`
	BallotNumber int      `json:"ballot_number" yaml:"ballot_number" validate:"gte=1" example:"112"`
}

// Criteria narrows a query; zero values mean no constraint
type Criteria struct {
	Search      string
	Governorate string
	Party       string
	Gender      string
	Incumbent   *bool
}

// Page selects a window of the filtered list; Number is 1 based
type Page struct {
	Number int
	Size   int
}

// Result is one page of matches plus totals over the whole filtered set
type Result struct {
	Items         []Candidate `json:"items"`
	TotalMatching int         `json:"total_matching"`
	TotalPages    int         `json:"total_pages"`
}

// Breakdown counts the full directory along the dashboard dimensions
type Breakdown struct {
	Total         int            `json:"total" example:"8"`
	Incumbents    int            `json:"incumbents" example:"3"`
	Challengers   int            `json:"challengers" example:"5"`
	ByGovernorate map[string]int `json:"by_governorate"`
	ByGender      map[string]int `json:"by_gender"`
	ByParty       map[string]int `json:"by_party"`
}
