package candidates

import (
	"sort"
	"strings"

	"diwan/internal/core/normalize"
)

// DefaultPageSize applies when a page size is missing or not positive
const DefaultPageSize = 10

// Engine answers queries over a snapshot taken at construction
// it never mutates after New and is safe for concurrent use
type Engine struct {
	items   []Candidate
	folded  []string
	byID    map[string]int
	parties []string
	govs    []string
}

// New snapshots list in its given order
func New(list []Candidate) *Engine {
	e := &Engine{
		items:  make([]Candidate, len(list)),
		folded: make([]string, len(list)),
		byID:   make(map[string]int, len(list)),
	}
	for i, c := range list {
		e.items[i] = c.clone()
	}

	parties := map[string]struct{}{}
	govs := map[string]struct{}{}
	for i, c := range e.items {
		e.folded[i] = normalize.Fold(c.Name + " " + c.Party + " " + c.Biography)
		e.byID[c.ID] = i
		parties[c.Party] = struct{}{}
		govs[c.Governorate] = struct{}{}
	}
	e.parties = sortedKeys(parties)
	e.govs = sortedKeys(govs)
	return e
}

// Len is the size of the full collection
func (e *Engine) Len() int { return len(e.items) }

// Query applies every active constraint in c, then cuts page p out of the matches
// a page past the end yields no items and no error
func (e *Engine) Query(c Criteria, p Page) Result {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	needle := normalize.Fold(strings.TrimSpace(c.Search))

	matched := make([]Candidate, 0, len(e.items))
	for i, cand := range e.items {
		if needle != "" && !strings.Contains(e.folded[i], needle) {
			continue
		}
		if c.Governorate != "" && cand.Governorate != c.Governorate {
			continue
		}
		if c.Party != "" && cand.Party != c.Party {
			continue
		}
		if c.Gender != "" && cand.Gender != c.Gender {
			continue
		}
		if c.Incumbent != nil && cand.Incumbent != *c.Incumbent {
			continue
		}
		matched = append(matched, cand)
	}

	res := Result{
		Items:         []Candidate{},
		TotalMatching: len(matched),
		TotalPages:    TotalPages(len(matched), p.Size),
	}
	// compare pages before multiplying so a huge page number cannot wrap
	if len(matched) == 0 || p.Number < 1 || p.Number > res.TotalPages {
		return res
	}
	start := (p.Number - 1) * p.Size
	end := min(start+p.Size, len(matched))
	res.Items = cloneAll(matched[start:end])
	return res
}

// TotalPages is ceil(total/size) with a floor of 1
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}

// ByID looks up a candidate by its stable id
func (e *Engine) ByID(id string) (Candidate, bool) {
	i, ok := e.byID[id]
	if !ok {
		return Candidate{}, false
	}
	return e.items[i].clone(), true
}

// Parties lists distinct party names, sorted
func (e *Engine) Parties() []string { return append([]string(nil), e.parties...) }

// Governorates lists distinct governorate slugs present in the collection, sorted
func (e *Engine) Governorates() []string { return append([]string(nil), e.govs...) }

// InGovernorate returns every candidate for slug in collection order
func (e *Engine) InGovernorate(slug string) []Candidate {
	out := []Candidate{}
	for _, c := range e.items {
		if c.Governorate == slug {
			out = append(out, c.clone())
		}
	}
	return out
}

// Breakdown tallies the full collection
func (e *Engine) Breakdown() Breakdown {
	b := Breakdown{
		Total:         len(e.items),
		ByGovernorate: map[string]int{},
		ByGender:      map[string]int{},
		ByParty:       map[string]int{},
	}
	for _, c := range e.items {
		b.ByGovernorate[c.Governorate]++
		b.ByGender[c.Gender]++
		b.ByParty[c.Party]++
		if c.Incumbent {
			b.Incumbents++
		}
	}
	b.Challengers = b.Total - b.Incumbents
	return b
}

// clone detaches Priorities so callers cannot write into the snapshot
func (c Candidate) clone() Candidate {
	c.Priorities = append([]string(nil), c.Priorities...)
	return c
}

func cloneAll(cs []Candidate) []Candidate {
	out := make([]Candidate, len(cs))
	for i, c := range cs {
		out[i] = c.clone()
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
