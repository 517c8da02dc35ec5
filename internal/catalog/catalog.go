// Package catalog loads the static civic datasets embedded in the binary
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"diwan/internal/core/candidates"
	perr "diwan/internal/platform/errors"
	"diwan/internal/platform/net/http/bind"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// Governorate is one of the electoral regions
type Governorate struct {
	Slug        string `json:"slug" yaml:"slug" validate:"required,slug" example:"basra"`
	Name        string `json:"name" yaml:"name" validate:"required" example:"Basra"`
	Population  int64  `json:"population" yaml:"population" validate:"gt=0" example:"3200000"`
	Seats       int    `json:"seats" yaml:"seats" validate:"gt=0" example:"25"`
	Description string `json:"description" yaml:"description" validate:"required"`
}

// Statistic is a headline number on the dashboard
type Statistic struct {
	Label   string `json:"label" yaml:"label" validate:"required" example:"Registered Voters"`
	Value   string `json:"value" yaml:"value" validate:"required" example:"26.4M"`
	Caption string `json:"caption" yaml:"caption" example:"Latest IEC roll updated October 2025"`
}

// TurnoutPoint is turnout for one election cycle
type TurnoutPoint struct {
	Cycle     string  `json:"cycle" yaml:"cycle" validate:"required" example:"2021"`
	Turnout   float64 `json:"turnout" yaml:"turnout" validate:"gte=0,lte=100" example:"41"`
	Projected bool    `json:"projected" yaml:"projected"`
}

// Highlight is a policy note shown under the statistics
type Highlight struct {
	Title       string `json:"title" yaml:"title" validate:"required" example:"Transparency"`
	Description string `json:"description" yaml:"description" validate:"required"`
}

// SeedPost primes the community feed
type SeedPost struct {
	AuthorName   string        `yaml:"author_name" validate:"required"`
	AuthorHandle string        `yaml:"author_handle" validate:"required,handle"`
	AvatarColor  string        `yaml:"avatar_color" validate:"required,alpha"`
	Age          time.Duration `yaml:"age" validate:"gte=0"`
	Likes        int           `yaml:"likes" validate:"gte=0"`
	Comments     int           `yaml:"comments" validate:"gte=0"`
	Content      string        `yaml:"content" validate:"required,max=500"`
}

type document struct {
	ElectionDate time.Time              `yaml:"election_date" validate:"required"`
	Governorates []Governorate          `yaml:"governorates" validate:"required,min=1,dive"`
	Candidates   []candidates.Candidate `yaml:"candidates" validate:"required,min=1,dive"`
	Statistics   []Statistic            `yaml:"statistics" validate:"dive"`
	Turnout      []TurnoutPoint         `yaml:"turnout" validate:"dive"`
	Highlights   []Highlight            `yaml:"highlights" validate:"dive"`
	SeedPosts    []SeedPost             `yaml:"seed_posts" validate:"dive"`
}

// Catalog is the validated, read only dataset
// accessors return copies so callers cannot mutate shared state
type Catalog struct {
	doc    document
	govIdx map[string]int
}

// Load decodes and validates the embedded catalog
func Load() (*Catalog, error) { return Parse(embedded) }

// MustLoad is Load for process start; a broken embedded catalog is a programmer error
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Parse decodes and validates a catalog document
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "catalog decode")
	}

	if field, msg := bind.Check(doc); msg != "" {
		return nil, perr.WithField(perr.Validationf("catalog: %s", msg), field)
	}

	c := &Catalog{doc: doc, govIdx: make(map[string]int, len(doc.Governorates))}
	for i, g := range doc.Governorates {
		if _, dup := c.govIdx[g.Slug]; dup {
			return nil, perr.Validationf("catalog: duplicate governorate %q", g.Slug)
		}
		c.govIdx[g.Slug] = i
	}

	seen := make(map[string]struct{}, len(doc.Candidates))
	for _, cand := range doc.Candidates {
		if _, dup := seen[cand.ID]; dup {
			return nil, perr.Validationf("catalog: duplicate candidate id %q", cand.ID)
		}
		seen[cand.ID] = struct{}{}
		if _, ok := c.govIdx[cand.Governorate]; !ok {
			return nil, perr.Validationf("catalog: candidate %q has unknown governorate %q", cand.ID, cand.Governorate)
		}
	}
	return c, nil
}

// Candidates returns the directory in catalog order
func (c *Catalog) Candidates() []candidates.Candidate {
	out := make([]candidates.Candidate, len(c.doc.Candidates))
	for i, cand := range c.doc.Candidates {
		cand.Priorities = append([]string(nil), cand.Priorities...)
		out[i] = cand
	}
	return out
}

// Governorates returns the regions in catalog order
func (c *Catalog) Governorates() []Governorate { return append([]Governorate(nil), c.doc.Governorates...) }

// Governorate looks a region up by slug
func (c *Catalog) Governorate(slug string) (Governorate, bool) {
	i, ok := c.govIdx[slug]
	if !ok {
		return Governorate{}, false
	}
	return c.doc.Governorates[i], true
}

// Statistics returns the national headline numbers
func (c *Catalog) Statistics() []Statistic { return append([]Statistic(nil), c.doc.Statistics...) }

// Turnout returns turnout by cycle, oldest first
func (c *Catalog) Turnout() []TurnoutPoint { return append([]TurnoutPoint(nil), c.doc.Turnout...) }

// Highlights returns the policy notes
func (c *Catalog) Highlights() []Highlight { return append([]Highlight(nil), c.doc.Highlights...) }

// ElectionDate is the polling day in UTC
func (c *Catalog) ElectionDate() time.Time { return c.doc.ElectionDate.UTC() }

// SeedPosts returns the posts used to prime an empty community feed
func (c *Catalog) SeedPosts() []SeedPost { return append([]SeedPost(nil), c.doc.SeedPosts...) }
