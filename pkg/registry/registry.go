// Package registry holds the applicant pathways a new user can choose from.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"academy-assistant/internal/common/keyword"
	"academy-assistant/internal/intake"
)

var ErrUnknownPathway = errors.New("UNKNOWN_PATHWAY")

func LoadRegistry(path string) (*PathwayRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg PathwayRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse pathway registry %s: %w", path, err)
	}
	return &reg, nil
}

// DefaultRegistry is the built-in player and coach pathway list.
func DefaultRegistry() *PathwayRegistry {
	return &PathwayRegistry{
		Version: "1.0.0",
		Pathways: []PathwayDefinition{
			{
				ID:          "player",
				DisplayName: "Player Development",
				Description: "Recruitment evaluation for aspiring players",
				Keywords:    []string{"player", "footballer", "aspiring player", "play", "join as player", "player development"},
				UserType:    "new_player",
				Indicator:   "🔍 Player Recruitment Active.",
			},
			{
				ID:          "coach",
				DisplayName: "Coaching Development",
				Description: "Recruitment evaluation for head and senior coaches",
				Keywords:    []string{"coach", "coaching", "future coach", "manage", "mentor", "join as coach", "coaching development"},
				UserType:    "new_coach",
				Indicator:   "👔 Coach Recruitment Active.",
			},
		},
	}
}

// Pathway is a definition bound to its intake schema.
type Pathway struct {
	Definition PathwayDefinition
	Schema     *intake.Schema
	keywords   *keyword.Set
}

func (p *Pathway) ID() string { return p.Definition.ID }

type Registry struct {
	pathways []*Pathway
	byID     map[string]*Pathway
}

// New binds every definition to the schema registered under its ID. Definitions are
// matched in order.
func New(defs *PathwayRegistry, schemas map[string]*intake.Schema) (*Registry, error) {
	if defs == nil || len(defs.Pathways) == 0 {
		return nil, errors.New("pathway registry is empty")
	}

	r := &Registry{byID: make(map[string]*Pathway, len(defs.Pathways))}
	for _, def := range defs.Pathways {
		schema, ok := schemas[def.ID]
		if !ok {
			return nil, fmt.Errorf("%w: no schema bound for %q", ErrUnknownPathway, def.ID)
		}
		if err := schema.Validate(); err != nil {
			return nil, fmt.Errorf("pathway %q: %w", def.ID, err)
		}
		if len(def.Keywords) == 0 {
			return nil, fmt.Errorf("pathway %q has no keywords", def.ID)
		}
		if _, dup := r.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate pathway %q", def.ID)
		}

		p := &Pathway{Definition: def, Schema: schema, keywords: keyword.NewSet(def.Keywords...)}
		r.pathways = append(r.pathways, p)
		r.byID[def.ID] = p
	}
	return r, nil
}

// Match returns the first pathway whose keywords appear in text.
func (r *Registry) Match(text string) (*Pathway, bool) {
	for _, p := range r.pathways {
		if p.keywords.Match(text) {
			return p, true
		}
	}
	return nil, false
}

func (r *Registry) Get(id string) (*Pathway, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// BySchema finds the pathway bound to the named schema.
func (r *Registry) BySchema(name string) (*Pathway, bool) {
	for _, p := range r.pathways {
		if p.Schema.Name == name {
			return p, true
		}
	}
	return nil, false
}

func (r *Registry) Pathways() []*Pathway {
	out := make([]*Pathway, len(r.pathways))
	copy(out, r.pathways)
	return out
}
