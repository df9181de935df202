package farm

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidCatalog = errors.New("invalid species catalog")

type Species struct {
	Name           string        `json:"name"`
	SeedItem       string        `json:"seed_item"`
	HarvestItem    string        `json:"harvest_item"`
	GrowthDuration time.Duration `json:"growth_duration"`
	StageCount     int           `json:"stage_count"`
	WitherDuration time.Duration `json:"wither_duration"`
}

// Catalog keeps species in declaration order; Interact plants the first one
// the ledger has seeds for.
type Catalog struct {
	species []Species
	index   map[string]int
}

func NewCatalog(species ...Species) (Catalog, error) {
	c := Catalog{
		species: make([]Species, 0, len(species)),
		index:   make(map[string]int, len(species)*2),
	}
	for _, s := range species {
		s.Name = strings.TrimSpace(s.Name)
		s.SeedItem = strings.TrimSpace(s.SeedItem)
		s.HarvestItem = strings.TrimSpace(s.HarvestItem)
		if s.Name == "" || s.SeedItem == "" || s.HarvestItem == "" || s.GrowthDuration <= 0 {
			return Catalog{}, fmt.Errorf("%w: species %q", ErrInvalidCatalog, s.Name)
		}
		if s.StageCount < 1 {
			s.StageCount = 1
		}
		if s.WitherDuration < 0 {
			s.WitherDuration = 0
		}
		if _, dup := c.index[s.Name]; dup {
			return Catalog{}, fmt.Errorf("%w: duplicate species %q", ErrInvalidCatalog, s.Name)
		}
		if _, dup := c.index[s.SeedItem]; dup {
			return Catalog{}, fmt.Errorf("%w: duplicate seed item %q", ErrInvalidCatalog, s.SeedItem)
		}
		c.index[s.Name] = len(c.species)
		c.index[s.SeedItem] = len(c.species)
		c.species = append(c.species, s)
	}
	return c, nil
}

func MustCatalog(species ...Species) Catalog {
	c, err := NewCatalog(species...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup accepts either a species name or its seed item name.
func (c Catalog) Lookup(name string) (Species, bool) {
	i, ok := c.index[strings.TrimSpace(name)]
	if !ok {
		return Species{}, false
	}
	return c.species[i], true
}

func (c Catalog) All() []Species {
	out := make([]Species, len(c.species))
	copy(out, c.species)
	return out
}

func (c Catalog) Len() int {
	return len(c.species)
}
