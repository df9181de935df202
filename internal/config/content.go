package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"homestead/internal/domain/farm"
	"homestead/internal/domain/homestead"
	"homestead/internal/domain/mission"
	"homestead/internal/domain/world"
)

//go:embed default_content.yaml
var defaultContentYAML []byte

var ErrInvalidContent = errors.New("invalid content")

type SpeciesConfig struct {
	Name        string        `yaml:"name" validate:"required"`
	SeedItem    string        `yaml:"seed_item" validate:"required"`
	HarvestItem string        `yaml:"harvest_item" validate:"required"`
	Growth      time.Duration `yaml:"growth" validate:"gt=0"`
	Stages      int           `yaml:"stages" validate:"gte=1,lte=16"`
	Wither      time.Duration `yaml:"wither" validate:"gte=0"`
}

type MissionConfig struct {
	Name         string `yaml:"name" validate:"required"`
	Description  string `yaml:"description"`
	Kind         string `yaml:"kind" validate:"oneof=harvest plant water"`
	Species      string `yaml:"species" validate:"required_unless=Kind water"`
	Required     int    `yaml:"required" validate:"gte=1"`
	RewardItem   string `yaml:"reward_item" validate:"required_with=RewardAmount"`
	RewardAmount int    `yaml:"reward_amount" validate:"gte=0"`
}

// Content is the YAML catalog: species, starting inventory, the mission
// pool and tuning.
type Content struct {
	Field         world.Bounds    `yaml:"field"`
	WaterInterval time.Duration   `yaml:"water_interval" validate:"gte=0"`
	MaxActive     int             `yaml:"max_active_missions" validate:"gte=1,lte=10"`
	Species       []SpeciesConfig `yaml:"species" validate:"required,min=1,dive"`
	Inventory     map[string]int  `yaml:"inventory" validate:"dive,keys,required,endkeys,gte=0"`
	Missions      []MissionConfig `yaml:"missions" validate:"dive"`
}

func DefaultContent() (*Content, error) {
	return ParseContent(defaultContentYAML, "default content")
}

func LoadContent(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file %s: %w", path, err)
	}
	return ParseContent(data, path)
}

func ParseContent(data []byte, source string) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content YAML from %s: %w", source, err)
	}
	if err := validateContent(&c); err != nil {
		return nil, fmt.Errorf("%w in %s: %v", ErrInvalidContent, source, err)
	}
	return &c, nil
}

func validateContent(c *Content) error {
	if err := validator.New().Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Field.Empty() {
		return fmt.Errorf("field %v-%v is empty", c.Field.Min, c.Field.Max)
	}
	known := make(map[string]bool, len(c.Species))
	for _, s := range c.Species {
		known[strings.ToLower(s.Name)] = true
	}
	for _, m := range c.Missions {
		if m.Species != "" && !known[strings.ToLower(m.Species)] {
			return fmt.Errorf("mission %q targets unknown species %q", m.Name, m.Species)
		}
	}
	return nil
}

func formatValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		field := strings.TrimPrefix(e.Namespace(), "Content.")
		switch e.Tag() {
		case "required", "required_with", "required_unless":
			parts = append(parts, field+" is required")
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", field, e.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s fails %s=%s", field, e.Tag(), e.Param()))
		}
	}
	return errors.New(strings.Join(parts, "; "))
}

func (c *Content) Catalog() (farm.Catalog, error) {
	species := make([]farm.Species, 0, len(c.Species))
	for _, s := range c.Species {
		species = append(species, farm.Species{
			Name:           s.Name,
			SeedItem:       s.SeedItem,
			HarvestItem:    s.HarvestItem,
			GrowthDuration: s.Growth,
			StageCount:     s.Stages,
			WitherDuration: s.Wither,
		})
	}
	return farm.NewCatalog(species...)
}

func (c *Content) Objectives() []mission.Objective {
	out := make([]mission.Objective, 0, len(c.Missions))
	for _, m := range c.Missions {
		out = append(out, mission.Objective{
			Name:         m.Name,
			Description:  m.Description,
			Kind:         mission.Kind(m.Kind),
			Species:      m.Species,
			Required:     m.Required,
			RewardItem:   m.RewardItem,
			RewardAmount: m.RewardAmount,
		})
	}
	return out
}

// Options builds game options; the seed is chosen per farm.
func (c *Content) Options(logger *slog.Logger) (homestead.Options, error) {
	catalog, err := c.Catalog()
	if err != nil {
		return homestead.Options{}, err
	}
	return homestead.Options{
		Catalog:       catalog,
		Field:         c.Field,
		WaterInterval: c.WaterInterval,
		Inventory:     c.Inventory,
		Missions:      c.Objectives(),
		MaxActive:     c.MaxActive,
		Logger:        logger,
	}, nil
}
