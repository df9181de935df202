package mission

import (
	"errors"
	"fmt"
	"strings"

	"homestead/internal/domain/farm"
)

var (
	ErrInvalidObjective = errors.New("invalid objective")
	ErrInvalidSnapshot  = errors.New("invalid mission snapshot")
)

type Kind string

const (
	KindHarvest Kind = "harvest"
	KindPlant   Kind = "plant"
	KindWater   Kind = "water"
)

func (k Kind) Valid() bool {
	switch k {
	case KindHarvest, KindPlant, KindWater:
		return true
	default:
		return false
	}
}

func kindFor(n farm.NotificationKind) (Kind, bool) {
	switch n {
	case farm.NotifyHarvested:
		return KindHarvest, true
	case farm.NotifyPlanted:
		return KindPlant, true
	case farm.NotifyWatered:
		return KindWater, true
	default:
		return "", false
	}
}

type Objective struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Kind          Kind   `json:"kind"`
	Species       string `json:"species,omitempty"`
	Required      int    `json:"required"`
	Current       int    `json:"current"`
	Completed     bool   `json:"completed"`
	RewardItem    string `json:"reward_item,omitempty"`
	RewardAmount  int    `json:"reward_amount,omitempty"`
	RewardClaimed bool   `json:"reward_claimed"`
}

// Relevant reports whether a notification of the objective's kind counts.
// An empty species filter only means "any" for water objectives.
func (o Objective) Relevant(species string) bool {
	if o.Species == "" {
		return o.Kind == KindWater
	}
	return strings.EqualFold(o.Species, species)
}

func (o Objective) Status() string {
	if o.Completed {
		return fmt.Sprintf("%s: completed", o.Name)
	}
	target := o.Species
	if target == "" {
		target = "any crop"
	}
	return fmt.Sprintf("%s: %s %s (%d/%d)", o.Name, o.Kind, target, o.Current, o.Required)
}

func (o Objective) validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidObjective)
	}
	if !o.Kind.Valid() {
		return fmt.Errorf("%w: %q has kind %q", ErrInvalidObjective, o.Name, o.Kind)
	}
	if o.Required < 1 {
		return fmt.Errorf("%w: %q requires %d", ErrInvalidObjective, o.Name, o.Required)
	}
	if o.RewardAmount < 0 {
		return fmt.Errorf("%w: %q has negative reward", ErrInvalidObjective, o.Name)
	}
	return nil
}
