package replay

import "homestead/internal/app/ports"

type Request struct {
	FarmID       string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events  []ports.EventRecord `json:"events"`
	Summary Summary             `json:"summary"`
}

// Summary tallies what the returned events did.
type Summary struct {
	Tilled     int            `json:"tilled"`
	Planted    map[string]int `json:"planted"`
	Harvested  map[string]int `json:"harvested"`
	Withered   map[string]int `json:"withered"`
	Objectives []string       `json:"objectives_completed"`
	Rewards    map[string]int `json:"rewards"`
}
