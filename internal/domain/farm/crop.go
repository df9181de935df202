package farm

import "time"

type Crop struct {
	Species      string        `json:"species"`
	SeedItem     string        `json:"seed_item"`
	HarvestItem  string        `json:"harvest_item"`
	Growth       time.Duration `json:"growth"`
	Duration     time.Duration `json:"duration"`
	StageCount   int           `json:"stage_count"`
	WitherAfter  time.Duration `json:"wither_after"`
	Watered      bool          `json:"watered"`
	SinceWatered time.Duration `json:"since_watered"`
	Ready        bool          `json:"ready"`
	Withered     bool          `json:"withered"`
	SinceReady   time.Duration `json:"since_ready"`
}

func newCrop(s Species) *Crop {
	return &Crop{
		Species:     s.Name,
		SeedItem:    s.SeedItem,
		HarvestItem: s.HarvestItem,
		Duration:    s.GrowthDuration,
		StageCount:  s.StageCount,
		WitherAfter: s.WitherDuration,
	}
}

func (c *Crop) Growing() bool {
	return !c.Ready && !c.Withered
}

func (c *Crop) Stage() int {
	if c.StageCount <= 1 || c.Duration <= 0 {
		return 0
	}
	stage := int(float64(c.Growth) / float64(c.Duration) * float64(c.StageCount))
	if stage < 0 {
		return 0
	}
	return min(stage, c.StageCount-1)
}

// cropTransition reports what happened during one advance; witheredAt is
// how far into that dt the crop withered.
type cropTransition struct {
	ready      bool
	withered   bool
	witheredAt time.Duration
}

// advance moves the crop forward by dt. Growth only accrues while watered;
// a watering lasts waterFor (zero means it never dries out). Time left over
// after ripening counts toward withering so split and whole ticks agree.
func (c *Crop) advance(dt, waterFor time.Duration) cropTransition {
	var tr cropTransition
	if dt <= 0 || c.Withered {
		return tr
	}
	var spent time.Duration
	if !c.Ready {
		if !c.Watered {
			return tr
		}
		wet := dt
		if waterFor > 0 {
			wet = min(dt, max(waterFor-c.SinceWatered, 0))
		}
		c.SinceWatered += dt
		if waterFor > 0 && c.SinceWatered >= waterFor {
			c.Watered = false
		}
		need := c.Duration - c.Growth
		if wet < need {
			c.Growth += wet
			return tr
		}
		c.Growth = c.Duration
		c.Ready = true
		c.Watered = false
		c.SinceWatered = 0
		tr.ready = true
		spent = need
		dt -= need
	}
	before := c.SinceReady
	c.SinceReady += dt
	if c.WitherAfter > 0 && c.SinceReady >= c.WitherAfter {
		c.Ready = false
		c.Withered = true
		tr.withered = true
		tr.witheredAt = spent + max(c.WitherAfter-before, 0)
	}
	return tr
}
