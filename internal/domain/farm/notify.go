package farm

import (
	"time"

	"homestead/internal/domain/world"
)

type NotificationKind string

const (
	NotifyPlanted   NotificationKind = "planted"
	NotifyWatered   NotificationKind = "watered"
	NotifyHarvested NotificationKind = "harvested"
	NotifyWithered  NotificationKind = "withered"
)

type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Species     string           `json:"species"`
	SeedItem    string           `json:"seed_item"`
	HarvestItem string           `json:"harvest_item"`
	Pos         world.Point      `json:"pos"`
	// TickOffset is how far into the current Tick the change happened; zero
	// for notifications raised by player actions.
	TickOffset time.Duration `json:"tick_offset,omitempty"`
}

type Observer func(Notification)

type Subscription struct {
	id uint64
}

type observerEntry struct {
	id uint64
	fn Observer
}

// Subscribe registers fn; observers run synchronously in registration order.
func (t *Tracker) Subscribe(fn Observer) Subscription {
	if fn == nil {
		return Subscription{}
	}
	t.nextSubID++
	t.observers = append(t.observers, observerEntry{id: t.nextSubID, fn: fn})
	return Subscription{id: t.nextSubID}
}

func (t *Tracker) Unsubscribe(sub Subscription) bool {
	for i, o := range t.observers {
		if o.id == sub.id {
			t.observers = append(t.observers[:i:i], t.observers[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Tracker) Observers() int {
	return len(t.observers)
}

func (t *Tracker) subscribed(id uint64) bool {
	for _, o := range t.observers {
		if o.id == id {
			return true
		}
	}
	return false
}

func (t *Tracker) emit(kind NotificationKind, pos world.Point, crop *Crop) {
	t.emitAt(kind, pos, crop, 0)
}

func (t *Tracker) emitAt(kind NotificationKind, pos world.Point, crop *Crop, offset time.Duration) {
	n := Notification{
		Kind:        kind,
		Species:     crop.Species,
		SeedItem:    crop.SeedItem,
		HarvestItem: crop.HarvestItem,
		Pos:         pos,
		TickOffset:  offset,
	}
	snapshot := append([]observerEntry(nil), t.observers...)
	for _, o := range snapshot {
		if !t.subscribed(o.id) {
			continue
		}
		o.fn(n)
	}
}
