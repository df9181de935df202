package farm

import (
	"testing"

	"homestead/internal/domain/world"
)

func TestSubscribe_RegistrationOrder(t *testing.T) {
	tr, _ := newTestTracker(t, map[string]int{"CarrotSeed": 1})
	var order []string
	tr.Subscribe(func(Notification) { order = append(order, "first") })
	tr.Subscribe(func(Notification) { order = append(order, "second") })

	p := world.Point{}
	_ = tr.Till(p)
	_ = tr.Plant(p, "carrot")

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestSubscribe_NotificationPayload(t *testing.T) {
	tr, _ := newTestTracker(t, map[string]int{"CarrotSeed": 1})
	var got []Notification
	tr.Subscribe(func(n Notification) { got = append(got, n) })

	p := world.Point{X: 2, Y: 3}
	_ = tr.Till(p)
	_ = tr.Plant(p, "carrot")
	_ = tr.Water(p)

	if len(got) != 2 {
		t.Fatalf("notifications got=%d want=2", len(got))
	}
	want := Notification{Kind: NotifyWatered, Species: "carrot", SeedItem: "CarrotSeed", HarvestItem: "Carrot", Pos: p}
	if got[1] != want {
		t.Fatalf("got=%+v want=%+v", got[1], want)
	}
}

func TestUnsubscribe_DuringDispatch(t *testing.T) {
	tr, _ := newTestTracker(t, map[string]int{"CarrotSeed": 2})
	var first, second int
	var subSecond Subscription
	tr.Subscribe(func(Notification) {
		first++
		tr.Unsubscribe(subSecond)
	})
	subSecond = tr.Subscribe(func(Notification) { second++ })

	a, b := world.Point{X: 0}, world.Point{X: 1}
	_ = tr.Till(a)
	_ = tr.Till(b)
	_ = tr.Plant(a, "carrot")
	_ = tr.Plant(b, "carrot")

	if first != 2 || second != 0 {
		t.Fatalf("first=%d second=%d, want 2 and 0", first, second)
	}
	if tr.Observers() != 1 {
		t.Fatalf("observers got=%d want=1", tr.Observers())
	}
}

func TestSubscribe_ReentrantAction(t *testing.T) {
	tr, _ := newTestTracker(t, map[string]int{"CarrotSeed": 1})
	p := world.Point{}
	var sub Subscription
	sub = tr.Subscribe(func(n Notification) {
		if n.Kind == NotifyPlanted {
			tr.Deposit("CarrotSeed", 2)
			tr.Unsubscribe(sub)
		}
	})
	_ = tr.Till(p)
	_ = tr.Plant(p, "carrot")
	if got := tr.Ledger().Count("CarrotSeed"); got != 2 {
		t.Fatalf("seeds got=%d want=2", got)
	}
	if tr.Unsubscribe(sub) {
		t.Fatalf("expected second unsubscribe to report false")
	}
}
