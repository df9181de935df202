package farm

import "maps"

// Ledger is the inventory: item name to non-negative count.
type Ledger struct {
	items map[string]int
}

func NewLedger(initial map[string]int) *Ledger {
	l := &Ledger{items: make(map[string]int, len(initial))}
	for item, qty := range initial {
		if item == "" || qty < 0 {
			continue
		}
		l.items[item] = qty
	}
	return l
}

func (l *Ledger) Count(item string) int {
	return l.items[item]
}

func (l *Ledger) Add(item string, amount int) {
	if amount <= 0 || item == "" {
		return
	}
	l.items[item] += amount
}

func (l *Ledger) Consume(item string, amount int) bool {
	if amount <= 0 || item == "" {
		return false
	}
	current := l.items[item]
	if current < amount {
		return false
	}
	l.items[item] = current - amount
	return true
}

func (l *Ledger) Items() map[string]int {
	return maps.Clone(l.items)
}
