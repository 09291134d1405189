package engine

import (
	"sort"
	"strings"
)

// Pending returns every package still waiting at the desk, newest first.
func (e *Engine) Pending() ([]Package, error) {
	items, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	var pending []Package
	for _, p := range items {
		if p.Status == StatusPending {
			pending = append(pending, p)
		}
	}
	return pending, nil
}

// History returns picked-up packages logged within the trailing calendar
// month, optionally narrowed by a room/tracking substring search. The window
// subtracts one calendar month from now, with Go's own day-of-month rollover
// at short month boundaries.
func (e *Engine) History(searchTerm string) ([]Package, error) {
	items, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	cutoff := e.now().AddDate(0, -1, 0)
	var history []Package
	for _, p := range items {
		if p.Status != StatusPickedUp {
			continue
		}
		if !p.CreatedAt.After(cutoff) {
			continue
		}
		if !matchesTerm(p, searchTerm) {
			continue
		}
		history = append(history, p)
	}
	return history, nil
}

func matchesTerm(p Package, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Room), term) ||
		strings.Contains(strings.ToLower(p.Tracking), term)
}

// GroupPending partitions the pending set into (building, room) buckets.
// An empty building is a valid, distinct key. Buckets sort by building, then
// room case-insensitively; within a bucket the canonical newest-first order
// is preserved.
func (e *Engine) GroupPending(searchBuilding, searchTerm string) ([]Group, error) {
	pending, err := e.Pending()
	if err != nil {
		return nil, err
	}

	type key struct {
		building string
		room     string
	}
	buckets := make(map[key][]Package)
	var order []key
	for _, p := range pending {
		if searchBuilding != AllBuildings && p.Building != searchBuilding {
			continue
		}
		if !matchesTerm(p, searchTerm) {
			continue
		}
		k := key{building: p.Building, room: p.Room}
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], p)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].building != order[j].building {
			return order[i].building < order[j].building
		}
		return strings.ToLower(order[i].room) < strings.ToLower(order[j].room)
	})

	groups := make([]Group, 0, len(order))
	for _, k := range order {
		groups = append(groups, Group{Building: k.building, Room: k.room, Packages: buckets[k]})
	}
	return groups, nil
}

// PackagesInGroup returns the pending packages of one exact (building, room)
// bucket, as selected from the grouped list.
func (e *Engine) PackagesInGroup(building, room string) ([]Package, error) {
	pending, err := e.Pending()
	if err != nil {
		return nil, err
	}
	var out []Package
	for _, p := range pending {
		if p.Building == building && p.Room == room {
			out = append(out, p)
		}
	}
	return out, nil
}

// FindByBuildingAndRoom is the student lookup: exact building match, room
// compared case-insensitively after trimming whitespace. This is an exact
// query, not the substring search the admin list uses.
func (e *Engine) FindByBuildingAndRoom(building, room string) ([]Package, error) {
	pending, err := e.Pending()
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(strings.TrimSpace(room))
	var out []Package
	for _, p := range pending {
		if p.Building == building && strings.ToLower(p.Room) == want {
			out = append(out, p)
		}
	}
	return out, nil
}
