package physics

import "github.com/lixenwraith/pigpen/constant"

// Roster owns a fixed set of object slots; a slot holding an absent object is free
type Roster struct {
	slots [constant.RosterSize]Object
}

// Spawn stores o in the first free slot
func (r *Roster) Spawn(o Object) (slot int, ok bool) {
	if !o.Valid() {
		return -1, false
	}
	for i := range r.slots {
		if !r.slots[i].Valid() {
			r.slots[i] = o
			return i, true
		}
	}
	return -1, false
}

// Free empties a slot
func (r *Roster) Free(slot int) {
	if slot < 0 || slot >= len(r.slots) {
		return
	}
	r.slots[slot] = Object{}
}

// At returns the object in slot, nil when out of range
func (r *Roster) At(slot int) *Object {
	if slot < 0 || slot >= len(r.slots) {
		return nil
	}
	return &r.slots[slot]
}

// Each calls fn for every occupied slot in slot order
func (r *Roster) Each(fn func(slot int, o *Object)) {
	for i := range r.slots {
		if r.slots[i].Valid() {
			fn(i, &r.slots[i])
		}
	}
}

// Update steps every occupied slot once
func (r *Roster) Update(rules *Rules) {
	for i := range r.slots {
		r.slots[i].Update(rules)
	}
}

// Len counts occupied slots
func (r *Roster) Len() int {
	n := 0
	for i := range r.slots {
		if r.slots[i].Valid() {
			n++
		}
	}
	return n
}

// Cap returns the number of slots
func (r *Roster) Cap() int {
	return len(r.slots)
}
