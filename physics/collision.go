package physics

// Overlaps reports whether the bounding boxes of a and b intersect at their
// simulated positions. Absent objects never overlap
func Overlaps(a, b *Object) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return a.x < b.x+b.width &&
		b.x < a.x+a.width &&
		a.y < b.y+b.height &&
		b.y < a.y+a.height
}

// Landed reports a transition into ground contact between two snapshots
func Landed(before bool, o *Object) bool {
	return !before && o.onGround
}
