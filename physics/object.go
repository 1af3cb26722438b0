package physics

// ObjectType is the closed set of entity kinds; TypeNone marks an empty slot
type ObjectType uint8

const (
	TypeNone ObjectType = iota
	TypePlayer
	TypeKing
	TypeMinion
)

func (t ObjectType) String() string {
	names := [...]string{"none", "player", "king", "minion"}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// Object is a kinematic body stepped at a fixed rate
// The zero value is an absent object
type Object struct {
	typ      ObjectType
	x, y     float32
	width    float32
	height   float32
	vx, vy   float32
	onGround bool
}

// NewObject creates an object at (x, y); size and velocity start at zero
func NewObject(t ObjectType, x, y float32) Object {
	return Object{typ: t, x: x, y: y}
}

// Valid reports whether the object occupies its slot
func (o *Object) Valid() bool { return o.typ != TypeNone }

// SetSize sets the bounding box, independent of construction
func (o *Object) SetSize(width, height float32) {
	o.width = width
	o.height = height
}

// Update advances one fixed step under r, nil selects DefaultRules
// Absent objects are left untouched
func (o *Object) Update(r *Rules) {
	if o.typ == TypeNone {
		return
	}
	if r == nil {
		r = &DefaultRules
	}

	o.vy += r.Gravity
	if r.MaxFallSpeed > 0 && o.vy > r.MaxFallSpeed {
		o.vy = r.MaxFallSpeed
	}

	o.x += o.vx
	o.y += o.vy

	o.onGround = false
	if r.Ground > 0 && o.y+o.height >= r.Ground {
		o.y = r.Ground - o.height
		o.vy = 0
		o.onGround = true
	}

	if r.Width > 0 {
		if o.x < 0 {
			o.x = 0
			o.vx = 0
		} else if o.x+o.width > r.Width {
			o.x = r.Width - o.width
			o.vx = 0
		}
	}
}

// ApplyForce adds an instantaneous velocity delta, unclamped
func (o *Object) ApplyForce(fx, fy float32) {
	o.vx += fx
	o.vy += fy
}

func (o *Object) Type() ObjectType   { return o.typ }
func (o *Object) X() float32         { return o.x }
func (o *Object) Y() float32         { return o.y }
func (o *Object) Width() float32     { return o.width }
func (o *Object) Height() float32    { return o.height }
func (o *Object) VelocityX() float32 { return o.vx }
func (o *Object) VelocityY() float32 { return o.vy }
func (o *Object) OnGround() bool     { return o.onGround }

// XAt extrapolates x by f steps of the current velocity
// f is the fraction of a step elapsed since the last Update and is not clamped
func (o *Object) XAt(f float32) float32 { return o.x + o.vx*f }

// YAt extrapolates y by f steps of the current velocity
func (o *Object) YAt(f float32) float32 { return o.y + o.vy*f }
