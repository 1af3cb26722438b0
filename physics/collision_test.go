package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sized(t ObjectType, x, y, w, h float32) *Object {
	o := NewObject(t, x, y)
	o.SetSize(w, h)
	return &o
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b *Object
		want bool
	}{
		{"intersecting", sized(TypePlayer, 0, 0, 10, 10), sized(TypeMinion, 5, 5, 10, 10), true},
		{"contained", sized(TypeKing, 0, 0, 30, 30), sized(TypeMinion, 10, 10, 2, 2), true},
		{"touching edges", sized(TypePlayer, 0, 0, 10, 10), sized(TypeMinion, 10, 0, 10, 10), false},
		{"apart vertically", sized(TypePlayer, 0, 0, 10, 10), sized(TypeMinion, 0, 20, 10, 10), false},
		{"absent", sized(TypePlayer, 0, 0, 10, 10), sized(TypeNone, 0, 0, 10, 10), false},
		{"point inside", sized(TypePlayer, 0, 0, 10, 10), sized(TypeMinion, 5, 5, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "symmetric")
		})
	}
}

func TestLanded(t *testing.T) {
	r := &Rules{Gravity: 2, Ground: 20}
	o := sized(TypePlayer, 0, 12, 4, 4)

	before := o.OnGround()
	o.Update(r)
	assert.False(t, Landed(before, o))

	before = o.OnGround()
	o.Update(r)
	assert.True(t, Landed(before, o))

	before = o.OnGround()
	o.Update(r)
	assert.False(t, Landed(before, o), "resting is not landing")
}
