package kinematic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasis_Forward(t *testing.T) {
	tests := []struct {
		name  string
		basis Basis
		want  Vector3
	}{
		{
			name:  "identity faces negative Z",
			basis: IdentityBasis(),
			want:  Vector3{Z: -1},
		},
		{
			name:  "forward is the negated Z column",
			basis: Basis{Z: Vector3{X: 0.5, Y: -0.25, Z: 0.75}},
			want:  Vector3{X: -0.5, Y: 0.25, Z: -0.75},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.basis.Forward())
		})
	}
}

func TestBasis_RotatedY(t *testing.T) {
	rotated := IdentityBasis().RotatedY(math.Pi / 2)
	forward := rotated.Forward()
	// A quarter turn around Y swings the facing from -Z to -X.
	assert.InDelta(t, -1, forward.X, 1e-9)
	assert.InDelta(t, 0, forward.Y, 1e-9)
	assert.InDelta(t, 0, forward.Z, 1e-9)
	assert.InDelta(t, 1, rotated.Y.Length(), 1e-9)
}

func TestVector3_Length(t *testing.T) {
	assert.Equal(t, 5.0, Vector3{X: 3, Y: 4}.Length())
	assert.Equal(t, 0.0, Vector3{}.Length())
}

func TestDisplacement(t *testing.T) {
	// An object starting at rest falls 0.5*g*t^2.
	assert.InDelta(t, -4.9, Displacement(0, 1, Gravity), 1e-9)
}

func TestFinalVelocity(t *testing.T) {
	assert.InDelta(t, -9.8, FinalVelocity(0, 1, Gravity), 1e-9)
}
