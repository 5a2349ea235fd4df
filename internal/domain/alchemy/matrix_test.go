package alchemy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix_InverseIdentity(t *testing.T) {
	// Arrange
	m := identity(3)

	// Act
	inv, ok := m.inverse()

	// Assert
	require.True(t, ok)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			expected := 0.0
			if r == c {
				expected = 1.0
			}
			assert.InDelta(t, expected, inv.at(r, c), 1e-12)
		}
	}
}

func TestMatrix_InverseKnownSystem(t *testing.T) {
	// Arrange: I - M for the two-product cycle A=[0.5 B], B=[1 A]
	// [[1, -1], [-0.5, 1]] has inverse [[2, 2], [1, 2]]
	m := newMatrix(2)
	m.set(0, 0, 1)
	m.set(0, 1, -1)
	m.set(1, 0, -0.5)
	m.set(1, 1, 1)

	// Act
	inv, ok := m.inverse()

	// Assert
	require.True(t, ok)
	assert.InDelta(t, 2.0, inv.at(0, 0), 1e-12)
	assert.InDelta(t, 2.0, inv.at(0, 1), 1e-12)
	assert.InDelta(t, 1.0, inv.at(1, 0), 1e-12)
	assert.InDelta(t, 2.0, inv.at(1, 1), 1e-12)
}

func TestMatrix_InverseSingular(t *testing.T) {
	// Arrange: perfect 1:1 regeneration loop, I - M = [[1,-1],[-1,1]]
	m := newMatrix(2)
	m.set(0, 0, 1)
	m.set(0, 1, -1)
	m.set(1, 0, -1)
	m.set(1, 1, 1)

	// Act
	inv, ok := m.inverse()

	// Assert
	assert.False(t, ok)
	assert.Nil(t, inv)
}

func TestMatrix_InverseRequiresPivoting(t *testing.T) {
	// Arrange: zero in the top-left forces a row swap
	m := newMatrix(2)
	m.set(0, 0, 0)
	m.set(0, 1, 1)
	m.set(1, 0, 1)
	m.set(1, 1, 0)

	// Act
	inv, ok := m.inverse()

	// Assert: the matrix is its own inverse
	require.True(t, ok)
	assert.InDelta(t, 0.0, inv.at(0, 0), 1e-12)
	assert.InDelta(t, 1.0, inv.at(0, 1), 1e-12)
	assert.InDelta(t, 1.0, inv.at(1, 0), 1e-12)
	assert.InDelta(t, 0.0, inv.at(1, 1), 1e-12)
}

func TestMatrix_MulVec(t *testing.T) {
	// Arrange
	m := newMatrix(2)
	m.set(0, 0, 2)
	m.set(0, 1, 2)
	m.set(1, 0, 1)
	m.set(1, 1, 2)

	// Act
	out := m.mulVec([]float64{3, 0})

	// Assert
	assert.InDelta(t, 6.0, out[0], 1e-12)
	assert.InDelta(t, 3.0, out[1], 1e-12)
}
