package skills_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/nineclaw/mhrcalc/internal/calc/skills"
)

func TestSetGetRoundTrip(t *testing.T) {
	c := skills.New(8)
	c.Set(3, 2)
	assert.EqualValues(t, 2, c.Get(3))
	assert.EqualValues(t, 0, c.Get(4))
}

func TestGetOutOfRangeReturnsZero(t *testing.T) {
	c := skills.New(4)
	assert.EqualValues(t, 0, c.Get(99))
}

func TestListSkipsZerosAndOrdersByUID(t *testing.T) {
	c := skills.New(6)
	c.Set(4, 1)
	c.Set(1, 3)
	c.Set(0, 0)

	got := c.List()
	assert.Equal(t, []skills.Pair{{UID: 1, Level: 3}, {UID: 4, Level: 1}}, got)
}

func TestDiffMayGoNegative(t *testing.T) {
	a := skills.New(2)
	a.Set(0, 1)
	b := skills.New(2)
	b.Set(0, 3)

	d := a.Diff(b)
	assert.EqualValues(t, -2, d.Get(0))
}

func TestClearZerosClampsNegatives(t *testing.T) {
	a := skills.New(2)
	a.Set(0, -5)
	a.Set(1, 2)
	a.ClearZeros()
	assert.EqualValues(t, 0, a.Get(0))
	assert.EqualValues(t, 2, a.Get(1))
}

func TestSubMutSwapsResidues(t *testing.T) {
	a := skills.New(1)
	a.Set(0, 5)
	b := skills.New(1)
	b.Set(0, 2)

	a.SubMut(b)
	assert.EqualValues(t, 3, a.Get(0))
	assert.EqualValues(t, 0, b.Get(0))

	a2 := skills.New(1)
	a2.Set(0, 1)
	b2 := skills.New(1)
	b2.Set(0, 4)
	a2.SubMut(b2)
	assert.EqualValues(t, 0, a2.Get(0))
	assert.EqualValues(t, 3, b2.Get(0))
}

func TestEqualityOverRawVector(t *testing.T) {
	a := skills.New(3)
	a.Set(1, 2)
	b := skills.New(3)
	b.Set(1, 2)
	assert.True(t, a.Equal(b))

	b.Set(2, 1)
	assert.False(t, a.Equal(b))
}

func TestKeyIsDeterministicAndOrderIndependentOfSetOrder(t *testing.T) {
	a := skills.New(5)
	a.Set(3, 1)
	a.Set(0, 2)

	b := skills.New(5)
	b.Set(0, 2)
	b.Set(3, 1)

	assert.Equal(t, a.Key(), b.Key())
}

func TestAddIsCommutative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := 6
		a := skills.New(n)
		b := skills.New(n)
		for i := 0; i < n; i++ {
			a.Set(skills.UID(i), skills.Level(rapid.IntRange(-5, 5).Draw(t, "a")))
			b.Set(skills.UID(i), skills.Level(rapid.IntRange(-5, 5).Draw(t, "b")))
		}
		assert.True(t, a.Add(b).Equal(b.Add(a)))
	})
}
