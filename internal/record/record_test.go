package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type widget struct {
	Base
	X int32
}

var fieldX = Field[*widget, int32]{
	ID:   0,
	Name: "x",
	Get:  func(w *widget) int32 { return w.X },
	Set:  func(w *widget, v int32) { w.X = v },
}

func TestFieldGetSetRoundTrips(t *testing.T) {
	w := &widget{}
	fieldX.Set(w, 42)
	require.Equal(t, int32(42), fieldX.Get(w))
}

func TestBaseGenID(t *testing.T) {
	w := &widget{}
	w.SetGenID(7)
	require.Equal(t, uint64(7), w.GenID())
}

func TestRefCarriesParentGenIDOnly(t *testing.T) {
	parent := &widget{}
	parent.SetGenID(11)
	r := NewRef[*widget](parent)
	require.Equal(t, uint64(11), r.ParentGenID)
}

func TestDateOrdering(t *testing.T) {
	a := Date{2024, 1, 31}
	b := Date{2024, 2, 1}
	require.True(t, a.Before(b))
	require.False(t, b.Before(a))
	require.False(t, a.Equal(b))
	require.Equal(t, "2024-01-31", a.String())
}
