package obelizmo_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemnion/obelizmo"
)

func TestMarkSliceBounds(t *testing.T) {
	s := obelizmo.NewMarkStore[kind]("hello")

	require.NoError(t, s.MarkSlice(kRed, 0, 3))
	assert.Equal(t, 1, s.Len())

	err := s.MarkSlice(kBlue, 3, 1)
	var invalid *obelizmo.InvalidRegionError
	assert.ErrorAs(t, err, &invalid)

	err = s.MarkSlice(kBlue, 0, 6)
	assert.ErrorAs(t, err, &invalid)
}

func TestMarkFromOverflow(t *testing.T) {
	s := obelizmo.NewMarkStore[kind]("hello")
	require.NoError(t, s.MarkFrom(kRed, 1, 3))

	var invalid *obelizmo.InvalidRegionError
	assert.ErrorAs(t, s.MarkFrom(kBlue, 4, 2), &invalid)
	assert.ErrorAs(t, s.MarkFrom(kBlue, 1<<31, 1<<31), &invalid)
}

func TestFindAndMark(t *testing.T) {
	s := obelizmo.NewMarkStore[kind]("red blue red")

	idx, found, err := s.FindAndMark(kRed, "red")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0, idx)

	idx, found, err = s.FindAndMarkPos(kRed, "red", 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 9, idx)

	idx, found, err = s.FindAndMarkLast(kRed, "red")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 9, idx)

	_, found, err = s.FindAndMark(kGreen, "purple")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMatchAndMark(t *testing.T) {
	s := obelizmo.NewMarkStore[kind]("func 10 funky 456")
	re := obelizmo.StdRegexp{Regexp: regexp.MustCompile(`[0-9]+`)}

	idx, found, err := s.MatchAndMark(kBlue, re)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 5, idx)

	found, err = s.MatchAndMarkAll(kBlue, re)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, s.Len())
}

func TestMarksOrdIn(t *testing.T) {
	s := obelizmo.NewMarkStore[kind]("red blue green yellow")
	require.NoError(t, s.MarkFrom(kYellow, 15, 6))
	require.NoError(t, s.MarkFrom(kRed, 0, 3))
	require.NoError(t, s.MarkFrom(kGreen, 9, 5))
	require.NoError(t, s.MarkFrom(kBlue, 4, 4))
	require.NoError(t, s.MarkFrom(kTeal, 4, 10))

	marks := s.Marks()
	require.Len(t, marks, 5)
	assert.Equal(t, []obelizmo.Mark[kind]{
		{Kind: kRed, Offset: 0, Len: 3},
		{Kind: kTeal, Offset: 4, Len: 10},
		{Kind: kBlue, Offset: 4, Len: 4},
		{Kind: kGreen, Offset: 9, Len: 5},
		{Kind: kYellow, Offset: 15, Len: 6},
	}, marks)
}
