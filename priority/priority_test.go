package priority

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decrbfs/bfserr"
)

func buildFixture(t *testing.T) *Structure {
	t.Helper()
	s := New(1000).WithBuildThreshold(2)
	err := s.Initialize([]Pair{
		{Value: 100, Priority: 10},
		{Value: 200, Priority: 150},
		{Value: 300, Priority: 999},
		{Value: 400, Priority: 500},
		{Value: 500, Priority: 1},
	})
	require.NoError(t, err)
	return s
}

func TestStructure_QueryByRank(t *testing.T) {
	s := buildFixture(t)
	require.Equal(t, 5, s.Size())

	v, err := s.Query(1)
	require.NoError(t, err)
	assert.Equal(t, 300, v)

	v, err = s.Query(5)
	require.NoError(t, err)
	assert.Equal(t, 500, v)
}

func TestStructure_Find(t *testing.T) {
	s := buildFixture(t)
	v, rank, err := s.Find(150)
	require.NoError(t, err)
	assert.Equal(t, 200, v)
	assert.Equal(t, 2, rank)

	_, _, err = s.Find(999999)
	assert.Error(t, err)
	assert.True(t, bfserr.IsPrecondition(err))
}

func TestStructure_UpdatePriority(t *testing.T) {
	s := buildFixture(t)
	_, rankOf10, err := s.Find(10)
	require.NoError(t, err)

	require.NoError(t, s.UpdatePriority(rankOf10, 501))

	v, rank, err := s.Find(501)
	require.NoError(t, err)
	assert.Equal(t, 100, v)
	assert.Equal(t, 4, rankOf10)
	assert.Equal(t, 2, rank) // only priority 999 now ranks above 501

	_, _, err = s.Find(10)
	assert.Error(t, err)
}

func TestStructure_UpdatePriority_RejectsOccupied(t *testing.T) {
	s := buildFixture(t)
	_, rankOf10, err := s.Find(10)
	require.NoError(t, err)
	err = s.UpdatePriority(rankOf10, 999)
	assert.Error(t, err)
}

func TestStructure_EraseHighestRank(t *testing.T) {
	s := buildFixture(t)
	v, err := s.Erase(1)
	require.NoError(t, err)
	assert.Equal(t, 300, v)
	assert.Equal(t, 4, s.Size())
}

func TestStructure_RoundTrip(t *testing.T) {
	// priorities in descending order give ranks 1..5 directly.
	priorities := []int{999, 500, 150, 10, 1}
	s := buildFixture(t)
	for wantRank, p := range priorities {
		v, rank, err := s.Find(p)
		require.NoError(t, err)
		assert.Equal(t, wantRank+1, rank)

		got, err := s.Query(rank)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestStructure_NextWith_DoublingScan(t *testing.T) {
	s := New(100).WithBuildThreshold(2)
	pairs := make([]Pair, 8)
	for i := 0; i < 8; i++ {
		pairs[i] = Pair{Value: i, Priority: 8 - i}
	}
	require.NoError(t, s.Initialize(pairs))

	pred := func(v int) bool { return v == 2 || v == 5 }

	assert.Equal(t, 3, s.NextWith(1, pred))
	assert.Equal(t, 6, s.NextWith(4, pred))
	assert.Equal(t, 9, s.NextWith(7, pred))
}

func TestStructure_NextWith_EmptyStructure(t *testing.T) {
	s := New(10)
	require.NoError(t, s.Initialize(nil))
	assert.Equal(t, 1, s.NextWith(1, func(int) bool { return true }))
}

func TestStructure_Initialize_RejectsDuplicatePriority(t *testing.T) {
	s := New(10)
	err := s.Initialize([]Pair{{Value: 1, Priority: 5}, {Value: 2, Priority: 5}})
	assert.Error(t, err)
}

func TestStructure_Initialize_RejectsOutOfRangePriority(t *testing.T) {
	s := New(10)
	err := s.Initialize([]Pair{{Value: 1, Priority: 11}})
	assert.Error(t, err)
}
