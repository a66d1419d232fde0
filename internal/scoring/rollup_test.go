package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollupByGroup(t *testing.T) {
	records := []Record{
		{ID: "a", GroupID: "t1", Pre: sub(5, 5), Post: sub(7, 8)}, // 50
		{ID: "b", GroupID: "t1", Pre: sub(2, 3), Post: sub(5, 5)}, // 100
		{ID: "c", GroupID: "t2", Pre: sub(5, 5), Post: sub(6, 6)}, // 20
		{ID: "d", GroupID: "t3", Pre: sub(5, 5)},
	}
	got := RollupByGroup([]string{"t1", "t2", "t3", "t4"}, records)

	require.Len(t, got.Groups, 4)
	assert.Equal(t, GroupStat{GroupID: "t1", Learners: 2, Active: 2, AverageImprovement: 75}, got.Groups[0])
	assert.Equal(t, GroupStat{GroupID: "t2", Learners: 1, Active: 1, AverageImprovement: 20}, got.Groups[1])
	assert.Equal(t, GroupStat{GroupID: "t3", Learners: 1}, got.Groups[2])
	assert.Equal(t, GroupStat{GroupID: "t4"}, got.Groups[3])
	assert.Equal(t, 2, got.ActiveGroups)
	assert.Equal(t, 2, got.InactiveGroups)
	assert.Equal(t, 48, got.AverageImprovement)
	assert.Equal(t, "t1", got.MostImprovedGroup)
}

func TestRollupByGroup_TiesKeepFirst(t *testing.T) {
	records := []Record{
		{GroupID: "x", Pre: sub(5, 5), Post: sub(6, 6)},
		{GroupID: "y", Pre: sub(5, 5), Post: sub(6, 6)},
	}
	got := RollupByGroup([]string{"x", "y"}, records)
	assert.Equal(t, "x", got.MostImprovedGroup)

	empty := RollupByGroup(nil, nil)
	assert.Zero(t, empty.AverageImprovement)
	assert.Empty(t, empty.MostImprovedGroup)
}
