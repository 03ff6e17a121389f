package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roma7-7-7/recall-journal/internal/dal"
)

func TestApplyAnswer_SequenceTrace(t *testing.T) {
	stats := dal.UserStats{}

	outcomes := []bool{true, true, false, true}
	wantCurrent := []int{1, 2, 0, 1}
	wantLongest := []int{1, 2, 2, 2}

	for i, correct := range outcomes {
		applyAnswer(&stats, correct)
		assert.Equal(t, wantCurrent[i], stats.CurrentStreak, "current streak after step %d", i)
		assert.Equal(t, wantLongest[i], stats.LongestStreak, "longest streak after step %d", i)
	}
}

func TestApplyAnswer_MilestoneEvents(t *testing.T) {
	stats := dal.UserStats{}

	// streaks 1 and 2 are new longest but not milestones
	event := applyAnswer(&stats, true)
	require.NotNil(t, event)
	assert.True(t, event.NewLongest)
	assert.Zero(t, event.Milestone)

	event = applyAnswer(&stats, true)
	require.NotNil(t, event)
	assert.True(t, event.NewLongest)
	assert.Zero(t, event.Milestone)

	// streak 3 is both a new longest and a milestone: one event, both set
	event = applyAnswer(&stats, true)
	require.NotNil(t, event)
	assert.True(t, event.NewLongest)
	assert.Equal(t, 3, event.Milestone)
}

func TestApplyAnswer_MilestoneWithoutNewLongest(t *testing.T) {
	// rebuilding a broken streak: milestone 3 fires again but is not a new longest
	stats := dal.UserStats{CurrentStreak: 2, LongestStreak: 10}

	event := applyAnswer(&stats, true)
	require.NotNil(t, event)
	assert.False(t, event.NewLongest)
	assert.Equal(t, 3, event.Milestone)
	assert.Equal(t, 10, stats.LongestStreak)
}

func TestApplyAnswer_NoEventCases(t *testing.T) {
	t.Run("incorrect answer", func(t *testing.T) {
		stats := dal.UserStats{CurrentStreak: 5, LongestStreak: 5}
		event := applyAnswer(&stats, false)
		assert.Nil(t, event)
		assert.Zero(t, stats.CurrentStreak)
		assert.Equal(t, 5, stats.LongestStreak)
	})

	t.Run("non-milestone correct answer below longest", func(t *testing.T) {
		stats := dal.UserStats{CurrentStreak: 3, LongestStreak: 10}
		event := applyAnswer(&stats, true)
		assert.Nil(t, event)
		assert.Equal(t, 4, stats.CurrentStreak)
	})
}

func TestApplyAnswer_LongestStreakMonotone(t *testing.T) {
	stats := dal.UserStats{}
	prev := 0
	for _, correct := range []bool{true, true, true, false, true, false, true, true, true, true} {
		applyAnswer(&stats, correct)
		assert.GreaterOrEqual(t, stats.LongestStreak, prev)
		prev = stats.LongestStreak
	}
}
