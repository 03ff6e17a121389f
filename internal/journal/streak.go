package journal

import "github.com/Roma7-7-7/recall-journal/internal/dal"

// milestones are streak lengths that trigger a celebration event.
var milestones = []int{3, 7, 14, 30, 50, 100} //nolint:gochecknoglobals // fixed milestone set

// StreakMilestone is a UI-facing event emitted on notable correct answers.
// It is not persisted.
type StreakMilestone struct {
	NewLongest bool `json:"new_longest"`
	// Milestone is the reached milestone value, 0 when the event was emitted
	// for a new longest streak only.
	Milestone int `json:"milestone,omitempty"`
}

// applyAnswer updates streak counters for one answer outcome and returns a
// milestone event when the new streak is a new longest or hits a milestone
// value. Incorrect answers reset the current streak and never emit events.
func applyAnswer(stats *dal.UserStats, correct bool) *StreakMilestone {
	if !correct {
		stats.CurrentStreak = 0
		return nil
	}

	stats.CurrentStreak++

	newLongest := stats.CurrentStreak > stats.LongestStreak
	if newLongest {
		stats.LongestStreak = stats.CurrentStreak
	}

	milestone := 0
	for _, m := range milestones {
		if stats.CurrentStreak == m {
			milestone = m
			break
		}
	}

	if !newLongest && milestone == 0 {
		return nil
	}

	return &StreakMilestone{
		NewLongest: newLongest,
		Milestone:  milestone,
	}
}
