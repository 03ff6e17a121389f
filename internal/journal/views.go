package journal

import (
	"sort"

	"github.com/Roma7-7-7/recall-journal/internal/dal"
)

// DueEntries returns entries that are answerable now plus entries answered
// today, so a just-answered item stays visible in the due view for the rest
// of the day. Sorted ascending by due date.
func DueEntries(entries []dal.Entry, today string) []dal.Entry {
	res := make([]dal.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Status == dal.StatusDue || (e.Answered() && e.AnsweredDate == today) {
			res = append(res, e)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].DueDate < res[j].DueDate
	})
	return res
}

// UpcomingEntries returns pending entries sorted ascending by due date.
func UpcomingEntries(entries []dal.Entry) []dal.Entry {
	res := make([]dal.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Status == dal.StatusPending {
			res = append(res, e)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].DueDate < res[j].DueDate
	})
	return res
}

// HistoryEntries returns answered entries sorted descending by answered date.
func HistoryEntries(entries []dal.Entry) []dal.Entry {
	res := make([]dal.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Answered() {
			res = append(res, e)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].AnsweredDate > res[j].AnsweredDate
	})
	return res
}
