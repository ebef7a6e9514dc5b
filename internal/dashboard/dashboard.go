// Package dashboard derives the summary views shown on the console's start page.
package dashboard

import (
	"sort"
	"time"

	"visitor-pass-console/internal/model"
)

// RecentLimit is the number of visitors in the recent list.
const RecentLimit = 5

type Summary struct {
	Date            string           `json:"date"`
	TodayVisitors   []model.Visitor  `json:"todayVisitors"`
	PendingVisitors []model.Visitor  `json:"pendingVisitors"`
	ActiveEmployees []model.Employee `json:"activeEmployees"`
	RecentVisitors  []model.Visitor  `json:"recentVisitors"`
	TotalVisitors   int              `json:"totalVisitors"`
	TotalEmployees  int              `json:"totalEmployees"`
	TotalBuildings  int              `json:"totalBuildings"`
}

// Today formats now in its own location, the way visit dates are entered.
func Today(now time.Time) string {
	return now.Format(model.DateLayout)
}

// VisitorsOn returns visitors whose visit date equals date exactly.
func VisitorsOn(visitors []model.Visitor, date string) []model.Visitor {
	return filter(visitors, func(v model.Visitor) bool { return v.VisitDate == date })
}

func Pending(visitors []model.Visitor) []model.Visitor {
	return filter(visitors, func(v model.Visitor) bool { return v.Status == model.VisitorPending })
}

func ActiveEmployees(employees []model.Employee) []model.Employee {
	return filter(employees, func(e model.Employee) bool { return e.Status == model.StatusActive })
}

// Recent returns up to n visitors, newest first. The input is not reordered.
func Recent(visitors []model.Visitor, n int) []model.Visitor {
	sorted := make([]model.Visitor, len(visitors))
	copy(sorted, visitors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return createdAfter(sorted[i].CreatedAt, sorted[j].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// createdAfter compares parsed timestamps, falling back to string order
// for values that do not parse.
func createdAfter(a, b string) bool {
	ta, errA := model.ParseTimestamp(a)
	tb, errB := model.ParseTimestamp(b)
	if errA != nil || errB != nil {
		return a > b
	}
	return ta.After(tb)
}

// Build computes every dashboard view from the current collections.
func Build(now time.Time, visitors []model.Visitor, employees []model.Employee, buildingCount int) Summary {
	today := Today(now)
	return Summary{
		Date:            today,
		TodayVisitors:   VisitorsOn(visitors, today),
		PendingVisitors: Pending(visitors),
		ActiveEmployees: ActiveEmployees(employees),
		RecentVisitors:  Recent(visitors, RecentLimit),
		TotalVisitors:   len(visitors),
		TotalEmployees:  len(employees),
		TotalBuildings:  buildingCount,
	}
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
