// Package nutrition derives per-day calorie and macro totals from the meal
// entry collection. It is a pure read model: it never mutates entries and
// never sees recognition failures, because the entry store substitutes a
// fallback result before an entry reaches the analyzed state.
package nutrition

import (
	"fmt"

	"github.com/phrazzld/nutrisnap/internal/domain"
)

// EntrySource is the read surface of the meal entry store.
type EntrySource interface {
	ListEntries() []*domain.MealEntry
}

// DailyTotals is the summed nutrition of a single day's analyzed meals.
type DailyTotals struct {
	Day      domain.Day `json:"day"`
	Calories float64    `json:"calories"`
	Carbs    float64    `json:"carbs"`
	Protein  float64    `json:"protein"`
	Fat      float64    `json:"fat"`
	Meals    int        `json:"meals"`
}

// Aggregator computes daily totals and goal deltas over an entry source.
type Aggregator struct {
	entries EntrySource
}

// NewAggregator creates an aggregator reading from the given source.
func NewAggregator(entries EntrySource) *Aggregator {
	return &Aggregator{entries: entries}
}

// TotalsFor sums the analyzed entries captured on the given day. Entries
// still pending or analyzing contribute nothing; they count once their
// result lands. An empty day yields zero totals, not an error.
func (a *Aggregator) TotalsFor(day domain.Day) (DailyTotals, error) {
	if err := day.Validate(); err != nil {
		return DailyTotals{}, err
	}

	totals := DailyTotals{Day: day}
	for _, entry := range a.entries.ListEntries() {
		if entry.CapturedOn != day || !entry.Analyzed() {
			continue
		}
		totals.Calories += entry.Result.TotalCalories
		totals.Carbs += entry.Result.TotalCarbs
		totals.Protein += entry.Result.TotalProtein
		totals.Fat += entry.Result.TotalFat
		totals.Meals++
	}
	return totals, nil
}

// RemainingCalories returns goal minus the day's consumed calories. The
// result may be negative when the user is over goal; callers decide how to
// display that.
func (a *Aggregator) RemainingCalories(day domain.Day, goal domain.CalorieGoal) (float64, error) {
	if !goal.Valid() {
		return 0, fmt.Errorf("%w: calorie goal must be positive, got %d", domain.ErrInvalidConfiguration, goal)
	}
	totals, err := a.TotalsFor(day)
	if err != nil {
		return 0, err
	}
	return float64(goal) - totals.Calories, nil
}

// ProgressFraction returns the day's consumed calories as a fraction of the
// goal. Exceeding the goal yields a fraction above 1; it is not clamped.
func (a *Aggregator) ProgressFraction(day domain.Day, goal domain.CalorieGoal) (float64, error) {
	if !goal.Valid() {
		return 0, fmt.Errorf("%w: calorie goal must be positive, got %d", domain.ErrInvalidConfiguration, goal)
	}
	totals, err := a.TotalsFor(day)
	if err != nil {
		return 0, err
	}
	return totals.Calories / float64(goal), nil
}
