package schedule

import (
	"testing"
	"time"

	"github.com/dsisolutions/shopsched/core/model"
)

func testRoster() []model.Employee {
	return []model.Employee{
		{ID: "e1", Name: "Miller", DefaultDailyHours: 8, WorkCenters: []string{"MILL"}},
		{ID: "e2", Name: "Welder", DefaultDailyHours: 6, WorkCenters: []string{"WELD", "MILL"}},
		{ID: "e3", Name: "Floater", DefaultDailyHours: 8},
	}
}

func TestCapacityEligibility(t *testing.T) {
	calc := NewCapacityCalculator(testRoster(), nil)
	day := model.NewDate(2026, time.September, 7)

	// MILL: e1 (8) + e2 (6) + floater (8).
	if got := calc.Capacity("MILL", day, 8); got != 22 {
		t.Fatalf("MILL expected 22 got %v", got)
	}
	// WELD: e2 (6) + floater (8).
	if got := calc.Capacity("WELD", day, 8); got != 14 {
		t.Fatalf("WELD expected 14 got %v", got)
	}
	// Unknown work center: only the floater counts.
	if got := calc.Capacity("SAW", day, 8); got != 8 {
		t.Fatalf("SAW expected 8 got %v", got)
	}
}

func TestCapacityPartialAbsence(t *testing.T) {
	day := model.NewDate(2026, time.September, 7)
	absences := []model.EmployeeAbsence{
		{EmployeeID: "e1", Date: day, Reason: "appointment", HoursLost: 3},
	}
	calc := NewCapacityCalculator(testRoster(), absences)

	if got := calc.Capacity("MILL", day, 8); got != 19 {
		t.Fatalf("expected 19 got %v", got)
	}
	// The absence applies only to its exact date.
	if got := calc.Capacity("MILL", day.AddDays(1), 8); got != 22 {
		t.Fatalf("expected 22 on the next day got %v", got)
	}
}

func TestCapacityFullDayAbsence(t *testing.T) {
	day := model.NewDate(2026, time.September, 7)
	absences := []model.EmployeeAbsence{
		{EmployeeID: "e1", Date: day, Reason: "vacation", HoursLost: 0},
	}
	calc := NewCapacityCalculator(testRoster(), absences)

	if got := calc.Capacity("MILL", day, 8); got != 14 {
		t.Fatalf("expected 14 got %v", got)
	}
}

func TestCapacityDefaultHoursFallback(t *testing.T) {
	roster := []model.Employee{
		{ID: "e1", Name: "Unset", WorkCenters: []string{"MILL"}},
	}
	calc := NewCapacityCalculator(roster, nil)
	day := model.NewDate(2026, time.September, 7)

	if got := calc.Capacity("MILL", day, 7.5); got != 7.5 {
		t.Fatalf("expected default 7.5 got %v", got)
	}
}

func TestCapacityMapWindow(t *testing.T) {
	calc := NewCapacityCalculator(testRoster(), nil)
	start := model.NewDate(2026, time.September, 7)

	m := calc.CapacityMap([]string{"MILL", "WELD"}, start, 3, 8)
	if len(m) != 6 {
		t.Fatalf("expected 6 buckets got %d", len(m))
	}
	if got := m[Bucket{WorkCenter: "MILL", Date: start.AddDays(2)}]; got != 22 {
		t.Fatalf("expected 22 got %v", got)
	}
	if _, ok := m[Bucket{WorkCenter: "MILL", Date: start.AddDays(3)}]; ok {
		t.Fatalf("window end is exclusive")
	}
}
