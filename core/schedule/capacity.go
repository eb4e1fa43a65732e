package schedule

import "github.com/dsisolutions/shopsched/core/model"

// Bucket identifies one work center on one calendar day.
type Bucket struct {
	WorkCenter string
	Date       model.Date
}

// CapacityCalculator derives daily work-center capacity from the
// employee roster and the absence calendar. It holds a snapshot taken at
// construction; build a new calculator when roster or absences change.
type CapacityCalculator struct {
	employees []model.Employee
	absences  map[string]map[model.Date]model.EmployeeAbsence
}

// NewCapacityCalculator returns a calculator over the given roster and
// absence snapshot.
func NewCapacityCalculator(employees []model.Employee, absences []model.EmployeeAbsence) *CapacityCalculator {
	lookup := make(map[string]map[model.Date]model.EmployeeAbsence)
	for _, a := range absences {
		byDate, ok := lookup[a.EmployeeID]
		if !ok {
			byDate = make(map[model.Date]model.EmployeeAbsence)
			lookup[a.EmployeeID] = byDate
		}
		byDate[a.Date] = a
	}
	return &CapacityCalculator{employees: employees, absences: lookup}
}

// Capacity returns the available hours for a work center on a date.
// Employees with an empty work-center list count toward every work
// center. defaultDailyHours is used only for employees whose own daily
// hours are unset.
func (c *CapacityCalculator) Capacity(workCenter string, day model.Date, defaultDailyHours float64) float64 {
	var total float64
	for _, emp := range c.employees {
		if !emp.EligibleFor(workCenter) {
			continue
		}
		daily := emp.DefaultDailyHours
		if daily <= 0 {
			daily = defaultDailyHours
		}
		absence, ok := c.absences[emp.ID][day]
		if !ok {
			total += daily
			continue
		}
		lost := absence.HoursLost
		if lost <= 0 {
			// Zero hours lost means a full day off.
			lost = daily
		}
		if remaining := daily - lost; remaining > 0 {
			total += remaining
		}
	}
	return total
}

// CapacityMap precomputes Capacity for every work center over the
// window [start, start+numDays).
func (c *CapacityCalculator) CapacityMap(workCenters []string, start model.Date, numDays int, defaultDailyHours float64) map[Bucket]float64 {
	capacity := make(map[Bucket]float64, len(workCenters)*numDays)
	for _, wc := range workCenters {
		for i := 0; i < numDays; i++ {
			day := start.AddDays(i)
			capacity[Bucket{WorkCenter: wc, Date: day}] = c.Capacity(wc, day, defaultDailyHours)
		}
	}
	return capacity
}
