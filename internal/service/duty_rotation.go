package service

import (
	"errors"
	"sort"
	"time"

	"github.com/sammyTGR/tgr-sub005/internal/model"
)

// ErrNoEligibleEmployee nobody in the ring works during the week
var ErrNoEligibleEmployee = errors.New("no eligible employee for break-room duty this week")

// RotationCandidate one member of the duty ring
type RotationCandidate struct {
	EmployeeID int
	Name       string
}

// DutyAssignment result of one rotation step
type DutyAssignment struct {
	EmployeeID int
	Name       string
	DutyDate   time.Time
}

// NextDutyAssignment picks who cleans the break room this week.
//
// The ring is ordered by employee id. The scan starts right after
// lastAssignedID and wraps around, so the last assigned employee is checked
// last; a nil or unknown lastAssignedID starts at the lowest id. The first
// candidate holding a workday shift in week wins. The duty day is the
// preferred weekday when worked, otherwise the worked day closest to it,
// ties going to the earlier date.
func NextDutyAssignment(ring []RotationCandidate, lastAssignedID *int, week []model.Shift, preferredWeekday time.Weekday) (*DutyAssignment, error) {
	if len(ring) == 0 {
		return nil, ErrNoEligibleEmployee
	}

	sorted := make([]RotationCandidate, len(ring))
	copy(sorted, ring)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].EmployeeID < sorted[j].EmployeeID })

	workdays := make(map[int][]time.Time)
	for _, sh := range week {
		if model.IsWorkdayStatus(sh.Status) {
			workdays[sh.EmployeeID] = append(workdays[sh.EmployeeID], dateOf(sh.ScheduleDate))
		}
	}

	start := 0
	if lastAssignedID != nil {
		for i, c := range sorted {
			if c.EmployeeID == *lastAssignedID {
				start = i + 1
				break
			}
		}
	}

	for k := 0; k < len(sorted); k++ {
		c := sorted[(start+k)%len(sorted)]
		days := workdays[c.EmployeeID]
		if len(days) == 0 {
			continue
		}
		return &DutyAssignment{
			EmployeeID: c.EmployeeID,
			Name:       c.Name,
			DutyDate:   pickDutyDay(days, preferredWeekday),
		}, nil
	}
	return nil, ErrNoEligibleEmployee
}

// pickDutyDay days is non-empty. Distance is counted inside the Monday to
// Sunday duty week, so Sunday sits two days after Friday.
func pickDutyDay(days []time.Time, preferred time.Weekday) time.Time {
	var best time.Time
	bestDist := -1
	for _, d := range days {
		dist := mondayIndex(d.Weekday()) - mondayIndex(preferred)
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && d.Before(best)) {
			best, bestDist = d, dist
		}
	}
	return best
}

// mondayIndex 0=Monday through 6=Sunday
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
