package service

import (
	"sort"
	"strings"

	"github.com/sammyTGR/tgr-sub005/internal/dto"
	"github.com/sammyTGR/tgr-sub005/internal/model"
)

// SummaryParams store knobs that drive the audit summary
type SummaryParams struct {
	StartingPoints     int
	Threshold          int
	ExcludedDepartment string
}

// PointTable deduction lookup built from the point rules
type PointTable struct {
	byLocation           map[string]int
	cancellation         int
	cancellationLocation string
	hasCancellation      bool
}

// NewPointTable indexes rules by error location; the first dros_cancellation
// rule supplies the cancellation charge.
func NewPointTable(rules []model.PointRule) PointTable {
	t := PointTable{byLocation: make(map[string]int, len(rules))}
	for _, r := range rules {
		loc := strings.TrimSpace(r.ErrorLocation)
		t.byLocation[loc] = r.PointsDeducted
		if r.Category == model.DrosCancellationCategory && !t.hasCancellation {
			t.cancellation = r.PointsDeducted
			t.cancellationLocation = loc
			t.hasCancellation = true
		}
	}
	return t
}

// Deduction points charged for one audit row. A row filed under the
// cancellation rule's own location pays that rule once, flagged or not.
func (t PointTable) Deduction(a *model.Audit) int {
	loc := strings.TrimSpace(a.ErrorLocation)
	points := t.byLocation[loc]
	if a.DrosCancel && t.hasCancellation && loc != t.cancellationLocation {
		points += t.cancellation
	}
	return points
}

// SummarizeAudits reduces sales and audit rows of a period into one row per
// lanid. Rows are matched to employees case-insensitively; lanids that match
// no employee form their own group and never qualify. Audit rows are never
// dropped: a blank lanid lands in its own unassigned group so every deduction
// is counted once. Active employees
// appear even without activity. The result is sorted by lanid.
func SummarizeAudits(employees []model.Employee, sales []model.SalesRecord, audits []model.Audit, table PointTable, p SummaryParams) []dto.AuditSummaryRow {
	groups := make(map[string]*dto.AuditSummaryRow)
	known := make(map[string]bool)

	key := func(lanid string) string { return strings.ToLower(strings.TrimSpace(lanid)) }
	group := func(lanid string) *dto.AuditSummaryRow {
		k := key(lanid)
		row, ok := groups[k]
		if !ok {
			row = &dto.AuditSummaryRow{Lanid: strings.TrimSpace(lanid)}
			groups[k] = row
		}
		return row
	}

	for i := range employees {
		e := &employees[i]
		if e.LanidValue() == "" {
			continue
		}
		row := group(e.LanidValue())
		row.Lanid = e.LanidValue()
		row.EmployeeID = e.EmployeeID
		row.Name = e.FullName()
		row.Department = e.Department
		known[key(e.LanidValue())] = e.Status == model.EmployeeActive
	}

	for i := range sales {
		if key(sales[i].Lanid) == "" || !sales[i].IsDros() {
			continue
		}
		group(sales[i].Lanid).DrosCount++
	}

	for i := range audits {
		a := &audits[i]
		row := group(a.Lanid)
		row.AuditCount++
		if a.DrosCancel {
			row.DrosCancellations++
		}
		row.Deductions += table.Deduction(a)
	}

	out := make([]dto.AuditSummaryRow, 0, len(groups))
	for k, row := range groups {
		active, isEmployee := known[k]
		if isEmployee && !active && row.DrosCount == 0 && row.AuditCount == 0 {
			continue
		}
		row.Points = p.StartingPoints - row.Deductions
		row.Qualified = isEmployee &&
			row.Department != p.ExcludedDepartment &&
			row.DrosCount >= p.Threshold
		out = append(out, *row)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Lanid < out[j].Lanid })
	return out
}
