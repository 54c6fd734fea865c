package service

import (
	"testing"

	"github.com/sammyTGR/tgr-sub005/internal/model"
)

func lanidEmployee(id int, name, dept, lanid, status string) model.Employee {
	return model.Employee{EmployeeID: id, Name: name, Department: dept, Lanid: &lanid, Status: status}
}

func drosSale(lanid, date string) model.SalesRecord {
	return model.SalesRecord{Lanid: lanid, SaleDate: day(date), SubcategoryLabel: "Dealer Sale"}
}

func TestPointTable_Deduction(t *testing.T) {
	table := NewPointTable([]model.PointRule{
		{Category: "form", ErrorLocation: "Purchaser Info", PointsDeducted: 5},
		{Category: model.DrosCancellationCategory, ErrorLocation: "DROS Cancellation", PointsDeducted: 10},
	})

	cases := []struct {
		name  string
		audit model.Audit
		want  int
	}{
		{"known location", model.Audit{ErrorLocation: "Purchaser Info"}, 5},
		{"unknown location", model.Audit{ErrorLocation: "Elsewhere"}, 0},
		{"cancellation adds charge", model.Audit{ErrorLocation: "Purchaser Info", DrosCancel: true}, 15},
		{"cancellation without location", model.Audit{DrosCancel: true}, 10},
		{"cancellation location charged once", model.Audit{ErrorLocation: "DROS Cancellation", DrosCancel: true}, 10},
		{"cancellation location without flag", model.Audit{ErrorLocation: "DROS Cancellation"}, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := table.Deduction(&tc.audit); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestSummarizeAudits(t *testing.T) {
	employees := []model.Employee{
		lanidEmployee(1, "Abe", "Sales", "ABE1", model.EmployeeActive),
		lanidEmployee(2, "Bo", "Operations", "bo2", model.EmployeeActive),
		lanidEmployee(3, "Cy", "Sales", "cy3", model.EmployeeInactive),
		lanidEmployee(4, "Di", "Sales", "di4", model.EmployeeInactive),
	}
	var sales []model.SalesRecord
	for i := 0; i < 3; i++ {
		sales = append(sales, drosSale("abe1", "2024-03-01"))
		sales = append(sales, drosSale("BO2", "2024-03-01"))
	}
	sales = append(sales,
		model.SalesRecord{Lanid: "ABE1", SaleDate: day("2024-03-01")}, // not a DROS line
		drosSale("ghost", "2024-03-02"),
		drosSale("ghost", "2024-03-02"),
		drosSale("ghost", "2024-03-02"),
		drosSale("", "2024-03-02"),
		drosSale("di4", "2024-03-02"),
	)
	audits := []model.Audit{
		{Lanid: "abe1", ErrorLocation: "Purchaser Info"},
		{Lanid: "ABE1", ErrorLocation: "Firearm Info", DrosCancel: true},
	}
	table := NewPointTable([]model.PointRule{
		{Category: "form", ErrorLocation: "Purchaser Info", PointsDeducted: 5},
		{Category: "form", ErrorLocation: "Firearm Info", PointsDeducted: 3},
		{Category: model.DrosCancellationCategory, ErrorLocation: "DROS Cancellation", PointsDeducted: 10},
	})

	rows := SummarizeAudits(employees, sales, audits, table, SummaryParams{
		StartingPoints: 300, Threshold: 3, ExcludedDepartment: "Operations",
	})

	// ABE1, bo2, di4, ghost; cy3 is inactive with no activity
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d: %+v", len(rows), rows)
	}
	byLanid := map[string]int{}
	for i, r := range rows {
		byLanid[r.Lanid] = i
	}
	if _, ok := byLanid["cy3"]; ok {
		t.Error("inactive employee without activity should be omitted")
	}

	abe := rows[byLanid["ABE1"]]
	if abe.DrosCount != 3 || abe.AuditCount != 2 || abe.DrosCancellations != 1 {
		t.Errorf("abe counts wrong: %+v", abe)
	}
	if abe.Deductions != 18 || abe.Points != 282 {
		t.Errorf("abe expected 18 deducted / 282 points, got %d / %d", abe.Deductions, abe.Points)
	}
	if !abe.Qualified {
		t.Error("abe should qualify")
	}

	if bo := rows[byLanid["bo2"]]; bo.Qualified || bo.DrosCount != 3 {
		t.Errorf("excluded department must not qualify: %+v", bo)
	}
	if ghost := rows[byLanid["ghost"]]; ghost.Qualified || ghost.EmployeeID != 0 || ghost.DrosCount != 3 {
		t.Errorf("unknown lanid must be its own non-qualifying group: %+v", ghost)
	}
	if di := rows[byLanid["di4"]]; di.DrosCount != 1 || di.Qualified {
		t.Errorf("inactive employee with activity should appear unqualified: %+v", di)
	}

	for i := 1; i < len(rows); i++ {
		if rows[i-1].Lanid > rows[i].Lanid {
			t.Errorf("rows not sorted by lanid: %q before %q", rows[i-1].Lanid, rows[i].Lanid)
		}
	}
}

func TestSummarizeAudits_DeductionsAddUp(t *testing.T) {
	employees := []model.Employee{
		lanidEmployee(1, "Abe", "Sales", "abe1", model.EmployeeActive),
		lanidEmployee(2, "Bo", "Sales", "bo2", model.EmployeeActive),
	}
	audits := []model.Audit{
		{Lanid: "ABE1", ErrorLocation: "Purchaser Info"},
		{Lanid: "abe1", ErrorLocation: "Firearm Info", DrosCancel: true},
		{Lanid: "bo2", ErrorLocation: "DROS Cancellation", DrosCancel: true},
		{Lanid: "ghost", ErrorLocation: "Purchaser Info"},
		{Lanid: "   ", ErrorLocation: "Firearm Info"},
	}
	table := NewPointTable([]model.PointRule{
		{Category: "form", ErrorLocation: "Purchaser Info", PointsDeducted: 5},
		{Category: "form", ErrorLocation: "Firearm Info", PointsDeducted: 7},
		{Category: model.DrosCancellationCategory, ErrorLocation: "DROS Cancellation", PointsDeducted: 10},
	})

	want := 0
	for i := range audits {
		want += table.Deduction(&audits[i])
	}

	rows := SummarizeAudits(employees, nil, audits, table, SummaryParams{StartingPoints: 300, Threshold: 20})
	got, audited := 0, 0
	for _, r := range rows {
		got += r.Deductions
		audited += r.AuditCount
	}
	if got != want {
		t.Errorf("summed deductions %d, expected %d", got, want)
	}
	if audited != len(audits) {
		t.Errorf("expected every audit row counted once, got %d of %d", audited, len(audits))
	}
	for _, r := range rows {
		if r.Lanid == "" && r.Qualified {
			t.Error("unassigned group must never qualify")
		}
	}
}

func TestSummarizeAudits_ThresholdBoundary(t *testing.T) {
	employees := []model.Employee{
		lanidEmployee(1, "Abe", "Sales", "abe1", model.EmployeeActive),
		lanidEmployee(2, "Bo", "Sales", "bo2", model.EmployeeActive),
	}
	var sales []model.SalesRecord
	for i := 0; i < 19; i++ {
		sales = append(sales, drosSale("abe1", "2024-03-01"))
	}
	for i := 0; i < 20; i++ {
		sales = append(sales, drosSale("bo2", "2024-03-01"))
	}

	rows := SummarizeAudits(employees, sales, nil, NewPointTable(nil), SummaryParams{
		StartingPoints: 300, Threshold: 20, ExcludedDepartment: "Operations",
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Lanid != "abe1" || rows[0].DrosCount != 19 || rows[0].Qualified {
		t.Errorf("19 DROS must not qualify: %+v", rows[0])
	}
	if rows[1].Lanid != "bo2" || rows[1].DrosCount != 20 || !rows[1].Qualified {
		t.Errorf("20 DROS must qualify: %+v", rows[1])
	}
}
