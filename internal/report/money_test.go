package report

import "testing"

func TestDebts(t *testing.T) {
	shortfalls := []Shortfall{
		{SubjectID: "s1", FullName: "Ali Valiyev", GroupID: "g1", Month: "01", MonthlyFee: 500000, Paid: 300000},
		{SubjectID: "s1", FullName: "Ali Valiyev", GroupID: "g1", Month: "02", MonthlyFee: 500000, Paid: 500000},
		{SubjectID: "s1", FullName: "Ali Valiyev", GroupID: "g1", Month: "02", MonthlyFee: 500000, Paid: 400000},
		{SubjectID: "s2", FullName: "Aziza Toshova", GroupID: "g1", Month: "01", MonthlyFee: 400000, Paid: 0},
	}

	debts := Debts(shortfalls)
	if len(debts) != 2 {
		t.Fatalf("got %d debts, want 2", len(debts))
	}

	ali := debts[0]
	if ali.SubjectID != "s1" {
		t.Fatalf("expected Ali first (sorted by name), got %+v", ali)
	}
	if ali.Total != 300000 {
		t.Errorf("Total = %v, want 300000", ali.Total)
	}
	if ali.ByMonth["01"] != 200000 {
		t.Errorf("ByMonth[01] = %v, want 200000", ali.ByMonth["01"])
	}
	// Two February rows sum: (500000-500000) + (500000-400000).
	if ali.ByMonth["02"] != 100000 {
		t.Errorf("ByMonth[02] = %v, want 100000", ali.ByMonth["02"])
	}

	if debts[1].Total != 400000 {
		t.Errorf("Aziza total = %v, want 400000", debts[1].Total)
	}
}

func TestDebtsEmpty(t *testing.T) {
	if got := Debts(nil); len(got) != 0 {
		t.Errorf("Debts(nil) = %v, want empty", got)
	}
}

func TestSalaries(t *testing.T) {
	lines := []PaymentLine{
		{TeacherID: "t1", FullName: "Aziz Karimov", Month: "2024-03", Amount: 1000000, Date: "2024-03-05", DocID: "d1", LogIndex: 0},
		{TeacherID: "t1", FullName: "Aziz Karimov", Month: "2024-03", Amount: 500000, Date: "2024-03-20", DocID: "d1", LogIndex: 1},
		{TeacherID: "t1", FullName: "Aziz Karimov", Month: "2024-04", Amount: 700000, Date: "2024-04-02", DocID: "d2", LogIndex: 0},
		{TeacherID: "t2", FullName: "Dil Yusupova", Month: "2024-03", Amount: 900000, Date: "2024-03-10", DocID: "d3", LogIndex: 0},
	}

	sum := Salaries(lines)
	if len(sum.Groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(sum.Groups))
	}
	if sum.Grand != 3100000 {
		t.Errorf("Grand = %v, want 3100000", sum.Grand)
	}

	g := sum.Groups[0]
	if g.TeacherID != "t1" || g.Month != "2024-03" {
		t.Fatalf("first group = %+v, want t1/2024-03", g)
	}
	if g.Count != 2 || g.Total != 1500000 {
		t.Errorf("group = %+v", g)
	}
	// Newest first within a group.
	if g.Lines[0].Date != "2024-03-20" || g.Lines[1].Date != "2024-03-05" {
		t.Errorf("lines not sorted newest first: %+v", g.Lines)
	}
	// Each line keeps its document coordinates for later correction.
	if g.Lines[0].DocID != "d1" || g.Lines[0].LogIndex != 1 {
		t.Errorf("line coordinates lost: %+v", g.Lines[0])
	}
}
