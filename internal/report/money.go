package report

import "sort"

// Shortfall is one raw payment-shortfall row: what a student owed for a
// month against what was actually paid.
type Shortfall struct {
	SubjectID  string  `json:"user_id"`
	FullName   string  `json:"user_fullname"`
	GroupID    string  `json:"user_groupId"`
	Month      string  `json:"payment_month"`
	MonthlyFee float64 `json:"student_monthlyFee"`
	Paid       float64 `json:"payment_quantity"`
}

// Debt is the per-subject rollup of shortfalls.
type Debt struct {
	SubjectID string             `json:"user_id"`
	FullName  string             `json:"user_fullname"`
	GroupID   string             `json:"user_groupId"`
	Total     float64            `json:"debtSum"`
	ByMonth   map[string]float64 `json:"debts"`
}

// Debts groups shortfalls by subject, summing monthlyFee - paid into a
// total and a per-month breakdown. Output is sorted by full name for
// stable rendering.
func Debts(shortfalls []Shortfall) []Debt {
	byID := make(map[string]*Debt)
	for _, s := range shortfalls {
		d, ok := byID[s.SubjectID]
		if !ok {
			d = &Debt{
				SubjectID: s.SubjectID,
				FullName:  s.FullName,
				GroupID:   s.GroupID,
				ByMonth:   make(map[string]float64),
			}
			byID[s.SubjectID] = d
		}
		owing := s.MonthlyFee - s.Paid
		d.Total += owing
		d.ByMonth[s.Month] += owing
	}

	out := make([]Debt, 0, len(byID))
	for _, d := range byID {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].SubjectID < out[j].SubjectID
	})
	return out
}

// PaymentLine is one manually entered salary payment. Lines keep their
// document coordinates (DocID, LogIndex) so a single payment can be
// corrected later without rebuilding the group.
type PaymentLine struct {
	TeacherID   string  `json:"teacherId"`
	FullName    string  `json:"teacher_fullname"`
	Month       string  `json:"paymentMonth"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	DocID       string  `json:"docId"`
	LogIndex    int     `json:"logIndex"`
	PaymentType string  `json:"paymentType"`
}

// SalaryGroup aggregates the payments of one teacher for one month.
type SalaryGroup struct {
	TeacherID string        `json:"teacherId"`
	FullName  string        `json:"teacher_fullname"`
	Month     string        `json:"paymentMonth"`
	Count     int           `json:"count"`
	Total     float64       `json:"total"`
	Lines     []PaymentLine `json:"payments"`
}

// SalarySummary is the grouped view plus the grand total across groups.
type SalarySummary struct {
	Groups []SalaryGroup `json:"rows"`
	Grand  float64       `json:"grand"`
}

// Salaries groups payment lines by (teacher, month). Lines within a
// group are newest first; dates are ISO strings so ordering is lexical.
func Salaries(lines []PaymentLine) SalarySummary {
	type key struct{ teacherID, month string }
	byKey := make(map[key]*SalaryGroup)
	for _, l := range lines {
		k := key{l.TeacherID, l.Month}
		g, ok := byKey[k]
		if !ok {
			g = &SalaryGroup{TeacherID: l.TeacherID, FullName: l.FullName, Month: l.Month}
			byKey[k] = g
		}
		g.Count++
		g.Total += l.Amount
		g.Lines = append(g.Lines, l)
	}

	var sum SalarySummary
	for _, g := range byKey {
		sort.Slice(g.Lines, func(i, j int) bool { return g.Lines[i].Date > g.Lines[j].Date })
		sum.Groups = append(sum.Groups, *g)
		sum.Grand += g.Total
	}
	sort.Slice(sum.Groups, func(i, j int) bool {
		if sum.Groups[i].FullName != sum.Groups[j].FullName {
			return sum.Groups[i].FullName < sum.Groups[j].FullName
		}
		return sum.Groups[i].Month < sum.Groups[j].Month
	})
	return sum
}
