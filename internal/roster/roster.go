package roster

// Teacher is a roster entry as served by the school backend. Schedule
// maps Uzbek weekday names to the number of lessons the teacher gives on
// that day; Price is the per-lesson rate used for the derived daily wage.
type Teacher struct {
	ID         string             `json:"_id"`
	EmployeeNo string             `json:"employeeNo"`
	FirstName  string             `json:"firstName"`
	LastName   string             `json:"lastName"`
	Price      float64            `json:"price"`
	Schedule   map[string]float64 `json:"schedule"`
}

// FullName returns the display name used in notifications.
func (t Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

// DailySum is the derived wage for a schedule day: scheduled lessons for
// that weekday times the per-lesson price. Unknown weekdays count zero.
func (t Teacher) DailySum(weekday string) float64 {
	return t.Schedule[weekday] * t.Price
}

// Student is a roster entry for a student.
type Student struct {
	ID         string `json:"_id"`
	EmployeeNo string `json:"employeeNo"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
}

// FullName returns the display name used in notifications.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Kind tells which roster a scan resolved against.
type Kind int

const (
	Unmatched Kind = iota
	TeacherMatch
	StudentMatch
)

func (k Kind) String() string {
	switch k {
	case TeacherMatch:
		return "teacher"
	case StudentMatch:
		return "student"
	}
	return "unmatched"
}

// Match is the result of resolving an employeeNo. Exactly one of Teacher
// or Student is set for a matched kind.
type Match struct {
	Kind    Kind
	Teacher *Teacher
	Student *Student
}
