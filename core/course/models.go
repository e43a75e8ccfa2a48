package course

import "github.com/volatiletech/null/v8"

// Course is immutable reference data; the catalog is process-wide static
// configuration seeded at enrollment time.
type Course struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Credit      int    `json:"credit"`
	ECTS        int    `json:"ects"`
	WeeklyHours int    `json:"weekly_hours"`
}

// Enrollment is a course as attached to one student. Midterm/Final are null
// until graded; AbsenceLimit is stored per enrollment and is the source of
// truth even when it diverges from the seeding formula.
type Enrollment struct {
	Code          string       `json:"code"`
	Name          string       `json:"name"`
	Credit        int          `json:"credit"`
	ECTS          int          `json:"ects"`
	Midterm       null.Float64 `json:"midterm"`
	Final         null.Float64 `json:"final"`
	ClassAvgMid   float64      `json:"class_avg_mid"`
	ClassAvgFinal float64      `json:"class_avg_final"`
	Absence       int          `json:"absence"`
	AbsenceLimit  int          `json:"absence_limit"`
}

var catalog = []Course{
	{Code: "YBS 301", Name: "Yöneylem Araştırması", Credit: 4, ECTS: 5, WeeklyHours: 4},
	{Code: "YBS 391", Name: "Hukuka Giriş", Credit: 3, ECTS: 4, WeeklyHours: 3},
	{Code: "YBS 305", Name: "Nesneye Dayalı Programlama", Credit: 3, ECTS: 5, WeeklyHours: 3},
	{Code: "YBS 303", Name: "Yazılım Kalite Yönetimi", Credit: 3, ECTS: 4, WeeklyHours: 3},
	{Code: "IYU 325", Name: "İş Yeri Uygulaması", Credit: 3, ECTS: 4, WeeklyHours: 3},
	{Code: "YBS 457", Name: "Web Tabanlı Uygulama Programlama", Credit: 3, ECTS: 4, WeeklyHours: 3},
	{Code: "YBS 309", Name: "Kurumsal Kaynak Planlama", Credit: 3, ECTS: 4, WeeklyHours: 3},
}

// Catalog returns the static course list.
func Catalog() []Course {
	out := make([]Course, len(catalog))
	copy(out, catalog)
	return out
}

// Find looks a course up by code.
func Find(code string) (Course, bool) {
	for _, c := range catalog {
		if c.Code == code {
			return c, true
		}
	}
	return Course{}, false
}
