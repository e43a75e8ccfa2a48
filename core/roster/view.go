package roster

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/karames/unilog/core"
)

// Column identifies a sortable roster column.
type Column int

const (
	ColNumber Column = iota
	ColName
	ColMidterm
	ColFinal
	ColAverage
	ColLetter
	ColAbsence
)

var columnNames = map[Column]string{
	ColNumber:  "number",
	ColName:    "name",
	ColMidterm: "midterm",
	ColFinal:   "final",
	ColAverage: "average",
	ColLetter:  "letter",
	ColAbsence: "absence",
}

func (c Column) String() string {
	if name, ok := columnNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColumn maps a wire name to its Column.
func ParseColumn(name string) (Column, error) {
	for c, n := range columnNames {
		if n == core.CleanString(name, true) {
			return c, nil
		}
	}
	return 0, errors.Errorf("unknown roster column %q", name)
}

// comparators returns negative/zero/positive like strings.Compare. Letter
// sorts by rank (AA best), never lexically.
var comparators = map[Column]func(a, b Row) int{
	ColNumber: func(a, b Row) int { return numericNumber(a.Number) - numericNumber(b.Number) },
	ColName: func(a, b Row) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	},
	ColMidterm: func(a, b Row) int {
		return compareFloats(a.Enrollment.Midterm.Float64, b.Enrollment.Midterm.Float64)
	},
	ColFinal: func(a, b Row) int {
		return compareFloats(a.Enrollment.Final.Float64, b.Enrollment.Final.Float64)
	},
	ColAverage: func(a, b Row) int { return compareFloats(a.Metrics.Average, b.Metrics.Average) },
	ColLetter:  func(a, b Row) int { return a.Metrics.Letter.Rank() - b.Metrics.Letter.Rank() },
	ColAbsence: func(a, b Row) int { return a.Enrollment.Absence - b.Enrollment.Absence },
}

func numericNumber(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// View is a teacher's working copy of a roster: the original row order is
// kept aside so clearing a filter restores it exactly. A View is not safe
// for concurrent use; callers serialize access.
type View struct {
	original []Row
	rows     []Row

	column    Column
	ascending bool
	sorted    bool
	search    string
}

// NewView copies the roster rows so later saves or reloads cannot mutate
// an open view.
func NewView(r Roster) *View {
	v := &View{
		original: make([]Row, len(r.Rows)),
		rows:     make([]Row, len(r.Rows)),
	}
	copy(v.original, r.Rows)
	copy(v.rows, r.Rows)
	return v
}

// Sort orders the visible rows by the given column. Sorting the active
// column again toggles direction; a new column starts ascending.
func (v *View) Sort(col Column) {
	if v.sorted && v.column == col {
		v.ascending = !v.ascending
	} else {
		v.column = col
		v.ascending = true
		v.sorted = true
	}
	v.applySort()
}

func (v *View) applySort() {
	cmp := comparators[v.column]
	sort.SliceStable(v.rows, func(i, j int) bool {
		c := cmp(v.rows[i], v.rows[j])
		if v.ascending {
			return c < 0
		}
		return c > 0
	})
}

// Filter narrows the visible rows to those whose name contains the term
// (case-insensitive) or whose number contains it. It always re-derives
// from the original rows, so refining a term never compounds; an empty
// term restores the full roster. An active sort is re-applied in its
// current direction.
func (v *View) Filter(term string) {
	v.search = core.CleanString(term)
	folded := strings.ToLower(v.search)

	if folded == "" {
		v.rows = make([]Row, len(v.original))
		copy(v.rows, v.original)
	} else {
		v.rows = []Row{}
		for _, row := range v.original {
			if strings.Contains(strings.ToLower(row.Name), folded) ||
				strings.Contains(row.Number, v.search) {
				v.rows = append(v.rows, row)
			}
		}
	}

	if v.sorted {
		v.applySort()
	}
}

// Rows returns the visible rows in display order.
func (v *View) Rows() []Row {
	out := make([]Row, len(v.rows))
	copy(out, v.rows)
	return out
}

// Active reports the sort state: column, direction, and whether any sort
// has been applied.
func (v *View) Active() (Column, bool, bool) {
	return v.column, v.ascending, v.sorted
}

// Search returns the active filter term, empty when unfiltered.
func (v *View) Search() string {
	return v.search
}
