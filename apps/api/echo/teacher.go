package echoapi

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/karames/unilog/core"
	"github.com/karames/unilog/core/course"
	"github.com/karames/unilog/core/roster"
	"github.com/karames/unilog/core/teacher"
)

type (
	// SortState reports the view's active ordering.
	SortState struct {
		Column    string `json:"column"`
		Ascending bool   `json:"ascending"`
		Active    bool   `json:"active"`
	}

	RosterResponse struct {
		Rows   []roster.Row `json:"rows"`
		Stats  roster.Stats `json:"stats"`
		Sort   SortState    `json:"sort"`
		Search string       `json:"search"`
	}

	TeacherPanel struct {
		Teacher teacher.Teacher `json:"teacher"`
		Course  course.Course   `json:"course"`
		Roster  RosterResponse  `json:"roster"`
	}
)

// viewSession pairs a teacher's working view with the stats of the roster
// it was built from.
type viewSession struct {
	view  *roster.View
	stats roster.Stats
}

// teacherApi keeps one roster view per logged-in teacher so sort and
// filter requests operate on the state the panel last showed. Loading the
// panel resets the view.
type teacherApi struct {
	deps ServerDeps

	mu    sync.Mutex
	views map[string]*viewSession
}

func registerTeacherAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := teacherApi{
		deps:  deps,
		views: make(map[string]*viewSession),
	}

	tg := g.Group("/teacher", jwt, roleMiddleware(roleTeacher))
	tg.GET("/panel", api.panel)
	tg.POST("/roster/sort", api.sort)
	tg.POST("/roster/filter", api.filter)
	tg.PUT("/grades", api.saveGrades)
	tg.GET("/roster/export", api.export)
}

// buildRoster projects the course roster from the store. A fetch failure
// degrades to an empty roster so the panel still renders.
func (api *teacherApi) buildRoster(ctx echo.Context, courseCode string) roster.Roster {
	students, err := api.deps.StudentSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		api.deps.Logger.Error(fmt.Sprintf("querying students for roster: %v", err), err)
		students = nil
	}
	return roster.Project(courseCode, students)
}

func (api *teacherApi) viewFor(ctx echo.Context, claims Claims, reset bool) *viewSession {
	api.mu.Lock()
	defer api.mu.Unlock()

	sess, ok := api.views[claims.Subject]
	if reset || !ok {
		r := api.buildRoster(ctx, claims.Course)
		sess = &viewSession{view: roster.NewView(r), stats: r.Stats}
		api.views[claims.Subject] = sess
	}
	return sess
}

func rosterResponse(sess *viewSession) RosterResponse {
	v := sess.view
	col, asc, active := v.Active()
	state := SortState{Ascending: asc, Active: active}
	if active {
		state.Column = col.String()
	}
	return RosterResponse{
		Rows:   v.Rows(),
		Stats:  sess.stats,
		Sort:   state,
		Search: v.Search(),
	}
}

func (api *teacherApi) panel(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	t, err := api.deps.TeacherSvc.GetByID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		if errors.Cause(err) == teacher.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding teacher by ID")
	}

	c, _ := course.Find(t.Course)
	sess := api.viewFor(ctx, claims, true)

	return ctx.JSON(http.StatusOK, TeacherPanel{
		Teacher: t,
		Course:  c,
		Roster:  rosterResponse(sess),
	})
}

func (api *teacherApi) sort(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data SortRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SortRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}
	col, err := roster.ParseColumn(data.Column)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "column", Error: err.Error()})
	}

	sess := api.viewFor(ctx, claims, false)
	sess.view.Sort(col)
	return ctx.JSON(http.StatusOK, rosterResponse(sess))
}

func (api *teacherApi) filter(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data FilterRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FilterRequest")
	}

	sess := api.viewFor(ctx, claims, false)
	sess.view.Filter(data.Search)
	return ctx.JSON(http.StatusOK, rosterResponse(sess))
}

func (api *teacherApi) saveGrades(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data SaveGradesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveGradesRequest")
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	res, err := api.deps.StudentSvc.SaveGrades(ctx.Request().Context(), claims.Course, data.Grades)
	if err != nil {
		return errors.Wrap(err, "saving grades")
	}

	// drop the stale view; the next panel load re-projects
	api.mu.Lock()
	delete(api.views, claims.Subject)
	api.mu.Unlock()

	return ctx.JSON(http.StatusOK, res)
}

var exportHeader = []string{"Number", "Name", "Midterm", "Final", "Average", "Letter", "Status", "Absence", "Absence Limit"}

func (api *teacherApi) export(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	sess := api.viewFor(ctx, claims, false)
	rows := sess.view.Rows()

	f := excelize.NewFile()
	sheet := "Roster"
	index := f.NewSheet(sheet)
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return errors.Wrapf(err, "writing header cell %s", cell)
		}
	}
	if styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		end, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
		_ = f.SetCellStyle(sheet, "A1", end, styleID)
	}

	for i, row := range rows {
		values := []interface{}{
			row.Number,
			row.Name,
			row.Enrollment.Midterm.Float64,
			row.Enrollment.Final.Float64,
			row.Metrics.Average,
			string(row.Metrics.Letter),
			string(row.Metrics.Status),
			row.Enrollment.Absence,
			row.Enrollment.AbsenceLimit,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return errors.Wrapf(err, "writing cell %s", cell)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return errors.Wrap(err, "writing workbook")
	}

	filename := fmt.Sprintf("roster_%s.xlsx", core.CleanString(claims.Course, true))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
