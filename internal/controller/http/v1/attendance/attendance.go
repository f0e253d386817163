package attendance

import (
	"net/http"
	"reflect"
	"time"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/repository/postgres/attendance"
	"staffattendance/backend/internal/service/calendar"
)

type Controller struct {
	attendance Attendance
	now        func() time.Time
}

func NewController(attendance Attendance) *Controller {
	return &Controller{attendance: attendance, now: time.Now}
}

// GetByDate answers {staffId: status} for the day, today when no date is given.
func (uc Controller) GetByDate(c *web.Context) error {
	date := calendar.Format(uc.now())
	if d, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		date = *d
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.GetByDate(c.Ctx, date)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

// GetMonth answers {date: {staffId: status}}. month is 0-11.
func (uc Controller) GetMonth(c *web.Context) error {
	year, month, err := uc.yearMonth(c)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.GetMonth(c.Ctx, year, month)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

func (uc Controller) Mark(c *web.Context) error {
	var request attendance.MarkRequest

	if err := c.BindFunc(&request, "StaffID", "Date", "Status"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.Mark(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

func (uc Controller) Bulk(c *web.Context) error {
	var request attendance.BulkRequest

	if err := c.BindFunc(&request, "Date", "Status"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.Bulk(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	var request attendance.DeleteRequest

	if err := c.BindFunc(&request, "StaffID", "Date"); err != nil {
		return c.RespondError(err)
	}

	if err := uc.attendance.Delete(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
	}, http.StatusOK)
}

func (uc Controller) MyReport(c *web.Context) error {
	year, month, err := uc.yearMonth(c)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.MyReport(c.Ctx, year, month)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

// yearMonth reads ?year=&month=, defaulting to the current month.
func (uc Controller) yearMonth(c *web.Context) (int, int, error) {
	now := uc.now()
	year, month := now.Year(), int(now.Month())-1

	if y, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok {
		year = *y
	}
	if m, ok := c.GetQueryFunc(reflect.Int, "month").(*int); ok {
		month = *m
	}

	if err := c.ValidQuery(); err != nil {
		return 0, 0, err
	}

	return year, month, nil
}
