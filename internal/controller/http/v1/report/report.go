package report

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/pkg/errors"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/repository/postgres/report"
	service "staffattendance/backend/internal/service/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Controller struct {
	report Report
	now    func() time.Time
}

func NewController(report Report) *Controller {
	return &Controller{report: report, now: time.Now}
}

func (uc Controller) Dashboard(c *web.Context) error {
	date, _ := c.GetQueryFunc(reflect.String, "date").(*string)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.report.Dashboard(c.Ctx, date)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

func (uc Controller) Monthly(c *web.Context) error {
	response, err := uc.monthly(c)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

func (uc Controller) MonthlyExcel(c *web.Context) error {
	response, err := uc.monthly(c)
	if err != nil {
		return c.RespondError(err)
	}

	body, err := service.MonthlyExcel(response)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "rendering workbook"), http.StatusInternalServerError))
	}

	return c.RespondData(xlsxContentType, fileName(response, "xlsx"), body)
}

func (uc Controller) MonthlyPDF(c *web.Context) error {
	response, err := uc.monthly(c)
	if err != nil {
		return c.RespondError(err)
	}

	body, err := service.MonthlyPDF(response)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "rendering pdf"), http.StatusInternalServerError))
	}

	return c.RespondData("application/pdf", fileName(response, "pdf"), body)
}

func (uc Controller) Overview(c *web.Context) error {
	from, _ := c.GetQueryFunc(reflect.String, "from").(*string)
	to, _ := c.GetQueryFunc(reflect.String, "to").(*string)

	var filter report.Filter
	if dep, ok := c.GetQueryFunc(reflect.String, "department").(*string); ok {
		filter.Department = dep
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}
	if from == nil || to == nil {
		return c.RespondError(web.NewRequestError(errors.New("from, to required"), http.StatusBadRequest))
	}

	response, err := uc.report.Overview(c.Ctx, *from, *to, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

// monthly reads ?year=&month=&department= and builds the grid. The month
// defaults to the current one and is zero based.
func (uc Controller) monthly(c *web.Context) (service.Monthly, error) {
	now := uc.now()
	year, month := now.Year(), int(now.Month())-1

	if y, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok {
		year = *y
	}
	if m, ok := c.GetQueryFunc(reflect.Int, "month").(*int); ok {
		month = *m
	}

	var filter report.Filter
	if dep, ok := c.GetQueryFunc(reflect.String, "department").(*string); ok {
		filter.Department = dep
	}

	if err := c.ValidQuery(); err != nil {
		return service.Monthly{}, err
	}

	return uc.report.Monthly(c.Ctx, year, month, filter)
}

func fileName(m service.Monthly, ext string) string {
	return fmt.Sprintf("attendance_%04d_%02d.%s", m.Year, m.Month+1, ext)
}
