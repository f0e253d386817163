package staff

import (
	"net/http"
	"reflect"

	"github.com/pkg/errors"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/repository/postgres/department"
	"staffattendance/backend/internal/repository/postgres/staff"
	"staffattendance/backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Controller struct {
	staff      Staff
	department Department
	sessions   Sessions
}

func NewController(staff Staff, department Department, sessions Sessions) *Controller {
	return &Controller{staff: staff, department: department, sessions: sessions}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter staff.Filter

	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if dep, ok := c.GetQueryFunc(reflect.String, "department").(*string); ok {
		filter.Department = dep
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.staff.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   len(list),
		},
		"success": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.staff.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request staff.CreateRequest

	if err := c.BindFunc(&request, "ID", "Name"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.staff.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusCreated)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request staff.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	response, err := uc.staff.UpdateColumns(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

// Delete removes the staff member with their attendance and login, then
// ends every session that login still holds.
func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.staff.Delete(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	for _, userID := range response.UserIDs {
		if err := uc.sessions.RevokeUser(c.Ctx, userID); err != nil {
			return c.RespondError(web.NewRequestError(errors.Wrap(err, "revoking sessions"), http.StatusInternalServerError))
		}
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

func (uc Controller) Import(c *web.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "file is required"), http.StatusBadRequest))
	}

	file, err := service.OpenSpreadsheet(header)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}
	defer file.Close()

	rows, rejected, err := service.ReadRoster(file)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	requests := make([]staff.CreateRequest, 0, len(rows))
	for i := range rows {
		row := rows[i]
		requests = append(requests, staff.CreateRequest{
			ID:         &row.ID,
			Name:       &row.Name,
			Department: &row.Department,
			Position:   &row.Position,
		})
	}

	response, err := uc.staff.Import(c.Ctx, requests)
	if err != nil {
		return c.RespondError(err)
	}
	response.Rejected = append(response.Rejected, rejected...)

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusOK)
}

// ImportTemplate serves an empty roster workbook with the known departments
// offered as a drop-down.
func (uc Controller) ImportTemplate(c *web.Context) error {
	list, err := uc.department.GetList(c.Ctx, department.Filter{})
	if err != nil {
		return c.RespondError(err)
	}

	names := make([]string, 0, len(list))
	for _, d := range list {
		names = append(names, d.Name)
	}

	body, err := service.RosterTemplate(names)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return c.RespondData(xlsxContentType, "staff_template.xlsx", body)
}

func (uc Controller) GetQrCode(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	size := 256
	if s, ok := c.GetQueryFunc(reflect.Int, "size").(*int); ok {
		size = *s
	}

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}
	if size < 64 || size > 1024 {
		return c.RespondError(web.NewRequestError(errors.New("size must be between 64 and 1024"), http.StatusBadRequest))
	}

	list, err := uc.staff.Badges(c.Ctx, &id)
	if err != nil {
		return c.RespondError(err)
	}

	png, err := service.QRCode(list[0].ID, size)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return c.RespondData("image/png", "", png)
}

func (uc Controller) GetQrCodeList(c *web.Context) error {
	list, err := uc.staff.Badges(c.Ctx, nil)
	if err != nil {
		return c.RespondError(err)
	}

	badges := make([]service.Badge, 0, len(list))
	for _, s := range list {
		badges = append(badges, service.Badge{StaffID: s.ID, Name: s.Name})
	}

	pdf, err := service.BadgeSheet(badges)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return c.RespondData("application/pdf", "staff_qrcodes.pdf", pdf)
}
