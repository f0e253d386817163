package department

import (
	"net/http"
	"reflect"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/repository/postgres/department"
)

type Controller struct {
	department Department
}

func NewController(department Department) *Controller {
	return &Controller{department}
}

// department

func (uc Controller) GetList(c *web.Context) error {
	var filter department.Filter

	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.department.GetList(c.Ctx, filter)
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
