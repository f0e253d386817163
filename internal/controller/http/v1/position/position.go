package position

import (
	"net/http"
	"reflect"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/repository/postgres/position"
)

type Controller struct {
	position Position
}

func NewController(position Position) *Controller {
	return &Controller{position}
}

// position

func (uc Controller) GetList(c *web.Context) error {
	var filter position.Filter

	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if dep, ok := c.GetQueryFunc(reflect.String, "department").(*string); ok {
		filter.Department = dep
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.position.GetList(c.Ctx, filter)
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
