package holiday

import (
	"net/http"
	"reflect"

	"github.com/pkg/errors"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/repository/postgres/holiday"
)

type Controller struct {
	holiday Holiday
}

func NewController(holiday Holiday) *Controller {
	return &Controller{holiday}
}

// GetList returns every declared holiday, or those between from and to when
// both are given.
func (uc Controller) GetList(c *web.Context) error {
	from, _ := c.GetQueryFunc(reflect.String, "from").(*string)
	to, _ := c.GetQueryFunc(reflect.String, "to").(*string)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}
	if (from == nil) != (to == nil) {
		return c.RespondError(web.NewRequestError(errors.New("from and to must be given together"), http.StatusBadRequest))
	}

	var (
		list []entity.Holiday
		err  error
	)
	if from != nil {
		list, err = uc.holiday.GetRange(c.Ctx, *from, *to)
	} else {
		list, err = uc.holiday.GetList(c.Ctx)
	}
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    list,
		"success": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request holiday.CreateRequest

	if err := c.BindFunc(&request, "Date"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.holiday.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"success": true,
	}, http.StatusCreated)
}

func (uc Controller) Delete(c *web.Context) error {
	var request holiday.DeleteRequest

	if err := c.BindFunc(&request, "Date"); err != nil {
		return c.RespondError(err)
	}

	if err := uc.holiday.Delete(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
	}, http.StatusOK)
}
