package web

import (
	"context"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New()

// Context carries the gin context together with the request scoped
// context.Context that middleware enriches (claims, deadlines).
type Context struct {
	*gin.Context
	Ctx context.Context

	queryErrs []string
	paramErrs []string
}

func NewContext(gc *gin.Context) *Context {
	return &Context{Context: gc, Ctx: gc.Request.Context()}
}

// Respond writes data as JSON with the given status.
func (c *Context) Respond(data interface{}, status int) error {
	if status == http.StatusNoContent || data == nil {
		c.Status(status)
		return nil
	}

	c.JSON(status, data)
	return nil
}

// RespondData writes a raw body, used for file exports.
func (c *Context) RespondData(contentType, fileName string, body []byte) error {
	if fileName != "" {
		c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	}
	c.Data(http.StatusOK, contentType, body)
	return nil
}

// RespondError answers with the error envelope. Client errors are fully
// handled here; server errors are also returned so the App can log them.
func (c *Context) RespondError(err error) error {
	status := StatusOf(err)

	c.AbortWithStatusJSON(status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})

	if status >= http.StatusInternalServerError {
		return err
	}
	return nil
}

// BindFunc binds the request body (or query for GET) into data, then checks
// that every named field is set and runs the `validate` struct tags.
// Field names may be given separately or comma separated.
func (c *Context) BindFunc(data interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(data); err != nil && !errors.Is(err, io.EOF) {
		return NewRequestError(errors.Wrap(err, "binding request"), http.StatusBadRequest)
	}

	if err := Required(data, requiredFields...); err != nil {
		return err
	}

	if err := validate.Struct(data); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, strings.ToLower(fe.Field())+" is invalid")
			}
			return NewRequestError(errors.New(strings.Join(msgs, ", ")), http.StatusBadRequest)
		}
		return NewRequestError(errors.Wrap(err, "validating request"), http.StatusBadRequest)
	}

	return nil
}

// GetQueryFunc returns a pointer to the parsed query value (*int, *bool or
// *string), or nil when the parameter is absent. Parse failures are collected
// and reported by ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return nil
	}

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, name+" must be a number")
			return nil
		}
		return &v
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, name+" must be a boolean")
			return nil
		}
		return &v
	case reflect.String:
		return &value
	}

	return nil
}

func (c *Context) ValidQuery() error {
	if len(c.queryErrs) > 0 {
		return NewRequestError(errors.New(strings.Join(c.queryErrs, ", ")), http.StatusBadRequest)
	}
	return nil
}

// GetParam returns the path parameter as int or string. An int parameter that
// does not parse yields 0 and is reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrs = append(c.paramErrs, name+" must be a number")
			return 0
		}
		return v
	default:
		if strings.TrimSpace(value) == "" {
			c.paramErrs = append(c.paramErrs, name+" is required")
		}
		return value
	}
}

func (c *Context) ValidParam() error {
	if len(c.paramErrs) > 0 {
		return NewRequestError(errors.New(strings.Join(c.paramErrs, ", ")), http.StatusBadRequest)
	}
	return nil
}

// Required reports a 400 error naming every listed struct field that is empty.
// Nil pointers and blank strings count as empty; a non-nil *bool does not.
func Required(data interface{}, fields ...string) error {
	v := reflect.Indirect(reflect.ValueOf(data))
	if v.Kind() != reflect.Struct {
		return nil
	}
	t := v.Type()

	var missing []string
	for _, group := range fields {
		for _, name := range strings.Split(group, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			sf, ok := t.FieldByName(name)
			if !ok {
				continue
			}
			if isEmpty(v.FieldByIndex(sf.Index)) {
				missing = append(missing, jsonName(sf))
			}
		}
	}

	if len(missing) > 0 {
		return NewRequestError(errors.Errorf("%s required", strings.Join(missing, ", ")), http.StatusBadRequest)
	}
	return nil
}

func isEmpty(v reflect.Value) bool {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return true
		}
		v = v.Elem()
		if v.Kind() != reflect.String {
			return false
		}
	}
	if v.Kind() == reflect.String {
		return strings.TrimSpace(v.String()) == ""
	}
	return v.IsZero()
}

func jsonName(sf reflect.StructField) string {
	tag := strings.Split(sf.Tag.Get("json"), ",")[0]
	if tag == "" || tag == "-" {
		return sf.Name
	}
	return tag
}
