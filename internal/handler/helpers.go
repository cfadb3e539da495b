package handler

import (
	"net/http"
	"reflect"
	"strconv"

	"github.com/lturcios/turicash-backend/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Teach the validator to compare decimal.Decimal values so min/gt tags
	// work on money fields.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// bindAndValidate decodes the JSON body into dst and runs struct validation.
// On failure it writes the 400 response itself and returns false.
func bindAndValidate(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Response{Error: "Cuerpo de la peticion invalido"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Response{Error: "Datos invalidos: " + err.Error()})
		return false
	}
	return true
}

// respondError is the single exit point for service failures.
func respondError(c *gin.Context, err error) {
	status, resp := apierror.Envelope(err)
	c.JSON(status, resp)
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, apierror.Response{Error: "ID invalido"})
		return 0, false
	}
	return uint(id), true
}
