package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los detalles usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	// decimal.Decimal se valida como número: gte=0, gt=0.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validationDetails campo -> regla incumplida. nil si el struct es válido.
func validationDetails(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}
	details := make(map[string]string, len(verrs))
	for _, e := range verrs {
		field := strings.TrimPrefix(e.Namespace(), strings.SplitN(e.Namespace(), ".", 2)[0]+".")
		details[field] = describeRule(e)
	}
	return details
}

func describeRule(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_without", "required_without_all":
		return "required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "min":
		return "min " + e.Param()
	case "max":
		return "max " + e.Param()
	case "nefield":
		return "must differ from " + e.Param()
	case "gte":
		if e.Param() == "0" {
			return "must_not_be_negative"
		}
		return "gte " + e.Param()
	case "gt":
		if e.Param() == "0" {
			return "must_be_positive"
		}
		return "gt " + e.Param()
	default:
		return e.Tag()
	}
}

// parseBody decodifica y valida el body. Si falla ya escribió la respuesta y ok es false.
func parseBody(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badBody(c)
	}
	return checkStruct(c, out)
}

// parseQuery igual que parseBody para query strings.
func parseQuery(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	return checkStruct(c, out)
}

func checkStruct(c *fiber.Ctx, out interface{}) (bool, error) {
	if details := validationDetails(out); details != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: details,
		})
	}
	return true, nil
}
