package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-bot/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar el nombre JSON del campo (product_id) en lugar del de Go (ProductID).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON y aplica los tags validate del DTO.
// Si falla ya respondió 400 y devuelve errBodyRejected (o el error de escritura).
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		if werr := badRequest(c, "INVALID_BODY", "cuerpo inválido"); werr != nil {
			return werr
		}
		return errBodyRejected
	}
	if err := validate.Struct(out); err != nil {
		if werr := badRequest(c, "VALIDATION", validationMessage(err)); werr != nil {
			return werr
		}
		return errBodyRejected
	}
	return nil
}

// errBodyRejected la respuesta 400 ya fue escrita; el handler solo debe retornar nil.
var errBodyRejected = errors.New("body rechazado")

// rejected convierte el resultado de parseBody en el retorno del handler.
func rejected(err error) error {
	if errors.Is(err, errBodyRejected) {
		return nil
	}
	return err
}

// validationMessage resume los campos inválidos: "product_id: uuid; quantity: min".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// pagination lee limit/offset: limit por defecto 20, máximo 100.
func pagination(c *fiber.Ctx) (int, int) {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	return page.Limit, page.Offset
}
