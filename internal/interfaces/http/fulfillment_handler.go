package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/dto"
	"github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment"
	"github.com/jhoicas/warehouse-fulfillment/internal/domain"
	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
)

// Mensajes de respuesta expuestos al cliente.
const (
	msgSuccess            = "Success"
	msgEmptyBody          = "Body must not empty"
	msgEmptyBodyProcedure = "Body is empty"
	msgInvalidRequest     = "Invalid request"
)

// LineQuery consulta líneas de despacho registradas.
type LineQuery interface {
	Get(ctx context.Context, id int) (*fulfillment.LineDetail, error)
	Receipt(ctx context.Context, id int) ([]byte, error)
}

// FulfillmentHandler maneja el despacho de órdenes desde bodega.
type FulfillmentHandler struct {
	inline    fulfillment.Workflow
	procedure fulfillment.Workflow
	lines     LineQuery
	validate  *validator.Validate
	log       *logger.Logger
}

// NewFulfillmentHandler construye el handler.
func NewFulfillmentHandler(inline, procedure fulfillment.Workflow, lines LineQuery, log *logger.Logger) *FulfillmentHandler {
	return &FulfillmentHandler{
		inline:    inline,
		procedure: procedure,
		lines:     lines,
		validate:  newValidator(),
		log:       log.Component("http.fulfillment"),
	}
}

// newValidator reporta los campos con su nombre JSON.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Fulfill godoc
// @Summary      Despachar orden (validación en la aplicación)
// @Description  Valida producto, bodega y orden pendiente, marca la orden como despachada y registra la línea en una sola transacción.
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FulfillOrderRequest  true  "Solicitud de despacho"
// @Success      200   {object}  dto.FulfillOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/warehouse [post]
func (h *FulfillmentHandler) Fulfill(c *fiber.Ctx) error {
	return h.fulfill(c, h.inline, msgEmptyBody)
}

// FulfillProcedure godoc
// @Summary      Despachar orden (función almacenada)
// @Description  Delega validación y escritura a la función add_product_to_warehouse.
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FulfillOrderRequest  true  "Solicitud de despacho"
// @Success      200   {object}  dto.FulfillOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/warehouse/procedure [post]
func (h *FulfillmentHandler) FulfillProcedure(c *fiber.Ctx) error {
	return h.fulfill(c, h.procedure, msgEmptyBodyProcedure)
}

func (h *FulfillmentHandler) fulfill(c *fiber.Ctx, wf fulfillment.Workflow, emptyBody string) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{Message: emptyBody})
	}

	var in dto.FulfillOrderRequest
	if err := c.App().Config().JSONDecoder(body, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{
			Message: msgInvalidRequest,
			Errors:  []string{decodeMessage(err)},
		})
	}
	if err := h.validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.MessageResponse{
			Message: msgInvalidRequest,
			Errors:  validationMessages(err),
		})
	}

	id, err := wf.Fulfill(c.UserContext(), fulfillment.Request{
		ProductID:   *in.IDProduct,
		WarehouseID: *in.IDWarehouse,
		Amount:      *in.Amount,
		CreatedAt:   in.CreatedAt.Time,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.FulfillOrderResponse{Message: msgSuccess, IDProductWarehouse: id})
}

// GetLine godoc
// @Summary      Obtener línea de despacho
// @Tags         warehouse
// @Produce      json
// @Param        id   path  int  true  "ID de la línea"
// @Success      200  {object}  dto.FulfillmentLineResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/{id} [get]
func (h *FulfillmentHandler) GetLine(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id must be a positive integer"})
	}
	detail, err := h.lines.Get(c.UserContext(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.NewFulfillmentLineResponse(detail.Line, detail.Product, detail.Warehouse, detail.Order))
}

// Receipt godoc
// @Summary      Comprobante PDF de la línea de despacho
// @Tags         warehouse
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la línea"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/{id}/receipt [get]
func (h *FulfillmentHandler) Receipt(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id must be a positive integer"})
	}
	pdf, err := h.lines.Receipt(c.UserContext(), id)
	if err != nil {
		return h.writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="despacho-%d.pdf"`, id))
	return c.Send(pdf)
}

// writeError traduce errores de dominio a 400, no encontrado a 404 y el resto a 500.
func (h *FulfillmentHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case domain.IsDomainError(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
	default:
		h.log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("path", c.Path()).
			Msg("fallo interno atendiendo la petición")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
}

// decodeMessage nombra el campo cuando el decodificador lo conoce.
func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return "malformed JSON body"
	}
	if typeErr.Type == reflect.TypeOf(&dto.Timestamp{}) {
		return typeErr.Field + " must be an ISO 8601 date or date-time"
	}
	return typeErr.Field + " has an invalid type"
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out = append(out, fe.Field()+" is required")
		case "gt":
			out = append(out, fe.Field()+" must be greater than "+fe.Param())
		case "lte":
			out = append(out, fe.Field()+" must be less than or equal to "+fe.Param())
		default:
			out = append(out, fe.Field()+" is invalid")
		}
	}
	return out
}
