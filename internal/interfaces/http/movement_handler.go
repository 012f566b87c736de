package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/inventory"
)

// MovementHandler maneja los movimientos de inventario.
type MovementHandler struct {
	register  *inventory.RegisterMovementUseCase
	movements *inventory.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *inventory.RegisterMovementUseCase, movements *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{register: register, movements: movements}
}

// Create godoc
// @Summary      Registrar movimiento de inventario
// @Description  Aplica el movimiento al stock del producto en la misma transacción.
// @Description  Sin empleado en el cuerpo se usa el del usuario autenticado.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movimientos-inventario [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.register.RegisterMovementFromRequest(c.UserContext(), GetEmployeeID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        producto  query  string  false  "ID de producto"
// @Param        tipo      query  string  false  "entrada | salida | ajuste | devolucion"
// @Param        desde     query  string  false  "Fecha inicial (2006-01-02)"
// @Param        hasta     query  string  false  "Fecha final (2006-01-02)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movimientos-inventario [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	in := dto.MovementListRequest{
		Kind:        c.Query("tipo"),
		PageRequest: dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)},
	}
	var err error
	if in.ProductID, err = queryUUID(c, "producto"); err != nil {
		return respondError(c, err)
	}
	if in.From, err = queryTime(c, "desde", false); err != nil {
		return respondError(c, err)
	}
	if in.To, err = queryTime(c, "hasta", true); err != nil {
		return respondError(c, err)
	}
	out, err := h.movements.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.movements.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "movimiento")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar movimiento
// @Description  Cambia los datos registrados; el stock del producto no se recalcula.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movimientos-inventario/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := bindAndValidate(c, &in); err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.movements.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "movimiento")
	}
	return c.JSON(out)
}

// Delete elimina el registro sin revertir el stock.
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.movements.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
