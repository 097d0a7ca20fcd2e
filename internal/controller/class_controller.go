package controller

import (
	"errors"

	"classboard-be/internal/dto"
	"classboard-be/internal/pkg/serverutils"
	"classboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IClassController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	MoveClass(ctx *fiber.Ctx) error
}

type classController struct {
	classService service.IClassService
}

func NewClassController(classService service.IClassService) IClassController {
	return &classController{
		classService: classService,
	}
}

func (c *classController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/class/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Put(":id/move", c.MoveClass)
	h.Delete(":id", c.Delete)
}

func (c *classController) GetAll(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.classService.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get classes", res))
}

func (c *classController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateClassRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.classService.Create(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Category not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create class", res))
}

func (c *classController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.classService.Show(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Class not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show class", res))
}

func (c *classController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateClassRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.classService.Update(ctx.Context(), userId, &req); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Class not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success update class", nil))
}

func (c *classController) MoveClass(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.MoveClassRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.classService.MoveClass(ctx.Context(), userId, &req); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Class or category not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success move class", nil))
}

func (c *classController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.classService.Delete(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Class not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete class", nil))
}
