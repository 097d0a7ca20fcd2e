package controller

import (
	"errors"

	"classboard-be/internal/dto"
	"classboard-be/internal/pkg/serverutils"
	"classboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILessonController interface {
	RegisterRoutes(r fiber.Router)
	GetByClass(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	MoveLesson(ctx *fiber.Ctx) error
}

type lessonController struct {
	lessonService service.ILessonService
}

func NewLessonController(lessonService service.ILessonService) ILessonController {
	return &lessonController{
		lessonService: lessonService,
	}
}

func (c *lessonController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lesson/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("class/:classId", c.GetByClass)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Put(":id/move", c.MoveLesson)
	h.Delete(":id", c.Delete)
}

func (c *lessonController) GetByClass(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	classId, _ := uuid.Parse(ctx.Params("classId"))

	res, err := c.lessonService.GetByClass(ctx.Context(), userId, classId)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Class not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get lessons", res))
}

func (c *lessonController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateLessonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.lessonService.Create(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Class or folder not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create lesson", res))
}

func (c *lessonController) Show(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.lessonService.Show(ctx.Context(), userId, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Lesson not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show lesson", res))
}

func (c *lessonController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateLessonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.lessonService.Update(ctx.Context(), userId, &req); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Lesson not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success update lesson", nil))
}

func (c *lessonController) MoveLesson(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.MoveLessonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.lessonService.MoveLesson(ctx.Context(), userId, &req); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Lesson or folder not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success move lesson", nil))
}

func (c *lessonController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.lessonService.Delete(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Lesson not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete lesson", nil))
}
