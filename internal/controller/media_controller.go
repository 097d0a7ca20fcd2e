package controller

import (
	"errors"

	"classboard-be/internal/dto"
	"classboard-be/internal/pkg/serverutils"
	"classboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMediaController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	RegisterLink(ctx *fiber.Ctx) error
	GetByLesson(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type mediaController struct {
	mediaService service.IMediaService
}

func NewMediaController(mediaService service.IMediaService) IMediaController {
	return &mediaController{
		mediaService: mediaService,
	}
}

func (c *mediaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/media/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("lesson/:lessonId", c.GetByLesson)
	h.Post("upload", c.Upload)
	h.Post("link", c.RegisterLink)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *mediaController) Upload(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	lessonId, err := uuid.Parse(ctx.FormValue("lesson_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing lesson_id"))
	}
	mediaType := ctx.FormValue("type")

	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing file"))
	}

	res, err := c.mediaService.Upload(ctx.Context(), userId, lessonId, mediaType, file)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Lesson not found"))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload media", res))
}

func (c *mediaController) RegisterLink(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.RegisterLinkMediaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mediaService.RegisterLink(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Lesson not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success register link", res))
}

func (c *mediaController) GetByLesson(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	lessonId, _ := uuid.Parse(ctx.Params("lessonId"))

	res, err := c.mediaService.GetByLesson(ctx.Context(), userId, lessonId)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Lesson not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get media", res))
}

func (c *mediaController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateMediaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.mediaService.Update(ctx.Context(), userId, &req); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Media not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success update media", nil))
}

func (c *mediaController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.mediaService.Delete(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Media not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete media", nil))
}
