package controller

import (
	"errors"

	"classboard-be/internal/dto"
	"classboard-be/internal/pkg/serverutils"
	"classboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFolderController interface {
	RegisterRoutes(r fiber.Router)
	GetByClass(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type folderController struct {
	folderService service.IFolderService
}

func NewFolderController(folderService service.IFolderService) IFolderController {
	return &folderController{
		folderService: folderService,
	}
}

func (c *folderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/folder/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("class/:classId", c.GetByClass)
	h.Post("", c.Create)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *folderController) GetByClass(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	classId, _ := uuid.Parse(ctx.Params("classId"))

	res, err := c.folderService.GetByClass(ctx.Context(), userId, classId)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Class not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get folders", res))
}

func (c *folderController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateFolderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.folderService.Create(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Class not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create folder", res))
}

func (c *folderController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateFolderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.folderService.Update(ctx.Context(), userId, &req); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Folder not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success update folder", nil))
}

func (c *folderController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.folderService.Delete(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Folder not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete folder", nil))
}
