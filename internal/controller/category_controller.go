package controller

import (
	"errors"

	"classboard-be/internal/dto"
	"classboard-be/internal/pkg/serverutils"
	"classboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICategoryController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type categoryController struct {
	categoryService service.ICategoryService
}

func NewCategoryController(categoryService service.ICategoryService) ICategoryController {
	return &categoryController{
		categoryService: categoryService,
	}
}

func (c *categoryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/category/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *categoryController) GetAll(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	res, err := c.categoryService.GetAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get categories", res))
}

func (c *categoryController) Create(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.CreateCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.categoryService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create category", res))
}

func (c *categoryController) Update(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateCategoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.categoryService.Update(ctx.Context(), userId, &req); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Category not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success update category", nil))
}

func (c *categoryController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.categoryService.Delete(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Category not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete category", nil))
}
