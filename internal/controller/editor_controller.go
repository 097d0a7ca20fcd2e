package controller

import (
	"errors"

	"classboard-be/internal/dto"
	"classboard-be/internal/pkg/serverutils"
	"classboard-be/internal/service"
	"classboard-be/pkg/lessondoc"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IEditorController exposes the live lesson editor. Every route operates on
// the in-memory edit session; nothing here writes the database directly.
type IEditorController interface {
	RegisterRoutes(r fiber.Router)
}

type editorController struct {
	editorService service.IEditorService
}

func NewEditorController(editorService service.IEditorService) IEditorController {
	return &editorController{
		editorService: editorService,
	}
}

func (c *editorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/editor/v1/:lessonId")
	h.Use(serverutils.JwtMiddleware)

	h.Post("open", c.Open)
	h.Post("close", c.Close)
	h.Get("status", c.Status)

	h.Post("item", c.InsertItem)
	h.Delete("item", c.DeleteItem)
	h.Put("item/move", c.MoveItem)
	h.Put("item/style", c.SetStyle)
	h.Put("item/field", c.SetField)

	h.Post("page", c.AddPage)
	h.Delete("page", c.DeletePage)
	h.Put("page/reorder", c.ReorderPage)
	h.Put("page/resize", c.ResizePage)

	h.Put("list/entry", c.SetListEntry)
	h.Post("list/entry", c.AddListEntry)
	h.Delete("list/entry", c.RemoveListEntry)
	h.Put("table/cell", c.SetTableCell)
	h.Post("table/row", c.AddTableRow)
	h.Post("table/column", c.AddTableColumn)
	h.Put("quiz/option", c.SetQuizOption)
	h.Post("quiz/option/commit", c.CommitDraftOption)

	h.Post("drag/begin", c.DragBegin)
	h.Post("drag/over", c.DragOver)
	h.Post("drag/drop", c.DragDrop)
	h.Post("drag/cancel", c.DragCancel)

	h.Post("media/upload", c.StageUpload)
	h.Post("media/link", c.StageLink)
}

func lessonParam(ctx *fiber.Ctx) uuid.UUID {
	id, _ := uuid.Parse(ctx.Params("lessonId"))
	return id
}

// editorError maps session and document failures onto HTTP statuses. A
// missing session or lesson is a 404, a rejected mutation is a 400.
func editorError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Session not found"))
	}
	var vErr *lessondoc.ValidationError
	if errors.As(err, &vErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, vErr.Error()))
	}
	return err
}

func (c *editorController) Open(ctx *fiber.Ctx) error {
	res, err := c.editorService.Open(ctx.Context(), currentUserId(ctx), lessonParam(ctx))
	if err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Editor session opened", res))
}

func (c *editorController) Close(ctx *fiber.Ctx) error {
	if err := c.editorService.Close(ctx.Context(), currentUserId(ctx), lessonParam(ctx)); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Editor session closed", nil))
}

func (c *editorController) Status(ctx *fiber.Ctx) error {
	res, err := c.editorService.Status(ctx.Context(), currentUserId(ctx), lessonParam(ctx))
	if err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Editor status", res))
}

func (c *editorController) InsertItem(ctx *fiber.Ctx) error {
	var req dto.InsertItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.editorService.InsertItem(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req)
	if err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Item inserted", res))
}

func (c *editorController) DeleteItem(ctx *fiber.Ctx) error {
	var req dto.DeleteItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.DeleteItem(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Item deleted", nil))
}

func (c *editorController) MoveItem(ctx *fiber.Ctx) error {
	var req dto.MoveItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.MoveItem(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Item moved", nil))
}

func (c *editorController) SetStyle(ctx *fiber.Ctx) error {
	var req dto.SetStyleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.SetStyle(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Style updated", nil))
}

func (c *editorController) SetField(ctx *fiber.Ctx) error {
	var req dto.SetFieldRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.SetField(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Field updated", nil))
}

func (c *editorController) AddPage(ctx *fiber.Ctx) error {
	var req dto.AddPageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.editorService.AddPage(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req)
	if err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Page added", res))
}

func (c *editorController) DeletePage(ctx *fiber.Ctx) error {
	var req dto.DeletePageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.DeletePage(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Page deleted", nil))
}

func (c *editorController) ReorderPage(ctx *fiber.Ctx) error {
	var req dto.ReorderPageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.ReorderPage(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Page reordered", nil))
}

func (c *editorController) ResizePage(ctx *fiber.Ctx) error {
	var req dto.ResizePageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.ResizePage(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Page resized", nil))
}

func (c *editorController) SetListEntry(ctx *fiber.Ctx) error {
	var req dto.ListEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.SetListEntry(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("List entry updated", nil))
}

func (c *editorController) AddListEntry(ctx *fiber.Ctx) error {
	var req dto.TableGrowRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.AddListEntry(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("List entry added", nil))
}

func (c *editorController) RemoveListEntry(ctx *fiber.Ctx) error {
	var req dto.ListEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.RemoveListEntry(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("List entry removed", nil))
}

func (c *editorController) SetTableCell(ctx *fiber.Ctx) error {
	var req dto.TableCellRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.SetTableCell(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Table cell updated", nil))
}

func (c *editorController) AddTableRow(ctx *fiber.Ctx) error {
	var req dto.TableGrowRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.AddTableRow(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Table row added", nil))
}

func (c *editorController) AddTableColumn(ctx *fiber.Ctx) error {
	var req dto.TableGrowRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.AddTableColumn(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Table column added", nil))
}

func (c *editorController) SetQuizOption(ctx *fiber.Ctx) error {
	var req dto.QuizOptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.SetQuizOption(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Quiz option updated", nil))
}

func (c *editorController) CommitDraftOption(ctx *fiber.Ctx) error {
	var req dto.CommitDraftOptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.CommitDraftOption(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Draft option committed", nil))
}

func (c *editorController) DragBegin(ctx *fiber.Ctx) error {
	var req dto.DragBeginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.editorService.DragBegin(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req)
	if err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Drag started", res))
}

func (c *editorController) DragOver(ctx *fiber.Ctx) error {
	var req dto.DragOverRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.editorService.DragOver(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req)
	if err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Drag target updated", res))
}

func (c *editorController) DragDrop(ctx *fiber.Ctx) error {
	var req dto.DragOverRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.editorService.DragDrop(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req)
	if err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Drop applied", res))
}

func (c *editorController) DragCancel(ctx *fiber.Ctx) error {
	res, err := c.editorService.DragCancel(ctx.Context(), currentUserId(ctx), lessonParam(ctx))
	if err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Drag cancelled", res))
}

func (c *editorController) StageUpload(ctx *fiber.Ctx) error {
	itemId, err := uuid.Parse(ctx.FormValue("item_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing item_id"))
	}
	mediaType := ctx.FormValue("type")

	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing file"))
	}

	res, err := c.editorService.StageUpload(ctx.Context(), currentUserId(ctx), lessonParam(ctx), itemId, mediaType, file)
	if err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Upload staged", res))
}

func (c *editorController) StageLink(ctx *fiber.Ctx) error {
	var req dto.StageLinkRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.editorService.StageLink(ctx.Context(), currentUserId(ctx), lessonParam(ctx), &req); err != nil {
		return editorError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Link staged", nil))
}
