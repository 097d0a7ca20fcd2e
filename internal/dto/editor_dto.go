package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// --- Session ---

type OpenEditorResponse struct {
	SessionId string          `json:"session_id"`
	Text      json.RawMessage `json:"text"`
	SaveState string          `json:"save_state"`
}

type EditorStatusResponse struct {
	SessionId string `json:"session_id"`
	SaveState string `json:"save_state"`
	LastError string `json:"last_error,omitempty"`
}

// --- Item mutations ---

type InsertItemRequest struct {
	PageId uuid.UUID  `json:"page_id" validate:"required"`
	Index  int        `json:"index" validate:"min=0"`
	Type   string     `json:"type" validate:"required"`
	RowId  *uuid.UUID `json:"row_id"`
}

type InsertItemResponse struct {
	ItemId uuid.UUID `json:"item_id"`
	RowId  uuid.UUID `json:"row_id"`
}

type DeleteItemRequest struct {
	ItemId uuid.UUID `json:"item_id" validate:"required"`
}

type MoveItemRequest struct {
	ItemId       uuid.UUID  `json:"item_id" validate:"required"`
	TargetPageId uuid.UUID  `json:"target_page_id" validate:"required"`
	TargetIndex  int        `json:"target_index" validate:"min=0"`
	RowId        *uuid.UUID `json:"row_id"`
}

type SetStyleRequest struct {
	ItemId uuid.UUID   `json:"item_id" validate:"required"`
	Field  string      `json:"field" validate:"required"`
	Value  interface{} `json:"value"` // null clears the field
}

type SetFieldRequest struct {
	ItemId uuid.UUID   `json:"item_id" validate:"required"`
	Field  string      `json:"field" validate:"required"`
	Value  interface{} `json:"value"`
}

// --- Page mutations ---

type AddPageRequest struct {
	AfterIndex int `json:"after_index" validate:"min=0"`
}

type AddPageResponse struct {
	PageId uuid.UUID `json:"page_id"`
}

type DeletePageRequest struct {
	PageId uuid.UUID `json:"page_id" validate:"required"`
}

type ReorderPageRequest struct {
	PageId   uuid.UUID `json:"page_id" validate:"required"`
	Position string    `json:"position" validate:"required,oneof=top bottom"`
}

type ResizePageRequest struct {
	PageId uuid.UUID `json:"page_id" validate:"required"`
	Delta  float64   `json:"delta"`
}

// --- List / table / quiz mutations ---

type ListEntryRequest struct {
	ItemId uuid.UUID `json:"item_id" validate:"required"`
	Index  int       `json:"index" validate:"min=0"`
	Value  string    `json:"value"`
}

type TableCellRequest struct {
	ItemId uuid.UUID `json:"item_id" validate:"required"`
	Row    int       `json:"row" validate:"min=0"`
	Col    int       `json:"col" validate:"min=0"`
	Value  string    `json:"value"`
}

type TableGrowRequest struct {
	ItemId uuid.UUID `json:"item_id" validate:"required"`
}

type QuizOptionRequest struct {
	ItemId uuid.UUID `json:"item_id" validate:"required"`
	Index  int       `json:"index" validate:"min=0"`
	Value  string    `json:"value"`
}

type CommitDraftOptionRequest struct {
	ItemId uuid.UUID `json:"item_id" validate:"required"`
}

// --- Drag and drop ---

type DragTarget struct {
	Kind   string     `json:"kind" validate:"required,oneof=item row_column placeholder page_background root"`
	ItemId *uuid.UUID `json:"item_id"`
	RowId  *uuid.UUID `json:"row_id"`
	PageId *uuid.UUID `json:"page_id"`
	Index  int        `json:"index"`
}

type DragBeginRequest struct {
	ItemId uuid.UUID `json:"item_id" validate:"required"`
}

type DragOverRequest struct {
	Target     DragTarget `json:"target" validate:"required"`
	PointerY   float64    `json:"pointer_y"`
	TargetMidY float64    `json:"target_mid_y"`
}

type DragStateResponse struct {
	State     string      `json:"state"`
	SourceId  *uuid.UUID  `json:"source_id,omitempty"`
	Highlight *DragTarget `json:"highlight,omitempty"`
	Position  string      `json:"position,omitempty"` // above | below
}

// --- Media staging ---

type StageUploadResponse struct {
	ItemId   uuid.UUID `json:"item_id"`
	FileName string    `json:"file_name"`
}

type StageLinkRequest struct {
	ItemId uuid.UUID `json:"item_id" validate:"required"`
	Link   string    `json:"link" validate:"required,url"`
	Type   string    `json:"type" validate:"required,oneof=image audio video link"`
}
