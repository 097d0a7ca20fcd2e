// Package dragdrop interprets pointer-drag gestures against the lesson
// document's drop-target taxonomy and resolves each completed drop into one
// document mutation. The controller holds transient gesture state only; it is
// never persisted.
package dragdrop

import (
	"classboard-be/pkg/lessondoc"

	"github.com/google/uuid"
)

type State int

const (
	StateIdle State = iota
	StateDragging
)

// TargetKind enumerates the supported drop targets.
type TargetKind int

const (
	// TargetItem drops adjacent to another item, above or below it
	// depending on the pointer position; the dragged item leaves any row
	// it was in.
	TargetItem TargetKind = iota
	// TargetRowColumn drops onto a row's add-column control, joining that
	// row after its last member.
	TargetRowColumn
	// TargetPlaceholder drops onto an add-item placeholder at an explicit
	// index within a page.
	TargetPlaceholder
	// TargetPageBackground appends to the end of a page.
	TargetPageBackground
	// TargetRoot appends to the end of the document (sidebar-level list
	// with no page context).
	TargetRoot
)

// Target identifies one drop target. Which fields are meaningful depends on
// Kind: ItemId for TargetItem, RowId for TargetRowColumn, PageId and Index
// for TargetPlaceholder, PageId for TargetPageBackground.
type Target struct {
	Kind   TargetKind
	ItemId uuid.UUID
	RowId  uuid.UUID
	PageId uuid.UUID
	Index  int
}

// Position says whether a drop on an item would land above or below it.
type Position int

const (
	Above Position = iota
	Below
)

// Highlight is the transient visual marker for the hovered target. Hover
// updates never touch the document.
type Highlight struct {
	Target   Target
	Position Position
}

// Controller is a per-gesture state machine:
// Idle -> Dragging -> (Over updates) -> Drop | Cancel -> Idle.
type Controller struct {
	doc       *lessondoc.Document
	state     State
	sourceId  uuid.UUID
	highlight *Highlight
}

func New(doc *lessondoc.Document) *Controller {
	return &Controller{doc: doc}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Source() uuid.UUID { return c.sourceId }

func (c *Controller) Highlight() *Highlight { return c.highlight }

// Begin starts a drag gesture for the given item's handle.
func (c *Controller) Begin(sourceItemId uuid.UUID) error {
	if c.doc.Item(sourceItemId) == nil {
		return &lessondoc.ValidationError{Op: "dragStart", Id: sourceItemId, Reason: "unknown item"}
	}
	c.state = StateDragging
	c.sourceId = sourceItemId
	c.highlight = nil
	return nil
}

// Over updates the highlight for the hovered target. For item targets the
// drop side is decided by comparing the pointer Y to the hovered element's
// vertical midpoint. Ignored when no drag is active or when hovering the
// dragged item itself.
func (c *Controller) Over(t Target, pointerY, targetMidY float64) {
	if c.state != StateDragging {
		return
	}
	if t.Kind == TargetItem && t.ItemId == c.sourceId {
		c.highlight = nil
		return
	}
	pos := Below
	if pointerY < targetMidY {
		pos = Above
	}
	c.highlight = &Highlight{Target: t, Position: pos}
}

// Drop completes the gesture, resolving the target to a document mutation.
// State and highlight are cleared even when the mutation fails. Dropping an
// item onto itself never reaches the document.
func (c *Controller) Drop(t Target) error {
	if c.state != StateDragging {
		return nil
	}
	source := c.sourceId
	highlight := c.highlight
	c.reset()

	switch t.Kind {
	case TargetItem:
		if t.ItemId == source {
			return nil
		}
		page := c.doc.PageOf(t.ItemId)
		if page == nil {
			return &lessondoc.ValidationError{Op: "drop", Id: t.ItemId, Reason: "unknown target item"}
		}
		idx := indexOf(page, t.ItemId)
		if highlight != nil && highlight.Target.Kind == TargetItem &&
			highlight.Target.ItemId == t.ItemId && highlight.Position == Below {
			idx++
		}
		return c.doc.MoveItem(source, page.Id, idx, nil)

	case TargetRowColumn:
		page, end := rowEnd(c.doc, t.RowId)
		if page == nil {
			return &lessondoc.ValidationError{Op: "drop", Id: t.RowId, Reason: "unknown target row"}
		}
		rowId := t.RowId
		return c.doc.MoveItem(source, page.Id, end, &rowId)

	case TargetPlaceholder:
		return c.doc.MoveItem(source, t.PageId, t.Index, nil)

	case TargetPageBackground:
		page := c.pageById(t.PageId)
		if page == nil {
			return &lessondoc.ValidationError{Op: "drop", Id: t.PageId, Reason: "unknown target page"}
		}
		return c.doc.MoveItem(source, t.PageId, len(page.Items), nil)

	case TargetRoot:
		last := c.doc.Pages[len(c.doc.Pages)-1]
		return c.doc.MoveItem(source, last.Id, len(last.Items), nil)
	}
	return &lessondoc.ValidationError{Op: "drop", Id: source, Reason: "unknown target kind"}
}

// Cancel abandons the gesture without mutating anything.
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.sourceId = uuid.Nil
	c.highlight = nil
}

func (c *Controller) pageById(id uuid.UUID) *lessondoc.Page {
	for _, p := range c.doc.Pages {
		if p.Id == id {
			return p
		}
	}
	return nil
}

func indexOf(page *lessondoc.Page, itemId uuid.UUID) int {
	for i, item := range page.Items {
		if item.Id == itemId {
			return i
		}
	}
	return -1
}

// rowEnd finds the page holding rowId and the index just past the row's last
// member.
func rowEnd(doc *lessondoc.Document, rowId uuid.UUID) (*lessondoc.Page, int) {
	for _, p := range doc.Pages {
		for i := len(p.Items) - 1; i >= 0; i-- {
			if p.Items[i].RowId == rowId {
				return p, i + 1
			}
		}
	}
	return nil, 0
}
