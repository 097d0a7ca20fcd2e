package lessondoc

import (
	"strings"

	"github.com/google/uuid"
)

// Mutations are applied in place and validated up front: a returned
// ValidationError guarantees the document was not modified. Row contiguity
// (all items sharing a RowId occupy adjacent positions on their page) holds
// after every operation.

// PagePosition is a reorder destination for a whole page.
type PagePosition string

const (
	PageTop    PagePosition = "top"
	PageBottom PagePosition = "bottom"
)

// StyleField names one entry of an item's style overrides.
type StyleField string

const (
	StyleFontSize        StyleField = "fontSize"
	StyleTextColor       StyleField = "textColor"
	StyleBackgroundColor StyleField = "backgroundColor"
	StyleBorderColor     StyleField = "borderColor"
)

// InsertItem constructs a new item of the given type and inserts it at index
// (clamped to the page bounds). When rowId is non-nil the item joins that
// row: the insertion point is snapped adjacent to the row's existing members.
func (d *Document) InsertItem(pageId uuid.UUID, index int, t ItemType, rowId *uuid.UUID) (*Item, error) {
	page, ok := d.page(pageId)
	if !ok {
		return nil, invalidOp("insertItem", pageId, "unknown page")
	}
	if !t.Valid() {
		return nil, invalidOp("insertItem", pageId, "unknown item type "+string(t))
	}
	item := NewItem(t)
	if rowId != nil {
		item.RowId = *rowId
	}
	index = clamp(index, 0, len(page.Items))
	index = page.snapInsertIndex(index, item.RowId)
	page.insertAt(index, item)
	return item, nil
}

// DeleteItem removes the item wherever it lives. A missing id is treated as
// already deleted, not an error.
func (d *Document) DeleteItem(itemId uuid.UUID) {
	page, idx, item := d.findItem(itemId)
	if item == nil {
		return
	}
	page.Items = append(page.Items[:idx], page.Items[idx+1:]...)
}

// MoveItem removes the item from its current position, assigns rowId (or a
// fresh row when nil, extracting it from any row it was in) and reinserts it
// at targetIndex on the target page. When source and target are the same page
// and the source position precedes the nominal target index, the index is
// corrected for the removal shift.
func (d *Document) MoveItem(itemId, targetPageId uuid.UUID, targetIndex int, rowId *uuid.UUID) error {
	srcPage, srcIdx, item := d.findItem(itemId)
	if item == nil {
		return invalidOp("moveItem", itemId, "unknown item")
	}
	target, ok := d.page(targetPageId)
	if !ok {
		return invalidOp("moveItem", targetPageId, "unknown page")
	}

	srcPage.Items = append(srcPage.Items[:srcIdx], srcPage.Items[srcIdx+1:]...)
	if srcPage == target && srcIdx < targetIndex {
		targetIndex--
	}

	if rowId != nil {
		item.RowId = *rowId
	} else {
		item.RowId = uuid.New()
	}

	targetIndex = clamp(targetIndex, 0, len(target.Items))
	targetIndex = target.snapInsertIndex(targetIndex, item.RowId)
	target.insertAt(targetIndex, item)
	return nil
}

// AddPage inserts a new empty page after position afterIndex and returns it.
func (d *Document) AddPage(afterIndex int) *Page {
	page := NewPage()
	at := clamp(afterIndex+1, 1, len(d.Pages))
	d.Pages = append(d.Pages, nil)
	copy(d.Pages[at+1:], d.Pages[at:])
	d.Pages[at] = page
	return page
}

// DeletePage removes a page and its items. The first page is permanent.
func (d *Document) DeletePage(pageId uuid.UUID) error {
	for i, p := range d.Pages {
		if p.Id != pageId {
			continue
		}
		if i == 0 {
			return invalidOp("deletePage", pageId, "first page is permanent")
		}
		d.Pages = append(d.Pages[:i], d.Pages[i+1:]...)
		return nil
	}
	return invalidOp("deletePage", pageId, "unknown page")
}

// ReorderPage moves a page to the head or tail of the page sequence.
func (d *Document) ReorderPage(pageId uuid.UUID, pos PagePosition) error {
	if pos != PageTop && pos != PageBottom {
		return invalidOp("reorderPage", pageId, "unknown position "+string(pos))
	}
	for i, p := range d.Pages {
		if p.Id != pageId {
			continue
		}
		d.Pages = append(d.Pages[:i], d.Pages[i+1:]...)
		if pos == PageTop {
			d.Pages = append([]*Page{p}, d.Pages...)
		} else {
			d.Pages = append(d.Pages, p)
		}
		return nil
	}
	return invalidOp("reorderPage", pageId, "unknown page")
}

// ResizePage adds delta to the page's height hint, floor-clamped at zero.
func (d *Document) ResizePage(pageId uuid.UUID, delta float64) error {
	page, ok := d.page(pageId)
	if !ok {
		return invalidOp("resizePage", pageId, "unknown page")
	}
	page.HeightHint += delta
	if page.HeightHint < 0 {
		page.HeightHint = 0
	}
	return nil
}

// SetStyle replaces one style field. A nil value clears the override back to
// "inherit". FontSize accepts a float64, the color fields accept a string.
func (d *Document) SetStyle(itemId uuid.UUID, field StyleField, value interface{}) error {
	_, _, item := d.findItem(itemId)
	if item == nil {
		return invalidOp("setStyle", itemId, "unknown item")
	}
	if field == StyleFontSize {
		if value == nil {
			item.Style.FontSize = nil
			return nil
		}
		f, ok := toFloat(value)
		if !ok {
			return invalidOp("setStyle", itemId, "fontSize wants a number")
		}
		item.Style.FontSize = &f
		return nil
	}

	var slot **string
	switch field {
	case StyleTextColor:
		slot = &item.Style.TextColor
	case StyleBackgroundColor:
		slot = &item.Style.BackgroundColor
	case StyleBorderColor:
		slot = &item.Style.BorderColor
	default:
		return invalidOp("setStyle", itemId, "unknown style field "+string(field))
	}
	if value == nil {
		*slot = nil
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return invalidOp("setStyle", itemId, string(field)+" wants a string")
	}
	*slot = &s
	return nil
}

// SetField updates one scalar payload field, type-checked against the item's
// type. Recognized fields: content (text-like), question/answer/showAnswer
// (question), question/draftOption (quiz), description (list), fileName/link
// (media), height (any item; nil means auto).
func (d *Document) SetField(itemId uuid.UUID, field string, value interface{}) error {
	_, _, item := d.findItem(itemId)
	if item == nil {
		return invalidOp("setField", itemId, "unknown item")
	}

	if field == "height" {
		if value == nil {
			item.Height = nil
			return nil
		}
		f, ok := toFloat(value)
		if !ok {
			return invalidOp("setField", itemId, "height wants a number")
		}
		item.Height = &f
		return nil
	}

	switch {
	case item.Type.IsText():
		if field != "content" {
			return invalidOp("setField", itemId, "unknown field "+field+" for "+string(item.Type))
		}
		s, ok := value.(string)
		if !ok {
			return invalidOp("setField", itemId, "content wants a string")
		}
		item.Content = s
	case item.Type.IsList():
		if field != "description" {
			return invalidOp("setField", itemId, "unknown field "+field+" for "+string(item.Type))
		}
		s, ok := value.(string)
		if !ok {
			return invalidOp("setField", itemId, "description wants a string")
		}
		item.List.Description = s
	case item.Type == TypeQuestion:
		switch field {
		case "question", "answer":
			s, ok := value.(string)
			if !ok {
				return invalidOp("setField", itemId, field+" wants a string")
			}
			if field == "question" {
				item.Question.Question = s
			} else {
				item.Question.Answer = s
			}
		case "showAnswer":
			b, ok := value.(bool)
			if !ok {
				return invalidOp("setField", itemId, "showAnswer wants a bool")
			}
			item.Question.ShowAnswer = b
		default:
			return invalidOp("setField", itemId, "unknown field "+field+" for question")
		}
	case item.Type == TypeQuiz:
		s, ok := value.(string)
		if !ok {
			return invalidOp("setField", itemId, field+" wants a string")
		}
		switch field {
		case "question":
			item.Quiz.Question = s
		case "draftOption":
			item.Quiz.DraftOption = s
		default:
			return invalidOp("setField", itemId, "unknown field "+field+" for quiz")
		}
	case item.Type.IsMedia():
		s, ok := value.(string)
		if !ok {
			return invalidOp("setField", itemId, field+" wants a string")
		}
		switch field {
		case "fileName":
			item.Media.FileName = s
		case "link":
			item.Media.Link = s
		default:
			return invalidOp("setField", itemId, "unknown field "+field+" for "+string(item.Type))
		}
	default:
		return invalidOp("setField", itemId, "item type "+string(item.Type)+" has no field "+field)
	}
	return nil
}

// SetListEntry replaces the list entry at index i.
func (d *Document) SetListEntry(itemId uuid.UUID, i int, text string) error {
	item, err := d.itemOfKind(itemId, "setListEntry", func(it *Item) bool { return it.Type.IsList() })
	if err != nil {
		return err
	}
	if i < 0 || i >= len(item.List.Entries) {
		return invalidOp("setListEntry", itemId, "entry index out of range")
	}
	item.List.Entries[i] = text
	return nil
}

// AddListEntry appends one empty entry.
func (d *Document) AddListEntry(itemId uuid.UUID) error {
	item, err := d.itemOfKind(itemId, "addListEntry", func(it *Item) bool { return it.Type.IsList() })
	if err != nil {
		return err
	}
	item.List.Entries = append(item.List.Entries, "")
	return nil
}

// RemoveListEntry deletes the entry at index i; the last remaining entry
// stays (a list always has at least one entry).
func (d *Document) RemoveListEntry(itemId uuid.UUID, i int) error {
	item, err := d.itemOfKind(itemId, "removeListEntry", func(it *Item) bool { return it.Type.IsList() })
	if err != nil {
		return err
	}
	if i < 0 || i >= len(item.List.Entries) {
		return invalidOp("removeListEntry", itemId, "entry index out of range")
	}
	if len(item.List.Entries) == 1 {
		return nil
	}
	item.List.Entries = append(item.List.Entries[:i], item.List.Entries[i+1:]...)
	return nil
}

// SetTableCell writes one cell.
func (d *Document) SetTableCell(itemId uuid.UUID, row, col int, text string) error {
	item, err := d.itemOfKind(itemId, "setTableCell", func(it *Item) bool { return it.Type == TypeTable })
	if err != nil {
		return err
	}
	t := item.Table
	if row < 0 || row >= t.Rows || col < 0 || col >= t.Cols {
		return invalidOp("setTableCell", itemId, "cell out of range")
	}
	t.Cells[row][col] = text
	return nil
}

// AddTableRow appends a row of empty cells, preserving existing contents.
func (d *Document) AddTableRow(itemId uuid.UUID) error {
	item, err := d.itemOfKind(itemId, "addTableRow", func(it *Item) bool { return it.Type == TypeTable })
	if err != nil {
		return err
	}
	t := item.Table
	t.Cells = append(t.Cells, make([]string, t.Cols))
	t.Rows++
	return nil
}

// AddTableColumn appends a column of empty cells to every row.
func (d *Document) AddTableColumn(itemId uuid.UUID) error {
	item, err := d.itemOfKind(itemId, "addTableColumn", func(it *Item) bool { return it.Type == TypeTable })
	if err != nil {
		return err
	}
	t := item.Table
	for r := range t.Cells {
		t.Cells[r] = append(t.Cells[r], "")
	}
	t.Cols++
	return nil
}

// SetQuizOption replaces the option at index i.
func (d *Document) SetQuizOption(itemId uuid.UUID, i int, text string) error {
	item, err := d.itemOfKind(itemId, "setQuizOption", func(it *Item) bool { return it.Type == TypeQuiz })
	if err != nil {
		return err
	}
	if i < 0 || i >= len(item.Quiz.Options) {
		return invalidOp("setQuizOption", itemId, "option index out of range")
	}
	item.Quiz.Options[i] = text
	return nil
}

// CommitDraftOption moves non-empty draft text into the options list and
// clears the draft. Empty or whitespace-only drafts are a no-op.
func (d *Document) CommitDraftOption(itemId uuid.UUID) error {
	item, err := d.itemOfKind(itemId, "commitDraftOption", func(it *Item) bool { return it.Type == TypeQuiz })
	if err != nil {
		return err
	}
	if strings.TrimSpace(item.Quiz.DraftOption) == "" {
		return nil
	}
	item.Quiz.Options = append(item.Quiz.Options, item.Quiz.DraftOption)
	item.Quiz.DraftOption = ""
	return nil
}

func (d *Document) itemOfKind(itemId uuid.UUID, op string, want func(*Item) bool) (*Item, error) {
	_, _, item := d.findItem(itemId)
	if item == nil {
		return nil, invalidOp(op, itemId, "unknown item")
	}
	if !want(item) {
		return nil, invalidOp(op, itemId, "wrong item type "+string(item.Type))
	}
	return item, nil
}

func (p *Page) insertAt(i int, item *Item) {
	p.Items = append(p.Items, nil)
	copy(p.Items[i+1:], p.Items[i:])
	p.Items[i] = item
}

// snapInsertIndex keeps row runs contiguous. Inserting a member of an
// existing row lands inside that row's run; inserting anything else in the
// middle of a foreign run is pushed to the nearer run boundary so the run is
// never split.
func (p *Page) snapInsertIndex(i int, rowId uuid.UUID) int {
	if start, end, ok := p.rowRun(rowId); ok {
		return clamp(i, start, end)
	}
	if i <= 0 || i >= len(p.Items) {
		return i
	}
	if p.Items[i-1].RowId != p.Items[i].RowId {
		return i
	}
	// Inside a foreign run; round to the nearer edge, ties go after the run.
	start, end, _ := p.rowRun(p.Items[i].RowId)
	if i-start >= end-i {
		return end
	}
	return start
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
