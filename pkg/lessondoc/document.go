package lessondoc

import (
	"github.com/google/uuid"
)

// ItemType discriminates the closed set of content block variants.
type ItemType string

const (
	// Text-like blocks. Payload is a single content string.
	TypeTitle       ItemType = "title"
	TypeHeading     ItemType = "heading"
	TypeSubheading  ItemType = "subheading"
	TypeParagraph   ItemType = "paragraph"
	TypeExplanation ItemType = "explanation"
	TypeDefinition  ItemType = "definition"
	TypeExample     ItemType = "example"
	TypeKeyPoint    ItemType = "keypoint"
	TypeQuote       ItemType = "quote"
	TypeNote        ItemType = "note"
	TypeWarning     ItemType = "warning"
	TypeTip         ItemType = "tip"
	TypeExercise    ItemType = "exercise"
	TypeEmptySpace  ItemType = "empty_space"

	// Structural blocks.
	TypeList        ItemType = "list"
	TypeOrderedList ItemType = "ordered_list"
	TypeTable       ItemType = "table"

	// Assessment blocks.
	TypeQuestion ItemType = "question"
	TypeQuiz     ItemType = "quiz"

	// Media blocks.
	TypeImage      ItemType = "image"
	TypeAudio      ItemType = "audio"
	TypeVideo      ItemType = "video"
	TypeAttachment ItemType = "attachment"
)

var textTypes = map[ItemType]bool{
	TypeTitle: true, TypeHeading: true, TypeSubheading: true, TypeParagraph: true,
	TypeExplanation: true, TypeDefinition: true, TypeExample: true, TypeKeyPoint: true,
	TypeQuote: true, TypeNote: true, TypeWarning: true, TypeTip: true,
	TypeExercise: true, TypeEmptySpace: true,
}

var mediaTypes = map[ItemType]bool{
	TypeImage: true, TypeAudio: true, TypeVideo: true, TypeAttachment: true,
}

func (t ItemType) Valid() bool {
	return textTypes[t] || mediaTypes[t] ||
		t == TypeList || t == TypeOrderedList || t == TypeTable ||
		t == TypeQuestion || t == TypeQuiz
}

// IsText reports whether the item carries a plain content string payload.
func (t ItemType) IsText() bool { return textTypes[t] }

// IsList covers both ordered and unordered lists; they share a payload shape.
func (t ItemType) IsList() bool { return t == TypeList || t == TypeOrderedList }

func (t ItemType) IsMedia() bool { return mediaTypes[t] }

// Style holds per-item presentation overrides. A nil field means "inherit the
// theme default"; defaults are theme-dependent and are never baked into the
// document, so nil must survive encode/decode as nil.
type Style struct {
	FontSize        *float64 `json:"fontSize"`
	TextColor       *string  `json:"textColor"`
	BackgroundColor *string  `json:"backgroundColor"`
	BorderColor     *string  `json:"borderColor"`
}

func (s Style) clone() Style {
	return Style{
		FontSize:        cloneFloat(s.FontSize),
		TextColor:       cloneString(s.TextColor),
		BackgroundColor: cloneString(s.BackgroundColor),
		BorderColor:     cloneString(s.BorderColor),
	}
}

type ListPayload struct {
	Description string   `json:"description"`
	Entries     []string `json:"entries"`
}

type TablePayload struct {
	Rows  int        `json:"rows"`
	Cols  int        `json:"cols"`
	Cells [][]string `json:"cells"`
}

type QuestionPayload struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	ShowAnswer bool   `json:"showAnswer"`
}

type QuizPayload struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	// DraftOption is the in-progress option text; it is editing state and is
	// never persisted.
	DraftOption string `json:"draftOption"`
}

// MediaPayload carries only the persisted media reference. The transient
// not-yet-uploaded blob lives in a side table owned by the edit session,
// keyed by item id, so it never leaks into saved content.
type MediaPayload struct {
	FileName string     `json:"fileName"`
	Link     string     `json:"link"`
	MediaId  *uuid.UUID `json:"mediaId"`
}

// Item is one content block. RowId groups items rendered side by side as
// columns of one visual row; an item whose RowId is unique to itself forms a
// single-column row. Row membership is derived by scanning for equal adjacent
// RowId within the page's flat item sequence, never stored as a container.
type Item struct {
	Id    uuid.UUID `json:"id"`
	Type  ItemType  `json:"type"`
	RowId uuid.UUID `json:"rowId"`
	Style Style     `json:"style"`

	// Height is an explicit pixel height for resizable items; nil means auto.
	Height *float64 `json:"height,omitempty"`

	Content  string           `json:"content,omitempty"`
	List     *ListPayload     `json:"list,omitempty"`
	Table    *TablePayload    `json:"table,omitempty"`
	Question *QuestionPayload `json:"question,omitempty"`
	Quiz     *QuizPayload     `json:"quiz,omitempty"`
	Media    *MediaPayload    `json:"media,omitempty"`
}

// NewItem constructs an item of the given type with its default payload and a
// fresh single-member row.
func NewItem(t ItemType) *Item {
	item := &Item{
		Id:    uuid.New(),
		Type:  t,
		RowId: uuid.New(),
	}
	switch {
	case t.IsList():
		item.List = &ListPayload{Entries: []string{""}}
	case t == TypeTable:
		item.Table = &TablePayload{
			Rows:  2,
			Cols:  2,
			Cells: [][]string{{"", ""}, {"", ""}},
		}
	case t == TypeQuestion:
		item.Question = &QuestionPayload{}
	case t == TypeQuiz:
		item.Quiz = &QuizPayload{Options: []string{}}
	case t.IsMedia():
		item.Media = &MediaPayload{}
	}
	return item
}

func (i *Item) clone() *Item {
	c := &Item{
		Id:      i.Id,
		Type:    i.Type,
		RowId:   i.RowId,
		Style:   i.Style.clone(),
		Height:  cloneFloat(i.Height),
		Content: i.Content,
	}
	if i.List != nil {
		c.List = &ListPayload{Description: i.List.Description, Entries: append([]string(nil), i.List.Entries...)}
	}
	if i.Table != nil {
		cells := make([][]string, len(i.Table.Cells))
		for r := range i.Table.Cells {
			cells[r] = append([]string(nil), i.Table.Cells[r]...)
		}
		c.Table = &TablePayload{Rows: i.Table.Rows, Cols: i.Table.Cols, Cells: cells}
	}
	if i.Question != nil {
		q := *i.Question
		c.Question = &q
	}
	if i.Quiz != nil {
		c.Quiz = &QuizPayload{
			Question:    i.Quiz.Question,
			Options:     append([]string(nil), i.Quiz.Options...),
			DraftOption: i.Quiz.DraftOption,
		}
	}
	if i.Media != nil {
		m := MediaPayload{FileName: i.Media.FileName, Link: i.Media.Link}
		if i.Media.MediaId != nil {
			id := *i.Media.MediaId
			m.MediaId = &id
		}
		c.Media = &m
	}
	return c
}

// Page is an ordered top-level section of the document. Items is the flat
// authoritative item order; row grouping is derived from it.
type Page struct {
	Id uuid.UUID `json:"id"`

	// HeightHint extends the page's minimum vertical extent; it is a
	// unit-less non-negative number adjusted in fixed increments.
	HeightHint float64 `json:"heightHint"`

	Items []*Item `json:"items"`
}

func NewPage() *Page {
	return &Page{Id: uuid.New(), Items: []*Item{}}
}

func (p *Page) clone() *Page {
	c := &Page{Id: p.Id, HeightHint: p.HeightHint, Items: make([]*Item, len(p.Items))}
	for i, item := range p.Items {
		c.Items[i] = item.clone()
	}
	return c
}

// RowGroups partitions the page's items into visual rows by scanning for
// equal adjacent RowId. The result shares item pointers with the page.
func (p *Page) RowGroups() [][]*Item {
	groups := [][]*Item{}
	for i := 0; i < len(p.Items); {
		j := i + 1
		for j < len(p.Items) && p.Items[j].RowId == p.Items[i].RowId {
			j++
		}
		groups = append(groups, p.Items[i:j:j])
		i = j
	}
	return groups
}

// rowRun returns the [start, end) bounds of the contiguous run of rowId, or
// ok=false when the row has no members on this page.
func (p *Page) rowRun(rowId uuid.UUID) (start, end int, ok bool) {
	for i, item := range p.Items {
		if item.RowId == rowId {
			start = i
			end = i + 1
			for end < len(p.Items) && p.Items[end].RowId == rowId {
				end++
			}
			return start, end, true
		}
	}
	return 0, 0, false
}

// Document is the root aggregate for one lesson's content. Page order is
// display order; the first page is permanent.
type Document struct {
	Pages []*Page `json:"pages"`
}

// New returns an empty document with its single permanent page.
func New() *Document {
	return &Document{Pages: []*Page{NewPage()}}
}

func (d *Document) Clone() *Document {
	c := &Document{Pages: make([]*Page, len(d.Pages))}
	for i, p := range d.Pages {
		c.Pages[i] = p.clone()
	}
	return c
}

func (d *Document) page(id uuid.UUID) (*Page, bool) {
	for _, p := range d.Pages {
		if p.Id == id {
			return p, true
		}
	}
	return nil, false
}

// findItem locates an item anywhere in the document.
func (d *Document) findItem(id uuid.UUID) (*Page, int, *Item) {
	for _, p := range d.Pages {
		for i, item := range p.Items {
			if item.Id == id {
				return p, i, item
			}
		}
	}
	return nil, -1, nil
}

// Item returns the item with the given id, or nil.
func (d *Document) Item(id uuid.UUID) *Item {
	_, _, item := d.findItem(id)
	return item
}

// PageOf returns the page holding the given item, or nil.
func (d *Document) PageOf(itemId uuid.UUID) *Page {
	p, _, _ := d.findItem(itemId)
	return p
}

// StructurallyEqual compares two documents ignoring identity: ids and row ids
// are regenerated on decode, so equality is judged on page/item counts, item
// order, row grouping shape, types, styles and payloads. Quiz draft option
// text, item heights and page height hints are session-local editing state
// the wire format does not carry, and are excluded.
func (d *Document) StructurallyEqual(other *Document) bool {
	if len(d.Pages) != len(other.Pages) {
		return false
	}
	for pi, p := range d.Pages {
		q := other.Pages[pi]
		if len(p.Items) != len(q.Items) {
			return false
		}
		pg, qg := p.RowGroups(), q.RowGroups()
		if len(pg) != len(qg) {
			return false
		}
		for gi := range pg {
			if len(pg[gi]) != len(qg[gi]) {
				return false
			}
		}
		for ii, a := range p.Items {
			if !a.structurallyEqual(q.Items[ii]) {
				return false
			}
		}
	}
	return true
}

func (a *Item) structurallyEqual(b *Item) bool {
	if a.Type != b.Type || a.Content != b.Content {
		return false
	}
	if !floatEqual(a.Style.FontSize, b.Style.FontSize) ||
		!stringEqual(a.Style.TextColor, b.Style.TextColor) ||
		!stringEqual(a.Style.BackgroundColor, b.Style.BackgroundColor) ||
		!stringEqual(a.Style.BorderColor, b.Style.BorderColor) {
		return false
	}
	switch {
	case a.List != nil || b.List != nil:
		if a.List == nil || b.List == nil || a.List.Description != b.List.Description {
			return false
		}
		if !stringsEqual(a.List.Entries, b.List.Entries) {
			return false
		}
	case a.Table != nil || b.Table != nil:
		if a.Table == nil || b.Table == nil || a.Table.Rows != b.Table.Rows || a.Table.Cols != b.Table.Cols {
			return false
		}
		for r := range a.Table.Cells {
			if !stringsEqual(a.Table.Cells[r], b.Table.Cells[r]) {
				return false
			}
		}
	case a.Question != nil || b.Question != nil:
		if a.Question == nil || b.Question == nil || *a.Question != *b.Question {
			return false
		}
	case a.Quiz != nil || b.Quiz != nil:
		if a.Quiz == nil || b.Quiz == nil || a.Quiz.Question != b.Quiz.Question {
			return false
		}
		if !stringsEqual(a.Quiz.Options, b.Quiz.Options) {
			return false
		}
	case a.Media != nil || b.Media != nil:
		if a.Media == nil || b.Media == nil ||
			a.Media.FileName != b.Media.FileName || a.Media.Link != b.Media.Link {
			return false
		}
		if (a.Media.MediaId == nil) != (b.Media.MediaId == nil) {
			return false
		}
		if a.Media.MediaId != nil && *a.Media.MediaId != *b.Media.MediaId {
			return false
		}
	}
	return true
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func stringEqual(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func floatEqual(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
