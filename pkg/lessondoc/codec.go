package lessondoc

import (
	"encoding/json"

	"github.com/google/uuid"
)

// The wire format is a flat JSON array persisted in the lesson record's text
// column. Each entry carries a 1-based row ordinal shared across the columns
// of one visual row, a nullable 1-based columnIndex (null means the entry is
// a single-column row), the style overrides, and a type-discriminated text
// payload. The wire format has no page concept: decoding lands every item on
// one synthesized page.

type WireItem struct {
	Type        string          `json:"type"`
	Index       int             `json:"index"`
	ColumnIndex *int            `json:"columnIndex"`
	Style       Style           `json:"style"`
	Text        json.RawMessage `json:"text,omitempty"`
}

type wireList struct {
	Description string   `json:"description,omitempty"`
	Items       []string `json:"items"`
}

type wireTable struct {
	Columns int        `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type wireQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	ShowAnswer bool   `json:"showAnswer,omitempty"`
}

type wireQuiz struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

type wireMedia struct {
	Src     string     `json:"src"`
	Caption string     `json:"caption,omitempty"`
	MediaId *uuid.UUID `json:"mediaId,omitempty"`
}

// Encode flattens the document into wire items. Contiguous same-RowId runs
// share an incrementing index; runs of more than one member get 1-based
// column indexes, singletons get a null columnIndex. Unset style fields
// encode as null, never as a resolved default color.
func Encode(d *Document) []WireItem {
	wire := []WireItem{}
	index := 0
	for _, page := range d.Pages {
		for _, group := range page.RowGroups() {
			index++
			multi := len(group) > 1
			for col, item := range group {
				w := WireItem{
					Type:  string(item.Type),
					Index: index,
					Style: item.Style.clone(),
					Text:  encodePayload(item),
				}
				if multi {
					c := col + 1
					w.ColumnIndex = &c
				}
				wire = append(wire, w)
			}
		}
	}
	return wire
}

// EncodeJSON returns the wire array as the JSON blob stored on the lesson.
func EncodeJSON(d *Document) ([]byte, error) {
	return json.Marshal(Encode(d))
}

func encodePayload(item *Item) json.RawMessage {
	var v interface{}
	switch {
	case item.Type.IsText():
		v = item.Content
	case item.Type.IsList():
		v = wireList{Description: item.List.Description, Items: item.List.Entries}
	case item.Type == TypeTable:
		v = wireTable{Columns: item.Table.Cols, Rows: item.Table.Cells}
	case item.Type == TypeQuestion:
		v = wireQuestion{
			Question:   item.Question.Question,
			Answer:     item.Question.Answer,
			ShowAnswer: item.Question.ShowAnswer,
		}
	case item.Type == TypeQuiz:
		w := wireQuiz{Question: item.Quiz.Question, Options: item.Quiz.Options}
		// The editor has no correct-answer picker yet; the first option is
		// persisted as correct. Do not reinterpret without a product call.
		if len(w.Options) > 0 {
			w.CorrectAnswer = w.Options[0]
		}
		v = w
	case item.Type.IsMedia():
		v = wireMedia{
			Src:     item.Media.Link,
			Caption: item.Media.FileName,
			MediaId: item.Media.MediaId,
		}
	default:
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

// Decode rebuilds a document from wire items. Entries sharing an index with
// non-null column indexes become one row under a freshly generated RowId;
// null-column entries each get their own row. Input order is preserved.
// Malformed payloads fall back to the type's default payload and are
// reported; they never abort the rest of the document.
func Decode(wire []WireItem) (*Document, []CodecError) {
	doc := New()
	page := doc.Pages[0]
	var codecErrs []CodecError

	var rowId uuid.UUID
	lastIndex := -1
	for i, w := range wire {
		t := ItemType(w.Type)
		if !t.Valid() {
			codecErrs = append(codecErrs, CodecError{Index: i, Type: w.Type, Reason: "unknown item type"})
			continue
		}
		item := NewItem(t)
		item.Style = w.Style.clone()

		if w.ColumnIndex != nil && w.Index == lastIndex {
			item.RowId = rowId
		} else {
			item.RowId = uuid.New()
			if w.ColumnIndex != nil {
				rowId = item.RowId
				lastIndex = w.Index
			} else {
				lastIndex = -1
			}
		}

		if err := decodePayload(item, w.Text); err != nil {
			codecErrs = append(codecErrs, CodecError{Index: i, Type: w.Type, Reason: err.Error()})
			// item keeps its NewItem defaults
		}
		page.Items = append(page.Items, item)
	}
	return doc, codecErrs
}

// DecodeJSON parses the lesson text blob. Empty or absent content yields the
// empty single-page document.
func DecodeJSON(data []byte) (*Document, []CodecError) {
	if len(data) == 0 {
		return New(), nil
	}
	var wire []WireItem
	if err := json.Unmarshal(data, &wire); err != nil {
		return New(), []CodecError{{Index: -1, Reason: "malformed wire array: " + err.Error()}}
	}
	return Decode(wire)
}

func decodePayload(item *Item, raw json.RawMessage) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	switch {
	case item.Type.IsText():
		return json.Unmarshal(raw, &item.Content)
	case item.Type.IsList():
		var w wireList
		if err := json.Unmarshal(raw, &w); err != nil {
			return err
		}
		entries := w.Items
		if len(entries) == 0 {
			entries = []string{""}
		}
		item.List = &ListPayload{Description: w.Description, Entries: entries}
	case item.Type == TypeTable:
		var w wireTable
		if err := json.Unmarshal(raw, &w); err != nil {
			return err
		}
		if len(w.Rows) == 0 || w.Columns <= 0 {
			return nil
		}
		cells := make([][]string, len(w.Rows))
		for r := range w.Rows {
			row := make([]string, w.Columns)
			copy(row, w.Rows[r])
			cells[r] = row
		}
		item.Table = &TablePayload{Rows: len(cells), Cols: w.Columns, Cells: cells}
	case item.Type == TypeQuestion:
		var w wireQuestion
		if err := json.Unmarshal(raw, &w); err != nil {
			return err
		}
		item.Question = &QuestionPayload{Question: w.Question, Answer: w.Answer, ShowAnswer: w.ShowAnswer}
	case item.Type == TypeQuiz:
		var w wireQuiz
		if err := json.Unmarshal(raw, &w); err != nil {
			return err
		}
		options := w.Options
		if options == nil {
			options = []string{}
		}
		item.Quiz = &QuizPayload{Question: w.Question, Options: options}
	case item.Type.IsMedia():
		var w wireMedia
		if err := json.Unmarshal(raw, &w); err != nil {
			return err
		}
		item.Media = &MediaPayload{Link: w.Src, FileName: w.Caption, MediaId: w.MediaId}
	}
	return nil
}
