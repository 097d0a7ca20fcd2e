package lessondoc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRowGrouping(t *testing.T) {
	d := New()
	items := seedPage(t, d, TypeTitle, TypeParagraph, TypeParagraph, TypeImage)
	// Put the two paragraphs side by side as one row.
	require.NoError(t, d.MoveItem(items[2].Id, d.Pages[0].Id, 2, &items[1].RowId))

	wire := Encode(d)
	require.Len(t, wire, 4)

	// Title: singleton, null columnIndex.
	assert.Equal(t, 1, wire[0].Index)
	assert.Nil(t, wire[0].ColumnIndex)

	// The paragraph row shares one index with 1-based columns.
	assert.Equal(t, 2, wire[1].Index)
	assert.Equal(t, 2, wire[2].Index)
	require.NotNil(t, wire[1].ColumnIndex)
	require.NotNil(t, wire[2].ColumnIndex)
	assert.Equal(t, 1, *wire[1].ColumnIndex)
	assert.Equal(t, 2, *wire[2].ColumnIndex)

	// The image follows with the next index.
	assert.Equal(t, 3, wire[3].Index)
	assert.Nil(t, wire[3].ColumnIndex)
}

func TestRoundTripAllTypes(t *testing.T) {
	d := New()
	page := d.Pages[0]

	title := seedPage(t, d, TypeTitle)[0]
	require.NoError(t, d.SetField(title.Id, "content", "Lesson one"))
	require.NoError(t, d.SetStyle(title.Id, StyleFontSize, 24.0))

	list := seedPage(t, d, TypeOrderedList)[0]
	require.NoError(t, d.SetField(list.Id, "description", "steps"))
	require.NoError(t, d.SetListEntry(list.Id, 0, "first"))
	require.NoError(t, d.AddListEntry(list.Id))
	require.NoError(t, d.SetListEntry(list.Id, 1, "second"))

	table := seedPage(t, d, TypeTable)[0]
	require.NoError(t, d.SetTableCell(table.Id, 0, 1, "x"))

	question := seedPage(t, d, TypeQuestion)[0]
	require.NoError(t, d.SetField(question.Id, "question", "why?"))
	require.NoError(t, d.SetField(question.Id, "answer", "because"))

	quiz := seedPage(t, d, TypeQuiz)[0]
	require.NoError(t, d.SetField(quiz.Id, "question", "pick one"))
	require.NoError(t, d.SetField(quiz.Id, "draftOption", "A"))
	require.NoError(t, d.CommitDraftOption(quiz.Id))
	require.NoError(t, d.SetField(quiz.Id, "draftOption", "B"))
	require.NoError(t, d.CommitDraftOption(quiz.Id))

	image := seedPage(t, d, TypeImage)[0]
	require.NoError(t, d.SetField(image.Id, "link", "/uploads/pic.png"))
	require.NoError(t, d.SetField(image.Id, "fileName", "pic.png"))

	seedPage(t, d, TypeEmptySpace)

	// A two-column row in the middle.
	require.NoError(t, d.MoveItem(question.Id, page.Id, 2, &table.RowId))

	blob, err := EncodeJSON(d)
	require.NoError(t, err)

	decoded, codecErrs := DecodeJSON(blob)
	assert.Empty(t, codecErrs)
	assert.True(t, d.StructurallyEqual(decoded), "decode(encode(d)) must match d up to regenerated ids")
}

func TestRoundTripIgnoresLayoutHints(t *testing.T) {
	d := New()
	item := seedPage(t, d, TypeParagraph)[0]
	require.NoError(t, d.SetField(item.Id, "content", "resized"))
	require.NoError(t, d.SetField(item.Id, "height", 320.0))
	require.NoError(t, d.ResizePage(d.Pages[0].Id, 120))

	blob, err := EncodeJSON(d)
	require.NoError(t, err)

	// Heights and page height hints are session-local and never hit the
	// wire; the round trip must still hold with them set.
	decoded, codecErrs := DecodeJSON(blob)
	assert.Empty(t, codecErrs)
	assert.True(t, d.StructurallyEqual(decoded))
	assert.Nil(t, decoded.Pages[0].Items[0].Height)
}

func TestStyleNullRoundTrip(t *testing.T) {
	d := New()
	item := seedPage(t, d, TypeParagraph)[0]
	require.NoError(t, d.SetStyle(item.Id, StyleBackgroundColor, "#222222"))
	// textColor deliberately left unset.

	blob, err := EncodeJSON(d)
	require.NoError(t, err)

	// Unset fields must be literal nulls in the payload, not theme defaults.
	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(blob, &raw))
	var style map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw[0]["style"], &style))
	assert.Equal(t, "null", string(style["textColor"]))
	assert.Equal(t, `"#222222"`, string(style["backgroundColor"]))

	decoded, _ := DecodeJSON(blob)
	got := decoded.Pages[0].Items[0]
	assert.Nil(t, got.Style.TextColor)
	require.NotNil(t, got.Style.BackgroundColor)
	assert.Equal(t, "#222222", *got.Style.BackgroundColor)
}

func TestQuizCorrectAnswerIsFirstOption(t *testing.T) {
	d := New()
	quiz := seedPage(t, d, TypeQuiz)[0]
	for _, opt := range []string{"red", "green"} {
		require.NoError(t, d.SetField(quiz.Id, "draftOption", opt))
		require.NoError(t, d.CommitDraftOption(quiz.Id))
	}

	wire := Encode(d)
	var payload wireQuiz
	require.NoError(t, json.Unmarshal(wire[0].Text, &payload))
	assert.Equal(t, "red", payload.CorrectAnswer)
}

func TestDecodeMalformedPayloads(t *testing.T) {
	one := 1
	two := 2
	wire := []WireItem{
		{Type: "table", Index: 1, Text: json.RawMessage(`"definitely not a table"`)},
		{Type: "paragraph", Index: 2, Text: json.RawMessage(`"still fine"`)},
		{Type: "no_such_type", Index: 3},
		{Type: "quiz", Index: 4, ColumnIndex: &one, Text: json.RawMessage(`{"question":"q","options":["a"]}`)},
		{Type: "list", Index: 4, ColumnIndex: &two, Text: json.RawMessage(`[1,2,3]`)},
	}

	doc, codecErrs := Decode(wire)

	// The unknown type is dropped, everything else survives.
	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Items, 4)
	assert.Len(t, codecErrs, 3)

	// The broken table fell back to its 2x2 default.
	table := doc.Pages[0].Items[0]
	require.NotNil(t, table.Table)
	assert.Equal(t, 2, table.Table.Rows)
	assert.Equal(t, 2, table.Table.Cols)

	assert.Equal(t, "still fine", doc.Pages[0].Items[1].Content)

	// The quiz/list row grouping survives the list's broken payload.
	quiz, list := doc.Pages[0].Items[2], doc.Pages[0].Items[3]
	assert.Equal(t, quiz.RowId, list.RowId)
	require.NotNil(t, list.List)
	assert.Equal(t, []string{""}, list.List.Entries)
}

func TestDecodeMissingOptionalFields(t *testing.T) {
	doc, codecErrs := Decode([]WireItem{
		{Type: "question", Index: 1},
		{Type: "image", Index: 2, Text: json.RawMessage(`{}`)},
		{Type: "list", Index: 3, Text: json.RawMessage(`{"items":[]}`)},
	})
	assert.Empty(t, codecErrs)
	require.Len(t, doc.Pages[0].Items, 3)
	assert.NotNil(t, doc.Pages[0].Items[0].Question)
	assert.NotNil(t, doc.Pages[0].Items[1].Media)
	assert.Equal(t, []string{""}, doc.Pages[0].Items[2].List.Entries)
}

func TestDecodeJSONEmpty(t *testing.T) {
	for _, blob := range [][]byte{nil, []byte("")} {
		doc, codecErrs := DecodeJSON(blob)
		assert.Empty(t, codecErrs)
		require.Len(t, doc.Pages, 1)
		assert.Empty(t, doc.Pages[0].Items)
	}

	doc, codecErrs := DecodeJSON([]byte("{broken"))
	assert.Len(t, codecErrs, 1)
	require.Len(t, doc.Pages, 1)
	assert.Empty(t, doc.Pages[0].Items)
}

func TestDecodePreservesInputOrder(t *testing.T) {
	wire := make([]WireItem, 0, 6)
	for i := 1; i <= 6; i++ {
		text, _ := json.Marshal(string(rune('a' + i - 1)))
		wire = append(wire, WireItem{Type: "paragraph", Index: i, Text: text})
	}
	doc, _ := Decode(wire)
	require.Len(t, doc.Pages[0].Items, 6)
	for i, item := range doc.Pages[0].Items {
		assert.Equal(t, string(rune('a'+i)), item.Content)
	}
}
