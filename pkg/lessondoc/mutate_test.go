package lessondoc

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPage(t *testing.T, d *Document, types ...ItemType) []*Item {
	t.Helper()
	page := d.Pages[0]
	items := make([]*Item, 0, len(types))
	for _, typ := range types {
		item, err := d.InsertItem(page.Id, len(page.Items), typ, nil)
		require.NoError(t, err)
		items = append(items, item)
	}
	return items
}

func order(p *Page) []uuid.UUID {
	ids := make([]uuid.UUID, len(p.Items))
	for i, item := range p.Items {
		ids[i] = item.Id
	}
	return ids
}

func assertRowsContiguous(t *testing.T, d *Document) {
	t.Helper()
	for _, p := range d.Pages {
		seen := map[uuid.UUID]bool{}
		for _, g := range p.RowGroups() {
			assert.False(t, seen[g[0].RowId], "row %s split across non-adjacent positions", g[0].RowId)
			seen[g[0].RowId] = true
		}
	}
}

func TestMoveItemIndexCorrection(t *testing.T) {
	t.Run("source before target", func(t *testing.T) {
		d := New()
		items := seedPage(t, d, TypeParagraph, TypeParagraph, TypeParagraph, TypeParagraph)
		a, b, c, dd := items[0], items[1], items[2], items[3]

		// Dragging A to just before D, i.e. nominal index 3.
		err := d.MoveItem(a.Id, d.Pages[0].Id, 3, nil)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{b.Id, c.Id, a.Id, dd.Id}, order(d.Pages[0]))
	})

	t.Run("source after target", func(t *testing.T) {
		d := New()
		items := seedPage(t, d, TypeParagraph, TypeParagraph, TypeParagraph, TypeParagraph)
		a, b, c, dd := items[0], items[1], items[2], items[3]

		err := d.MoveItem(dd.Id, d.Pages[0].Id, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a.Id, dd.Id, b.Id, c.Id}, order(d.Pages[0]))
	})

	t.Run("across pages", func(t *testing.T) {
		d := New()
		items := seedPage(t, d, TypeParagraph, TypeParagraph)
		p2 := d.AddPage(0)

		err := d.MoveItem(items[0].Id, p2.Id, 0, nil)
		require.NoError(t, err)
		assert.Len(t, d.Pages[0].Items, 1)
		require.Len(t, p2.Items, 1)
		assert.Equal(t, items[0].Id, p2.Items[0].Id)
	})

	t.Run("target index clamped", func(t *testing.T) {
		d := New()
		items := seedPage(t, d, TypeParagraph, TypeParagraph)

		err := d.MoveItem(items[0].Id, d.Pages[0].Id, 99, nil)
		require.NoError(t, err)
		assert.Equal(t, items[0].Id, d.Pages[0].Items[1].Id)
	})

	t.Run("unknown item", func(t *testing.T) {
		d := New()
		err := d.MoveItem(uuid.New(), d.Pages[0].Id, 0, nil)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "moveItem", verr.Op)
	})
}

func TestRowContiguity(t *testing.T) {
	t.Run("joining a row lands adjacent", func(t *testing.T) {
		d := New()
		items := seedPage(t, d, TypeParagraph, TypeParagraph, TypeParagraph)
		a, b, c := items[0], items[1], items[2]

		err := d.MoveItem(c.Id, d.Pages[0].Id, 0, &a.RowId)
		require.NoError(t, err)
		assertRowsContiguous(t, d)
		assert.Equal(t, a.RowId, c.RowId)

		groups := d.Pages[0].RowGroups()
		require.Len(t, groups, 2)
		assert.Len(t, groups[0], 2)
		assert.Equal(t, b.Id, groups[1][0].Id)
	})

	t.Run("insert into a row snaps inside the run", func(t *testing.T) {
		d := New()
		items := seedPage(t, d, TypeParagraph, TypeParagraph)
		a := items[0]

		inserted, err := d.InsertItem(d.Pages[0].Id, 99, TypeParagraph, &a.RowId)
		require.NoError(t, err)
		assertRowsContiguous(t, d)
		assert.Equal(t, a.RowId, inserted.RowId)
		// Run of a is [0,1); index 99 snaps to 1, adjacent to a.
		assert.Equal(t, inserted.Id, d.Pages[0].Items[1].Id)
	})

	t.Run("foreign insert cannot split a run", func(t *testing.T) {
		d := New()
		page := d.Pages[0]
		a, err := d.InsertItem(page.Id, 0, TypeParagraph, nil)
		require.NoError(t, err)
		_, err = d.InsertItem(page.Id, 1, TypeParagraph, &a.RowId)
		require.NoError(t, err)
		b, err := d.InsertItem(page.Id, 2, TypeParagraph, nil)
		require.NoError(t, err)

		// Nominal index 1 falls inside the two-member run of a.
		err = d.MoveItem(b.Id, page.Id, 1, nil)
		require.NoError(t, err)
		assertRowsContiguous(t, d)
	})

	t.Run("contiguity survives an operation storm", func(t *testing.T) {
		d := New()
		items := seedPage(t, d, TypeParagraph, TypeHeading, TypeList, TypeTable, TypeQuiz)
		page := d.Pages[0]

		require.NoError(t, d.MoveItem(items[2].Id, page.Id, 0, &items[0].RowId))
		require.NoError(t, d.MoveItem(items[4].Id, page.Id, 2, &items[0].RowId))
		d.DeleteItem(items[1].Id)
		require.NoError(t, d.MoveItem(items[3].Id, page.Id, 1, nil))
		_, err := d.InsertItem(page.Id, 2, TypeQuestion, &items[0].RowId)
		require.NoError(t, err)
		assertRowsContiguous(t, d)
	})
}

func TestDeleteItem(t *testing.T) {
	d := New()
	items := seedPage(t, d, TypeParagraph, TypeParagraph)

	d.DeleteItem(items[0].Id)
	assert.Len(t, d.Pages[0].Items, 1)

	// Already-deleted ids are not an error.
	d.DeleteItem(items[0].Id)
	d.DeleteItem(uuid.New())
	assert.Len(t, d.Pages[0].Items, 1)
}

func TestPageOperations(t *testing.T) {
	t.Run("first page is permanent", func(t *testing.T) {
		d := New()
		err := d.DeletePage(d.Pages[0].Id)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, d.Pages, 1)
	})

	t.Run("added pages can be deleted", func(t *testing.T) {
		d := New()
		p := d.AddPage(0)
		require.Len(t, d.Pages, 2)
		require.NoError(t, d.DeletePage(p.Id))
		assert.Len(t, d.Pages, 1)
	})

	t.Run("add page after index", func(t *testing.T) {
		d := New()
		p2 := d.AddPage(0)
		p3 := d.AddPage(0)
		assert.Equal(t, p3.Id, d.Pages[1].Id)
		assert.Equal(t, p2.Id, d.Pages[2].Id)
	})

	t.Run("reorder top and bottom", func(t *testing.T) {
		d := New()
		p2 := d.AddPage(0)
		p3 := d.AddPage(1)

		require.NoError(t, d.ReorderPage(p3.Id, PageTop))
		assert.Equal(t, p3.Id, d.Pages[0].Id)

		require.NoError(t, d.ReorderPage(p3.Id, PageBottom))
		assert.Equal(t, p3.Id, d.Pages[2].Id)
		assert.Equal(t, p2.Id, d.Pages[1].Id)
	})

	t.Run("resize clamps at the floor", func(t *testing.T) {
		d := New()
		page := d.Pages[0]
		require.NoError(t, d.ResizePage(page.Id, 250))
		assert.Equal(t, 250.0, page.HeightHint)
		require.NoError(t, d.ResizePage(page.Id, -1000))
		assert.Equal(t, 0.0, page.HeightHint)
	})
}

func TestSetStyle(t *testing.T) {
	d := New()
	items := seedPage(t, d, TypeParagraph)
	id := items[0].Id

	require.NoError(t, d.SetStyle(id, StyleTextColor, "#ff0000"))
	require.NotNil(t, items[0].Style.TextColor)
	assert.Equal(t, "#ff0000", *items[0].Style.TextColor)

	// Clearing restores "inherit", not a default color.
	require.NoError(t, d.SetStyle(id, StyleTextColor, nil))
	assert.Nil(t, items[0].Style.TextColor)

	require.NoError(t, d.SetStyle(id, StyleFontSize, 18))
	require.NotNil(t, items[0].Style.FontSize)
	assert.Equal(t, 18.0, *items[0].Style.FontSize)

	assert.Error(t, d.SetStyle(id, StyleFontSize, "large"))
	assert.Error(t, d.SetStyle(id, StyleField("margin"), "10px"))
	assert.Error(t, d.SetStyle(uuid.New(), StyleTextColor, "#fff"))
}

func TestSetField(t *testing.T) {
	d := New()
	items := seedPage(t, d, TypeParagraph, TypeQuestion, TypeQuiz, TypeImage)
	para, question, quiz, image := items[0], items[1], items[2], items[3]

	require.NoError(t, d.SetField(para.Id, "content", "hello"))
	assert.Equal(t, "hello", para.Content)

	require.NoError(t, d.SetField(question.Id, "question", "2+2?"))
	require.NoError(t, d.SetField(question.Id, "answer", "4"))
	require.NoError(t, d.SetField(question.Id, "showAnswer", true))
	assert.Equal(t, "4", question.Question.Answer)
	assert.True(t, question.Question.ShowAnswer)

	require.NoError(t, d.SetField(quiz.Id, "draftOption", "option a"))
	require.NoError(t, d.SetField(image.Id, "link", "/uploads/cat.png"))
	assert.Equal(t, "/uploads/cat.png", image.Media.Link)

	require.NoError(t, d.SetField(para.Id, "height", 320))
	require.NotNil(t, para.Height)
	require.NoError(t, d.SetField(para.Id, "height", nil))
	assert.Nil(t, para.Height)

	// Wrong-type field access is a validation error, never a panic.
	assert.Error(t, d.SetField(para.Id, "answer", "nope"))
	assert.Error(t, d.SetField(question.Id, "content", "nope"))
	assert.Error(t, d.SetField(question.Id, "showAnswer", "yes"))
}

func TestTableMutations(t *testing.T) {
	d := New()
	items := seedPage(t, d, TypeTable)
	table := items[0]

	require.NoError(t, d.SetTableCell(table.Id, 0, 0, "a"))
	require.NoError(t, d.SetTableCell(table.Id, 1, 1, "d"))

	require.NoError(t, d.AddTableRow(table.Id))
	require.NoError(t, d.AddTableColumn(table.Id))

	assert.Equal(t, 3, table.Table.Rows)
	assert.Equal(t, 3, table.Table.Cols)
	assert.Equal(t, "a", table.Table.Cells[0][0])
	assert.Equal(t, "d", table.Table.Cells[1][1])
	assert.Equal(t, "", table.Table.Cells[2][2])

	assert.Error(t, d.SetTableCell(table.Id, 5, 0, "x"))

	para := seedPage(t, d, TypeParagraph)[0]
	assert.Error(t, d.AddTableRow(para.Id))
}

func TestListMutations(t *testing.T) {
	d := New()
	list := seedPage(t, d, TypeList)[0]

	// New lists start with one empty entry.
	require.Equal(t, []string{""}, list.List.Entries)

	require.NoError(t, d.SetListEntry(list.Id, 0, "first"))
	require.NoError(t, d.AddListEntry(list.Id))
	require.NoError(t, d.SetListEntry(list.Id, 1, "second"))
	assert.Equal(t, []string{"first", "second"}, list.List.Entries)

	require.NoError(t, d.RemoveListEntry(list.Id, 0))
	assert.Equal(t, []string{"second"}, list.List.Entries)

	// The last entry never disappears.
	require.NoError(t, d.RemoveListEntry(list.Id, 0))
	assert.Len(t, list.List.Entries, 1)
}

func TestCommitDraftOption(t *testing.T) {
	d := New()
	quiz := seedPage(t, d, TypeQuiz)[0]

	require.NoError(t, d.SetField(quiz.Id, "draftOption", "   "))
	require.NoError(t, d.CommitDraftOption(quiz.Id))
	assert.Empty(t, quiz.Quiz.Options)

	require.NoError(t, d.SetField(quiz.Id, "draftOption", "Paris"))
	require.NoError(t, d.CommitDraftOption(quiz.Id))
	assert.Equal(t, []string{"Paris"}, quiz.Quiz.Options)
	assert.Equal(t, "", quiz.Quiz.DraftOption)
}

func TestCloneIsDeep(t *testing.T) {
	d := New()
	items := seedPage(t, d, TypeParagraph, TypeTable)
	require.NoError(t, d.SetField(items[0].Id, "content", "before"))

	snapshot := d.Clone()
	require.NoError(t, d.SetField(items[0].Id, "content", "after"))
	require.NoError(t, d.SetTableCell(items[1].Id, 0, 0, "changed"))

	assert.Equal(t, "before", snapshot.Pages[0].Items[0].Content)
	assert.Equal(t, "", snapshot.Pages[0].Items[1].Table.Cells[0][0])
	assert.False(t, d.StructurallyEqual(snapshot))
}
