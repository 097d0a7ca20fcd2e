package dragdrop

import (
	"testing"

	"classboard-be/pkg/lessondoc"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDoc(t *testing.T, n int) (*lessondoc.Document, []*lessondoc.Item) {
	t.Helper()
	d := lessondoc.New()
	items := make([]*lessondoc.Item, 0, n)
	for i := 0; i < n; i++ {
		item, err := d.InsertItem(d.Pages[0].Id, i, lessondoc.TypeParagraph, nil)
		require.NoError(t, err)
		items = append(items, item)
	}
	return d, items
}

func TestGestureLifecycle(t *testing.T) {
	d, items := seedDoc(t, 2)
	c := New(d)

	assert.Equal(t, StateIdle, c.State())

	require.NoError(t, c.Begin(items[0].Id))
	assert.Equal(t, StateDragging, c.State())
	assert.Equal(t, items[0].Id, c.Source())

	c.Over(Target{Kind: TargetItem, ItemId: items[1].Id}, 10, 50)
	require.NotNil(t, c.Highlight())
	assert.Equal(t, Above, c.Highlight().Position)

	c.Over(Target{Kind: TargetItem, ItemId: items[1].Id}, 90, 50)
	assert.Equal(t, Below, c.Highlight().Position)

	c.Cancel()
	assert.Equal(t, StateIdle, c.State())
	assert.Nil(t, c.Highlight())
	assert.Equal(t, uuid.Nil, c.Source())
}

func TestBeginUnknownItem(t *testing.T) {
	d, _ := seedDoc(t, 1)
	c := New(d)
	err := c.Begin(uuid.New())
	var verr *lessondoc.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StateIdle, c.State())
}

func TestDropOnItem(t *testing.T) {
	t.Run("below target", func(t *testing.T) {
		d, items := seedDoc(t, 3)
		c := New(d)

		require.NoError(t, c.Begin(items[0].Id))
		c.Over(Target{Kind: TargetItem, ItemId: items[2].Id}, 90, 50)
		require.NoError(t, c.Drop(Target{Kind: TargetItem, ItemId: items[2].Id}))

		got := d.Pages[0].Items
		assert.Equal(t, items[1].Id, got[0].Id)
		assert.Equal(t, items[2].Id, got[1].Id)
		assert.Equal(t, items[0].Id, got[2].Id)
		assert.Equal(t, StateIdle, c.State())
	})

	t.Run("above target", func(t *testing.T) {
		d, items := seedDoc(t, 3)
		c := New(d)

		require.NoError(t, c.Begin(items[2].Id))
		c.Over(Target{Kind: TargetItem, ItemId: items[0].Id}, 10, 50)
		require.NoError(t, c.Drop(Target{Kind: TargetItem, ItemId: items[0].Id}))

		got := d.Pages[0].Items
		assert.Equal(t, items[2].Id, got[0].Id)
		assert.Equal(t, items[0].Id, got[1].Id)
	})

	t.Run("drop extracts the item from its row", func(t *testing.T) {
		d, items := seedDoc(t, 3)
		require.NoError(t, d.MoveItem(items[1].Id, d.Pages[0].Id, 0, &items[0].RowId))

		c := New(d)
		require.NoError(t, c.Begin(items[1].Id))
		c.Over(Target{Kind: TargetItem, ItemId: items[2].Id}, 90, 50)
		require.NoError(t, c.Drop(Target{Kind: TargetItem, ItemId: items[2].Id}))

		assert.NotEqual(t, items[0].RowId, items[1].RowId)
	})
}

func TestSelfDropIsNoOp(t *testing.T) {
	d, items := seedDoc(t, 3)
	before := d.Clone()
	c := New(d)

	require.NoError(t, c.Begin(items[1].Id))
	c.Over(Target{Kind: TargetItem, ItemId: items[1].Id}, 90, 50)
	assert.Nil(t, c.Highlight(), "hovering the dragged item must not highlight")
	require.NoError(t, c.Drop(Target{Kind: TargetItem, ItemId: items[1].Id}))

	assert.True(t, d.StructurallyEqual(before))
	assert.Equal(t, items[1].Id, d.Pages[0].Items[1].Id)
	assert.Equal(t, StateIdle, c.State())
}

func TestDropOnRowColumn(t *testing.T) {
	d, items := seedDoc(t, 4)
	require.NoError(t, d.MoveItem(items[1].Id, d.Pages[0].Id, 0, &items[0].RowId))

	c := New(d)
	require.NoError(t, c.Begin(items[3].Id))
	require.NoError(t, c.Drop(Target{Kind: TargetRowColumn, RowId: items[0].RowId}))

	assert.Equal(t, items[0].RowId, items[3].RowId)
	// Joined after the row's last member.
	groups := d.Pages[0].RowGroups()
	require.Len(t, groups, 2)
	require.Len(t, groups[0], 3)
	assert.Equal(t, items[3].Id, groups[0][2].Id)
}

func TestDropOnPlaceholder(t *testing.T) {
	d, items := seedDoc(t, 3)
	c := New(d)

	require.NoError(t, c.Begin(items[2].Id))
	require.NoError(t, c.Drop(Target{Kind: TargetPlaceholder, PageId: d.Pages[0].Id, Index: 0}))

	assert.Equal(t, items[2].Id, d.Pages[0].Items[0].Id)
}

func TestDropOnPageBackground(t *testing.T) {
	d, items := seedDoc(t, 2)
	p2 := d.AddPage(0)

	c := New(d)
	require.NoError(t, c.Begin(items[0].Id))
	require.NoError(t, c.Drop(Target{Kind: TargetPageBackground, PageId: p2.Id}))

	require.Len(t, p2.Items, 1)
	assert.Equal(t, items[0].Id, p2.Items[0].Id)
	assert.Len(t, d.Pages[0].Items, 1)
}

func TestDropOnRoot(t *testing.T) {
	d, items := seedDoc(t, 3)
	c := New(d)

	require.NoError(t, c.Begin(items[0].Id))
	require.NoError(t, c.Drop(Target{Kind: TargetRoot}))

	last := d.Pages[len(d.Pages)-1]
	assert.Equal(t, items[0].Id, last.Items[len(last.Items)-1].Id)
}

func TestDropFailureStillResets(t *testing.T) {
	d, items := seedDoc(t, 2)
	c := New(d)

	require.NoError(t, c.Begin(items[0].Id))
	err := c.Drop(Target{Kind: TargetPageBackground, PageId: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, StateIdle, c.State())
	assert.Nil(t, c.Highlight())
}

func TestDropWithoutDragIsIgnored(t *testing.T) {
	d, items := seedDoc(t, 2)
	before := d.Clone()
	c := New(d)

	require.NoError(t, c.Drop(Target{Kind: TargetItem, ItemId: items[0].Id}))
	assert.True(t, d.StructurallyEqual(before))
}
