package shell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryRecord(t *testing.T) {
	h := NewHistory(DefaultHistorySize)

	assert.Equal(t, uint(1), h.Record("pwd\n"))
	assert.Equal(t, uint(2), h.Record("ls\n"))

	assert.Equal(t, []Record{
		{ID: 2, Text: "ls\n"},
		{ID: 1, Text: "pwd\n"},
	}, h.Show())
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, uint(2), h.Count())
}

func TestHistoryEviction(t *testing.T) {
	h := NewHistory(DefaultHistorySize)
	for i := 1; i <= 11; i++ {
		h.Record(fmt.Sprintf("cmd%d\n", i))
	}

	records := h.Show()
	assert.Len(t, records, 10)
	for i, r := range records {
		// Most recent first: 11, 10, ... 2
		assert.Equal(t, uint(11-i), r.ID)
		assert.Equal(t, fmt.Sprintf("cmd%d\n", 11-i), r.Text)
	}

	_, found := h.Lookup(1)
	assert.False(t, found, "oldest record should be evicted")

	r, found := h.Lookup(2)
	assert.True(t, found)
	assert.Equal(t, "cmd2\n", r.Text)
	assert.Equal(t, uint(11), h.Count())
}

func TestHistoryLookup(t *testing.T) {
	h := NewHistory(3)
	h.Record("a\n")
	h.Record("b\n")

	r, found := h.Lookup(2)
	assert.True(t, found)
	assert.Equal(t, Record{ID: 2, Text: "b\n"}, r)

	_, found = h.Lookup(0)
	assert.False(t, found)

	_, found = h.Lookup(3)
	assert.False(t, found)
}

func TestHistoryShowIsCopy(t *testing.T) {
	h := NewHistory(2)
	h.Record("a\n")

	shown := h.Show()
	shown[0].Text = "changed"

	r, _ := h.Lookup(1)
	assert.Equal(t, "a\n", r.Text)
}

func TestNewHistorySize(t *testing.T) {
	assert.Equal(t, DefaultHistorySize, NewHistory(0).Cap())
	assert.Equal(t, 1, NewHistory(1).Cap())

	h := NewHistory(1)
	h.Record("a\n")
	h.Record("b\n")
	assert.Equal(t, []Record{{ID: 2, Text: "b\n"}}, h.Show())
}
