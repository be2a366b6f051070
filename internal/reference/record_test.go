package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_FieldsAreCaseInsensitive(t *testing.T) {
	r := NewRecord("article", "smith2001")
	r.Set("Journal", "Journal of Biological Science")

	j, ok := r.Journal()
	require.True(t, ok)
	assert.Equal(t, "Journal of Biological Science", j)

	v, ok := r.Get("JOURNAL")
	require.True(t, ok)
	assert.Equal(t, j, v)

	r.SetJournal("J. Sci. Biol.")
	assert.Equal(t, "J. Sci. Biol.", r.Fields["journal"])
}

func TestRecord_SetOnZeroValue(t *testing.T) {
	var r Record
	r.Set("title", "A title")
	assert.Equal(t, "A title", r.Fields["title"])
}

func TestCollection_Order(t *testing.T) {
	c := NewCollection(3)
	c.Add(NewRecord("article", "b"))
	c.Add(NewRecord("article", "a"))
	c.Add(NewRecord("book", "c"))

	assert.Equal(t, []string{"b", "a", "c"}, keysOf(c))
	assert.Equal(t, 3, c.Len())

	// Re-adding a key replaces in place
	replacement := NewRecord("misc", "a")
	c.Add(replacement)
	assert.Equal(t, []string{"b", "a", "c"}, keysOf(c))

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Same(t, replacement, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCollection_Journals(t *testing.T) {
	c := NewCollection(2)

	withJournal := NewRecord("article", "x")
	withJournal.SetJournal("Nature")
	c.Add(withJournal)
	c.Add(NewRecord("book", "y"))

	assert.Equal(t, map[string]string{"x": "Nature"}, c.Journals())
}

func keysOf(c *Collection) []string {
	var keys []string
	for _, r := range c.Records() {
		keys = append(keys, r.Key)
	}
	return keys
}
