package table

import (
	"testing"

	"github.com/hupe1980/adview/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Summaries(t *testing.T) {
	c := container.NewMemoryContainer()
	g := c.Root().AddGroup("obs")
	g.AddStrings("id", []string{"a", "b", "c", "d"}).SetAttr(EncodingTypeAttr, TagStringArray)
	addCategorical(g, "ct", []string{"x", "y", "z", "w"}, []int64{0, 2, 2, -1})
	g.AddStrings("odd", []string{"", "", "", ""}).SetAttr(EncodingTypeAttr, "mystery-type")

	cat, err := Build(c, "obs")
	require.NoError(t, err)

	got := cat.Summaries()
	require.Len(t, got, 3)

	assert.Equal(t, FieldSummary{Name: "id", Tag: TagStringArray, Encoding: EncodingStringArray}, got[0])
	assert.Equal(t, FieldSummary{
		Name:           "ct",
		Tag:            TagCategorical,
		Encoding:       EncodingCategorical,
		Categories:     4,
		UsedCategories: 2,
		InvalidCodes:   1,
	}, got[1])
	assert.Equal(t, "mystery-type", got[2].Tag)
	assert.Equal(t, EncodingUnknown, got[2].Encoding)
}
