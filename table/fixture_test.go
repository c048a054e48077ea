package table

import (
	"strconv"

	"github.com/hupe1980/adview/container"
)

// newObs builds an obs table with one field of every supported encoding:
//
//	cell_id    string-array  c0..c{n-1}
//	cell_type  categorical   ["B", "NK", "T"], codes i%3
//	n_genes    array         100*i
func newObs(n int) (*container.MemoryContainer, *container.MemoryGroup) {
	c := container.NewMemoryContainer()
	obs := c.Root().AddGroup("obs").SetAttr("_index", "cell_id")

	ids := make([]string, n)
	codes := make([]int64, n)
	genes := make([]int64, n)
	for i := 0; i < n; i++ {
		ids[i] = "c" + strconv.Itoa(i)
		codes[i] = int64(i % 3)
		genes[i] = int64(100 * i)
	}

	obs.AddStrings("cell_id", ids).SetAttr(EncodingTypeAttr, TagStringArray)
	ct := obs.AddGroup("cell_type").SetAttr(EncodingTypeAttr, TagCategorical)
	ct.AddStrings("categories", []string{"B", "NK", "T"})
	ct.AddInts("codes", codes)
	obs.AddInts("n_genes", genes).SetAttr(EncodingTypeAttr, TagArray)
	return c, obs
}

func addCategorical(g *container.MemoryGroup, name string, categories []string, codes []int64) {
	sub := g.AddGroup(name).SetAttr(EncodingTypeAttr, TagCategorical)
	sub.AddStrings("categories", categories)
	sub.AddInts("codes", codes)
}
