package testutil

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/hupe1980/adview/container"
	"github.com/hupe1980/adview/table"
)

// CellTypes are the categories of the generated obs cell_type field.
var CellTypes = []string{"B", "CD4 T", "CD8 T", "DC", "Mono", "NK", "Platelet"}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Barcodes returns n distinct 10x-style cell barcodes ("ACGT...-1").
func (r *RNG) Barcodes(n int) []string {
	const bases = "ACGT"
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)

	r.mu.Lock()
	defer r.mu.Unlock()
	for len(out) < n {
		b := make([]byte, 16, 18)
		for i := range b {
			b[i] = bases[r.rand.Intn(len(bases))]
		}
		s := string(append(b, '-', '1'))
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Codes returns n category codes in [0, k).
func (r *RNG) Codes(n, k int) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(r.rand.Intn(k))
	}
	return out
}

// Counts returns n non-negative integers below limit.
func (r *RNG) Counts(n int, limit int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, n)
	for i := range out {
		out[i] = r.rand.Int63n(limit)
	}
	return out
}

// NewAnnData builds an in-memory container with an obs table of nObs rows
// and a var table of nVar rows.
//
// obs fields: _index (string-array), cell_type (categorical over
// CellTypes), n_genes (array). var fields: _index (string-array),
// highly_variable (categorical), n_cells (array).
func NewAnnData(rng *RNG, nObs, nVar int) *container.MemoryContainer {
	c := container.NewMemoryContainer()

	obs := c.Root().AddGroup("obs").SetAttr("_index", "_index")
	obs.AddStrings("_index", rng.Barcodes(nObs)).
		SetAttr(table.EncodingTypeAttr, table.TagStringArray)
	AddCategorical(obs, "cell_type", CellTypes, rng.Codes(nObs, len(CellTypes)))
	obs.AddInts("n_genes", rng.Counts(nObs, 5000)).
		SetAttr(table.EncodingTypeAttr, table.TagArray)

	genes := make([]string, nVar)
	for i := range genes {
		genes[i] = "ENSG" + strconv.Itoa(100000+i)
	}
	v := c.Root().AddGroup("var").SetAttr("_index", "_index")
	v.AddStrings("_index", genes).
		SetAttr(table.EncodingTypeAttr, table.TagStringArray)
	AddCategorical(v, "highly_variable", []string{"False", "True"}, rng.Codes(nVar, 2))
	v.AddInts("n_cells", rng.Counts(nVar, int64(nObs)+1)).
		SetAttr(table.EncodingTypeAttr, table.TagArray)

	return c
}

// AddCategorical adds a categorical field group to g.
func AddCategorical(g *container.MemoryGroup, name string, categories []string, codes []int64) *container.MemoryGroup {
	sub := g.AddGroup(name).SetAttr(table.EncodingTypeAttr, table.TagCategorical)
	sub.AddStrings("categories", categories)
	sub.AddInts("codes", codes)
	return sub
}
