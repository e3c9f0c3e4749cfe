package transcode

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCopyPlan(t *testing.T) {
	padded := StructOf("Padded",
		Field{Name: "a", Type: Uint8},
		Field{Name: "b", Type: Uint32},
		Field{Name: "c", Type: Uint16},
		Field{Name: "d", Type: Uint16},
		Field{Name: "e", Type: Uint64},
	)
	dense := StructOf("Dense",
		Field{Name: "a", Type: Uint32},
		Field{Name: "b", Type: ArrayOf(Uint16, 2)},
		Field{Name: "c", Type: Uint64},
	)
	union := UnionOf("U", Variant{Name: "a", Tag: 0, Ordinal: 1, Type: Uint32})

	tests := []struct {
		typ  *Type
		flat bool
		want []span
	}{
		{Uint32, true, []span{{0, 0, 4}}},
		{padded, true, []span{{0, 0, 1}, {4, 4, 8}, {16, 16, 8}}},
		{dense, true, []span{{0, 0, 16}}},
		{ArrayOf(padded, 2), true, []span{{0, 0, 1}, {4, 4, 8}, {16, 16, 9}, {28, 28, 8}, {40, 40, 8}}},
		{union, false, nil},
		{StructOf("HasUnion", Field{Name: "u", Type: union}), false, nil},
		{StructOf("HasVector", Field{Name: "v", Type: VectorOf(Uint8, 0, false)}), false, nil},
		{ArrayOf(HandleOf(false), 4), false, nil},
	}

	for _, tc := range tests {
		p := planFor(tc.typ)
		if p.flat != tc.flat {
			t.Errorf("planFor(%s).flat = %v, want %v", tc.typ, p.flat, tc.flat)
			continue
		}
		for _, enc := range []Encoding{Legacy, Extensible} {
			if diff := cmp.Diff(p.spans[enc], tc.want, cmp.AllowUnexported(span{})); diff != "" {
				t.Errorf("planFor(%s) %s spans wrong (-got+want):\n%s", tc.typ, enc, diff)
			}
		}
	}
}

func TestCopyPlanConcurrent(t *testing.T) {
	typ := StructOf("Shared", Field{Name: "a", Type: Uint64})
	const n = 16
	plans := make([]*copyPlan, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			plans[i] = planFor(typ)
		}()
	}
	wg.Wait()
	for i, p := range plans {
		if p != plans[0] {
			t.Errorf("planFor returned different plan %d for the same type", i)
		}
	}
}
