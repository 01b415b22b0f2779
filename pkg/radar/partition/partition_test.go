package partition

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/stackradar/pkg/radar/chart"
)

func entry(q, r int, label string) chart.Entry {
	return chart.Entry{Quadrant: q, Ring: r, Label: label}
}

func TestPartitionKeepsInputOrder(t *testing.T) {
	cfg := chart.Default()
	entries := []chart.Entry{
		entry(1, 2, "a"),
		entry(0, 0, "b"),
		entry(1, 2, "c"),
		entry(3, 1, "d"),
		entry(1, 2, "e"),
	}
	b := Partition(cfg, entries)

	if got := b.Segment(1, 2); !slices.Equal(got, []int{0, 2, 4}) {
		t.Errorf("Segment(1,2) = %v, want [0 2 4]", got)
	}
	if got := b.Segment(0, 0); !slices.Equal(got, []int{1}) {
		t.Errorf("Segment(0,0) = %v, want [1]", got)
	}
	if got := b.Segment(2, 0); len(got) != 0 {
		t.Errorf("Segment(2,0) = %v, want empty", got)
	}
	if got := b.Segment(9, 0); got != nil {
		t.Errorf("Segment(9,0) = %v, want nil", got)
	}
	if b.Len() != len(entries) {
		t.Errorf("Len() = %d, want %d", b.Len(), len(entries))
	}
}

func TestAssignIDsPresentationOrder(t *testing.T) {
	cfg := chart.Default()
	// Two entries in quadrant 0 ring 0, three in quadrant 2 ring 1.
	entries := []chart.Entry{
		entry(0, 0, "q0-a"),
		entry(2, 1, "q2-a"),
		entry(0, 0, "q0-b"),
		entry(2, 1, "q2-b"),
		entry(2, 1, "q2-c"),
	}
	ids := AssignIDs(Partition(cfg, entries), []int{2, 0, 1, 3})

	want := []int{4, 1, 5, 2, 3}
	if !slices.Equal(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestAssignIDsRingsAscending(t *testing.T) {
	cfg := chart.Default()
	entries := []chart.Entry{
		entry(3, 2, "outer"),
		entry(3, 0, "inner"),
		entry(3, 1, "middle"),
	}
	ids := AssignIDs(Partition(cfg, entries), chart.DefaultOrder)
	if want := []int{3, 1, 2}; !slices.Equal(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestAssignIDsIsPermutation(t *testing.T) {
	cfg := chart.Default()
	var entries []chart.Entry
	for i := range 57 {
		entries = append(entries, entry((i*7)%4, (i*5)%3, fmt.Sprint(i)))
	}
	b := Partition(cfg, entries)
	ids := AssignIDs(b, chart.DefaultOrder)

	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	for i, id := range sorted {
		if id != i+1 {
			t.Fatalf("sorted ids[%d] = %d, want %d", i, id, i+1)
		}
	}
	if again := AssignIDs(Partition(cfg, entries), chart.DefaultOrder); !slices.Equal(again, ids) {
		t.Error("AssignIDs is not deterministic")
	}
}

func TestAssignIDsEmpty(t *testing.T) {
	ids := AssignIDs(Partition(chart.Default(), nil), chart.DefaultOrder)
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}
}

func ExampleAssignIDs() {
	entries := []chart.Entry{
		{Quadrant: 0, Ring: 0, Label: "Go"},
		{Quadrant: 2, Ring: 1, Label: "Rust"},
		{Quadrant: 2, Ring: 0, Label: "Zig"},
	}
	ids := AssignIDs(Partition(chart.Default(), entries), []int{2, 3, 1, 0})
	for i, e := range entries {
		fmt.Println(Label(ids[i]), e.Label)
	}
	// Output:
	// 3 Go
	// 2 Rust
	// 1 Zig
}
