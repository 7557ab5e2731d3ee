package ree_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/colmeta/colfile/internal/quick"
	"github.com/colmeta/colfile/ree"
)

type intRunEnds []int64

func (e intRunEnds) Len() int          { return len(e) }
func (e intRunEnds) IsNull(i int) bool { return false }
func (e intRunEnds) Value(i int) int64 { return e[i] }

type stringValues []string

func (v stringValues) Len() int               { return len(v) }
func (v stringValues) IsNull(i int) bool      { return v[i] == "<null>" }
func (v stringValues) Value(i int) interface{} { return v[i] }

func TestTryNewValid(t *testing.T) {
	runEnds := intRunEnds{2, 3, 5}
	values := stringValues{"a", "b", "c"}

	a, err := ree.TryNew(runEnds, values)
	if err != nil {
		t.Fatalf("TryNew: %v", err)
	}
	if got := a.LogicalLen(); got != 5 {
		t.Fatalf("LogicalLen() = %d, want 5", got)
	}
	if got := a.PhysicalLen(); got != 3 {
		t.Fatalf("PhysicalLen() = %d, want 3", got)
	}
}

func TestTryNewLengthMismatch(t *testing.T) {
	_, err := ree.TryNew(intRunEnds{1, 2, 3}, stringValues{"a", "b", "c", "d"})
	assertKind(t, err, ree.LengthMismatch)
}

func TestTryNewNonPositiveRunEnd(t *testing.T) {
	_, err := ree.TryNew(intRunEnds{0, 1, 3}, stringValues{"a", "b", "c"})
	assertKind(t, err, ree.NonPositiveRunEnd)
}

func TestTryNewNonIncreasingRunEnd(t *testing.T) {
	_, err := ree.TryNew(intRunEnds{2, 2, 5}, stringValues{"a", "b", "c"})
	assertKind(t, err, ree.NonIncreasingRunEnd)
}

func assertKind(t *testing.T, err error, kind ree.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("TryNew: expected error of kind %s, got nil", kind)
	}
	verr, ok := err.(*ree.ValidationError)
	if !ok {
		t.Fatalf("TryNew: error %v is not a *ree.ValidationError", err)
	}
	if verr.Kind != kind {
		t.Fatalf("TryNew: error kind = %s, want %s", verr.Kind, kind)
	}
}

// TestValueRoundTrip covers scenario 1 from the column chunk read path
// design notes: ["a","a","b","c","c"] encodes to run_ends=[2,3,5],
// values=["a","b","c"].
func TestValueRoundTrip(t *testing.T) {
	a, err := ree.TryNew(intRunEnds{2, 3, 5}, stringValues{"a", "b", "c"})
	if err != nil {
		t.Fatalf("TryNew: %v", err)
	}

	want := []string{"a", "a", "b", "c", "c"}
	for i, w := range want {
		v, isNull := a.Value(int64(i))
		if isNull {
			t.Fatalf("Value(%d) unexpectedly null", i)
		}
		if v.(string) != w {
			t.Fatalf("Value(%d) = %q, want %q", i, v, w)
		}
	}
}

// TestValueWithNulls covers scenario 2: run-level nulls propagate to every
// logical index in the run.
func TestValueWithNulls(t *testing.T) {
	runEnds := intRunEnds{1, 2, 3, 5, 6}
	values := stringValues{"a", "<null>", "b", "<null>", "a"}
	a, err := ree.TryNew(runEnds, values)
	if err != nil {
		t.Fatalf("TryNew: %v", err)
	}

	wantNull := []bool{false, true, false, true, true, false}
	for i, want := range wantNull {
		_, isNull := a.Value(int64(i))
		if isNull != want {
			t.Fatalf("Value(%d) isNull = %t, want %t", i, isNull, want)
		}
	}
}

func TestGetPhysicalIndexOutOfRange(t *testing.T) {
	a, err := ree.TryNew(intRunEnds{2, 3, 5}, stringValues{"a", "b", "c"})
	if err != nil {
		t.Fatalf("TryNew: %v", err)
	}
	if _, ok := a.GetPhysicalIndex(-1); ok {
		t.Fatalf("GetPhysicalIndex(-1) reported ok, want false")
	}
	if _, ok := a.GetPhysicalIndex(5); ok {
		t.Fatalf("GetPhysicalIndex(5) reported ok, want false")
	}
}

// TestGetPhysicalIndexAgainstReference is P2: for every randomly
// constructed run_ends array, the binary search result for every logical
// index matches a linear scan reference implementation.
func TestGetPhysicalIndexAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		r := rng.Intn(30) + 1
		runEnds := make(intRunEnds, r)
		values := make(stringValues, r)
		var end int64
		for i := 0; i < r; i++ {
			end += int64(rng.Intn(5) + 1)
			runEnds[i] = end
			values[i] = "v"
		}

		a, err := ree.TryNew(runEnds, values)
		if err != nil {
			t.Fatalf("TryNew: %v", err)
		}

		for i := int64(0); i < a.LogicalLen(); i++ {
			got, ok := a.GetPhysicalIndex(i)
			if !ok {
				t.Fatalf("GetPhysicalIndex(%d) reported not ok within bounds", i)
			}

			want := linearPhysicalIndex(runEnds, i)
			if got != want {
				t.Fatalf("GetPhysicalIndex(%d) = %d, want %d (run_ends=%v)", i, got, want, []int64(runEnds))
			}
		}
	}
}

func linearPhysicalIndex(runEnds intRunEnds, logicalIndex int64) int {
	var prev int64
	for i, end := range runEnds {
		if logicalIndex >= prev && logicalIndex < end {
			return i
		}
		prev = end
	}
	panic("logicalIndex out of range")
}

// dumpLogicalSequence renders one value per line, the way a fixture dump
// for a decoded page sequence would, so a mismatch can be rendered as a
// unified diff instead of a single failed equality assertion.
func dumpLogicalSequence(a *ree.Array) string {
	var b strings.Builder
	for i := int64(0); i < a.LogicalLen(); i++ {
		v, isNull := a.Value(i)
		if isNull {
			fmt.Fprintf(&b, "%d: <null>\n", i)
		} else {
			fmt.Fprintf(&b, "%d: %v\n", i, v)
		}
	}
	return b.String()
}

// TestValueRoundTripDiff is P1 (REE round-trip): encoding a logical array
// as REE and reading back every index must reproduce the input exactly,
// including null-run semantics. On mismatch this renders a unified diff
// rather than a bare string inequality, matching the fixture-comparison
// style of the teacher's writer_test.go.
func TestValueRoundTripDiff(t *testing.T) {
	input := []string{"a", "", "a", "b", "", "", "a"}
	nulls := []bool{false, true, false, false, true, true, false}

	var runEnds intRunEnds
	var values stringValues
	for i := range input {
		if i > 0 && input[i] == input[i-1] && nulls[i] == nulls[i-1] {
			runEnds[len(runEnds)-1] = int64(i + 1)
			continue
		}
		runEnds = append(runEnds, int64(i+1))
		if nulls[i] {
			values = append(values, "<null>")
		} else {
			values = append(values, input[i])
		}
	}

	a, err := ree.TryNew(runEnds, values)
	if err != nil {
		t.Fatalf("TryNew: %v", err)
	}

	var want strings.Builder
	for i, v := range input {
		if nulls[i] {
			fmt.Fprintf(&want, "%d: <null>\n", i)
		} else {
			fmt.Fprintf(&want, "%d: %v\n", i, v)
		}
	}

	got := dumpLogicalSequence(a)
	if got != want.String() {
		edits := myers.ComputeEdits(span.URIFromPath("want.txt"), want.String(), got)
		diff := fmt.Sprint(gotextdiff.ToUnified("want.txt", "got.txt", want.String(), edits))
		t.Errorf("round-trip mismatch at run_ends=%v:\n%s", []int64(runEnds), diff)
	}
}

// runDescriptor is one run of an REE array: RunLen+1 values (so no run
// is empty) sharing Value. quick.Check generates slices of these so
// TestGetPhysicalIndexQuickCheck can build arrays far larger than a
// hand-written fixture while keeping each run's length and value
// correlated, something testing/quick's single-type generator can't do.
type runDescriptor struct {
	RunLen uint8
	Value  string
}

// TestGetPhysicalIndexQuickCheck is P2, run through quick.Check (ported
// from the teacher's internal/quick, which exists precisely because
// testing/quick caps generated slices at 50 elements — too small to
// exercise GetPhysicalIndex's binary search across enough runs).
func TestGetPhysicalIndexQuickCheck(t *testing.T) {
	err := quick.Check(func(runs []runDescriptor) bool {
		if len(runs) == 0 {
			return true
		}

		var runEnds intRunEnds
		var values stringValues
		var end int64
		for _, d := range runs {
			end += int64(d.RunLen) + 1 // +1 keeps every run non-empty
			runEnds = append(runEnds, end)
			values = append(values, d.Value)
		}

		a, err := ree.TryNew(runEnds, values)
		if err != nil {
			t.Fatalf("TryNew: %v", err)
		}

		for i := int64(0); i < a.LogicalLen(); i++ {
			got, ok := a.GetPhysicalIndex(i)
			if !ok || got != linearPhysicalIndex(runEnds, i) {
				return false
			}
		}
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestValuePanicsOutOfRange(t *testing.T) {
	a, err := ree.TryNew(intRunEnds{2, 3, 5}, stringValues{"a", "b", "c"})
	if err != nil {
		t.Fatalf("TryNew: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("Value(5) did not panic")
		}
	}()
	a.Value(5)
}
