package colfile

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// DumpConsumedPages renders a table of every page a ColumnPageIterator has
// returned through GetNextPage so far: its position, kind, and value
// count. It is meant for ad-hoc debugging of a read path.
func DumpConsumedPages(w io.Writer, c *ColumnPageIterator) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"#", "kind", "num_values"})

	rows := make([][]string, len(c.consumed))
	var totalValues int
	for i, p := range c.consumed {
		rows[i] = []string{strconv.Itoa(i), p.kind.String(), strconv.Itoa(p.numValues)}
		totalValues += p.numValues
	}
	t.AppendBulk(rows)
	t.SetFooter([]string{"", "total", strconv.Itoa(totalValues)})
	t.Render()

	if err := c.Err(); err != nil {
		fmt.Fprintf(w, "iterator stopped with error: %s\n", err)
	}
}
