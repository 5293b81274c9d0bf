package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/mash-protocol/timespan/pkg/catalog"
	"github.com/mash-protocol/timespan/pkg/timerange"
)

// RunCheck loads and validates the catalog at path and lists its entries.
func RunCheck(reg *timerange.Registry, path string, w io.Writer) error {
	c, err := catalog.LoadFile(path, reg)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Catalog %s (format %s)\n", path, c.Version())

	durations := c.DurationNames()
	fmt.Fprintf(w, "\nDurations (%d):\n", len(durations))
	for _, name := range durations {
		d, _ := c.Duration(name)
		fmt.Fprintf(w, "  %-20s %s\n", name, describeDuration(d))
	}

	ranges := c.RangeNames()
	fmt.Fprintf(w, "\nRanges (%d):\n", len(ranges))
	for _, name := range ranges {
		tr, _ := c.Range(name)
		fmt.Fprintf(w, "  %-20s %s\n", name, describeRange(tr))

		overlaps, _ := c.Intersecting(name)
		if len(overlaps) > 0 {
			fmt.Fprintf(w, "  %-20s intersects: %s\n", "", strings.Join(overlaps, ", "))
		}
	}
	return nil
}
