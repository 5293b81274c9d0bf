package commands

import (
	"fmt"
	"io"

	"github.com/mash-protocol/timespan/pkg/timerange"
)

// RunContains reports whether the point given as "<value> <UNIT>" lies
// within the range literal.
func RunContains(reg *timerange.Registry, rangeLiteral, pointLiteral string, w io.Writer) error {
	tr, err := reg.Parse(rangeLiteral)
	if err != nil {
		return err
	}
	unit, value, err := parseValue(pointLiteral)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, tr.Contains(unit, value))
	return nil
}

// RunIntersect prints whether two ranges intersect and their intersection.
func RunIntersect(reg *timerange.Registry, a, b string, w io.Writer) error {
	ra, err := reg.Parse(a)
	if err != nil {
		return fmt.Errorf("first range: %w", err)
	}
	rb, err := reg.Parse(b)
	if err != nil {
		return fmt.Errorf("second range: %w", err)
	}

	fmt.Fprintf(w, "Intersects:    %t\n", ra.Intersects(rb))
	if both, ok := ra.Intersection(rb); ok {
		fmt.Fprintf(w, "Intersection:  %s\n", describeRange(both))
	} else {
		fmt.Fprintf(w, "Intersection:  none\n")
	}
	return nil
}
