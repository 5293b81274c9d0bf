package commands

import (
	"fmt"
	"io"

	"github.com/mash-protocol/timespan/pkg/duration"
	"github.com/mash-protocol/timespan/pkg/timerange"
	"github.com/mash-protocol/timespan/pkg/timeunit"
)

// RunParse parses a duration or range literal and prints its canonical form
// and derived properties.
func RunParse(reg *timerange.Registry, literal string, w io.Writer) error {
	if isRange(literal) {
		tr, err := reg.Parse(literal)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Kind:    range\n")
		fmt.Fprintf(w, "Value:   %s\n", tr)
		fmt.Fprintf(w, "Shape:   %s\n", tr.Shape())
		fmt.Fprintf(w, "Length:  %s\n", describeDuration(tr.Length()))
		return nil
	}

	d, err := duration.Parse(literal)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Kind:    duration\n")
	fmt.Fprintf(w, "Value:   %s\n", describeDuration(d))
	fmt.Fprintf(w, "Nanos:   %d\n", d.CanonicalValue())
	if !d.IsInfinite() {
		fmt.Fprintf(w, "Go:      %s\n", d.Std())
	}
	return nil
}

// RunConvert converts a duration literal into the named unit.
func RunConvert(literal, unitName string, w io.Writer) error {
	d, err := duration.Parse(literal)
	if err != nil {
		return err
	}
	unit, err := timeunit.ParseUnit(unitName)
	if err != nil {
		return err
	}

	converted := d.ConvertTo(unit)
	fmt.Fprintln(w, describeDuration(converted))
	if !converted.Equal(d) {
		fmt.Fprintf(w, "(inexact conversion of %s)\n", d)
	}
	return nil
}
