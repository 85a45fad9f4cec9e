package model

import (
	"errors"

	"xdao.co/stegtext/annotation"
	"xdao.co/stegtext/cidutil"
	"xdao.co/stegtext/stego"
)

// Range units for reports. The config package validates output.range_units
// against these values.
const (
	// UnitsBytes reports UTF-8 byte offsets, Go's native string index.
	UnitsBytes = "bytes"
	// UnitsUTF16 reports UTF-16 code unit offsets, as used by UTF-16 string APIs.
	UnitsUTF16 = "utf16"
)

// ScanOptions controls what ScanLine and Scan report. The zero value scans
// for hidden messages only and reports byte ranges.
type ScanOptions struct {
	// Units selects the index space of reported ranges: UnitsBytes (default)
	// or UnitsUTF16.
	Units string
	// Annotations enables localization annotation extraction with Markers.
	Annotations bool
	// Markers must pass Markers.Validate when Annotations is set.
	Markers annotation.Markers
}

// ScanLine scans one composite string and projects the result onto the
// boundary types.
//
// Scan-time failures (malformed carrier runs, unbalanced annotation markers)
// are reported in LineReport.Errors and do not fail the call. An error is
// returned only for invalid options.
func ScanLine(line int, s string, opts ScanOptions) (LineReport, error) {
	units := opts.Units
	if units == "" {
		units = UnitsBytes
	}
	if units != UnitsBytes && units != UnitsUTF16 {
		return LineReport{}, NewError(ErrInvalidRequest, "unknown range units "+units)
	}
	project := func(r stego.Range) Range {
		if units == UnitsUTF16 {
			r = stego.UTF16Range(s, r)
		}
		return Range{Offset: r.Offset, Length: r.Length}
	}

	out := LineReport{
		Line:         line,
		Visible:      stego.Strip(s),
		VisibleCID:   cidutil.VisibleCIDString(s),
		CompositeCID: cidutil.CompositeCIDString(s),
		Messages:     []MessageReport{},
	}

	found, scanErr := stego.FindAll(s)
	for _, f := range found {
		out.Messages = append(out.Messages, MessageReport{Message: f.SecretMessage, Range: project(f.Range)})
	}
	for _, e := range stego.Errors(scanErr) {
		ce := FromError(e)
		r := project(e.Range)
		ce.Range = &r
		out.Errors = append(out.Errors, *ce)
	}

	if !opts.Annotations {
		return out, nil
	}
	anns, annErr := opts.Markers.Extract(s)
	for _, a := range anns {
		out.Annotations = append(out.Annotations, AnnotationReport{
			Key:      a.Key,
			Table:    a.Table,
			UIString: a.UIString,
			Range:    project(a.Range),
		})
	}
	if annErr != nil {
		var members []error
		if joined, ok := annErr.(interface{ Unwrap() []error }); ok {
			members = joined.Unwrap()
		} else {
			members = []error{annErr}
		}
		for _, member := range members {
			var ae *annotation.Error
			if !errors.As(member, &ae) {
				// Malformed runs were already reported by FindAll above.
				continue
			}
			ce := FromError(ae)
			if ce.Code != ErrUnbalancedAnnotation {
				return LineReport{}, ce
			}
			r := project(ae.Range)
			ce.Range = &r
			out.Errors = append(out.Errors, *ce)
		}
	}
	return out, nil
}

// Scan runs ScanLine over lines, numbering them from 1.
func Scan(lines []string, opts ScanOptions) (*ScanReport, error) {
	units := opts.Units
	if units == "" {
		units = UnitsBytes
	}
	rep := &ScanReport{Units: units, Lines: make([]LineReport, 0, len(lines))}
	for i, s := range lines {
		lr, err := ScanLine(i+1, s, opts)
		if err != nil {
			return nil, err
		}
		rep.Lines = append(rep.Lines, lr)
	}
	return rep, nil
}
