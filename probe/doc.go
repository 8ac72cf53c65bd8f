// Package probe reads the center pixel of a BGRA frame and reports it together
// with the buffer geometry.
//
// Probe never modifies the frame:
//
//	report, err := probe.Probe(f)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(report.Hex) // "#1E140A"
//
// Annotate draws the report text onto a copy of the frame, for sinks that want
// the numbers next to the image.
package probe
