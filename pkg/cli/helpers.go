/*
Copyright © 2025 Lakescan Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/lakescan/lakescan/pkg/report"
	"github.com/lakescan/lakescan/pkg/serializer"
)

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() {
		return "", fmt.Errorf("unknown output format %q (supported: %v)",
			format, serializer.SupportedFormats())
	}
	return format, nil
}

// printSectionOutcomes writes the end-of-run per-section OK/FAILED listing.
func printSectionOutcomes(w io.Writer, summary *report.Summary) {
	fmt.Fprintln(w, "scan sections:")
	for _, name := range report.AllSections() {
		st := summary.Sections[name]
		switch {
		case st.OK && len(st.PartialErrors) > 0:
			fmt.Fprintf(w, "  %-15s OK (%d partial failures)\n", name, len(st.PartialErrors))
		case st.OK:
			fmt.Fprintf(w, "  %-15s OK\n", name)
		default:
			fmt.Fprintf(w, "  %-15s FAILED: %s\n", name, st.Error)
		}
	}
}
