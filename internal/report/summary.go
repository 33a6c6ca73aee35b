// Package report renders batch outcomes for the operator. This is a
// presentation concern only; results stay in memory.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mikey/llm-auto-responder/internal/core"
)

const maxResponsePreview = 60

// WriteSummary writes a four-column table of results, one row per
// processed email, in processing order.
func WriteSummary(w io.Writer, results []core.ProcessingResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "EMAIL ID\tSUCCESS\tCLASSIFICATION\tRESPONSE SENT")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\n",
			r.EmailID, r.Success, r.Classification, preview(r.ResponseSent))
	}

	return tw.Flush()
}

func preview(s string) string {
	if len(s) <= maxResponsePreview {
		return s
	}
	return s[:maxResponsePreview] + "..."
}
