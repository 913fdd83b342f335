package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"muxage/internal/episode"
	"muxage/internal/plan"
	"muxage/internal/runner"
)

// renderSeries names the series the batch is working on, derived from the
// first planned base file.
func renderSeries(out io.Writer, plans []plan.Plan) {
	if len(plans) == 0 {
		return
	}
	fmt.Fprintf(out, "Series: %s\n", episode.DeriveTitle(plans[0].BasePath))
}

// renderPairingIssues lists the files that could not be paired. Silence
// here would hide exactly the mistakes the pairing step exists to catch.
func renderPairingIssues(out io.Writer, pairs episode.PairSet) {
	writeGroup := func(label string, paths []string) {
		if len(paths) == 0 {
			return
		}
		fmt.Fprintf(out, "%s (%d):\n", label, len(paths))
		for _, path := range paths {
			fmt.Fprintf(out, "  %s\n", filepath.Base(path))
		}
	}
	writeGroup("Unmatched base files", pairs.UnmatchedA)
	writeGroup("Unmatched donor files", pairs.UnmatchedB)

	writeAmbiguous := func(label string, ambiguities []episode.Ambiguity) {
		if len(ambiguities) == 0 {
			return
		}
		fmt.Fprintf(out, "%s (%d):\n", label, len(ambiguities))
		for _, ambiguity := range ambiguities {
			fmt.Fprintf(out, "  %s:\n", ambiguity.Key)
			for _, path := range ambiguity.Paths {
				fmt.Fprintf(out, "    %s\n", filepath.Base(path))
			}
		}
	}
	writeAmbiguous("Ambiguous base keys (excluded)", pairs.AmbiguousA)
	writeAmbiguous("Ambiguous donor keys (excluded)", pairs.AmbiguousB)
}

func renderPlans(out io.Writer, plans []plan.Plan) {
	if len(plans) == 0 {
		fmt.Fprintln(out, "Nothing to do.")
		return
	}

	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		speedfix := "-"
		if p.Speedfix.Apply {
			speedfix = "yes"
		}
		preprocess := "-"
		if p.PreprocessRequired {
			preprocess = "yes"
		}
		offset := "-"
		if p.OffsetMs != 0 {
			offset = strconv.Itoa(p.OffsetMs) + " ms"
		}
		rows = append(rows, []string{
			p.Key,
			filepath.Base(p.BasePath),
			filepath.Base(p.DonorPath),
			speedfix,
			offset,
			preprocess,
			filepath.Base(p.OutputPath),
		})
	}

	fmt.Fprintln(out, renderTable(
		[]string{"KEY", "BASE", "DONOR", "SPEEDFIX", "OFFSET", "PREPROCESS", "OUTPUT"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	))
}

func renderResults(out io.Writer, results []runner.JobResult) {
	if len(results) == 0 {
		return
	}

	rows := make([][]string, 0, len(results))
	for _, result := range results {
		detail := result.Detail
		if len(detail) > 60 {
			detail = detail[:57] + "..."
		}
		elapsed := "-"
		if result.Duration > 0 {
			elapsed = result.Duration.Round(time.Millisecond).String()
		}
		rows = append(rows, []string{result.Key, string(result.Status), elapsed, detail})
	}

	fmt.Fprintln(out, renderTable(
		[]string{"KEY", "STATUS", "ELAPSED", "DETAIL"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	))
}

func renderSummary(out io.Writer, summary runner.Summary) {
	fmt.Fprintf(out, "Planned %d, succeeded %d, failed %d, skipped %d\n",
		summary.Planned, summary.Succeeded, summary.Failed, summary.Skipped)
}
