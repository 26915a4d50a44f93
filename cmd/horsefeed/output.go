package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mamadbah2/horsefeed/internal/domain/models"
)

func writeEvaluation(w io.Writer, eval models.Evaluation, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(eval)
	case "text":
		return writeEvaluationText(w, eval)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeEvaluationText(w io.Writer, eval models.Evaluation) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if eval.Bracket.Exact() {
		fmt.Fprintf(tw, "Weight:\t%g kg (table %d kg)\n", eval.Weight, eval.Bracket.Low)
	} else {
		fmt.Fprintf(tw, "Weight:\t%g kg (interpolated %d-%d kg)\n", eval.Weight, eval.Bracket.Low, eval.Bracket.High)
	}
	fmt.Fprintf(tw, "Subcategory:\t%s\n", eval.Subcategory)
	if eval.Notes != "" {
		fmt.Fprintf(tw, "Notes:\t%s\n", eval.Notes)
	}
	if eval.Warning != "" {
		fmt.Fprintf(tw, "Warning:\t%s\n", eval.Warning)
	}

	if eval.Found {
		fmt.Fprintln(tw, "\nREQUIREMENT")
		for _, e := range eval.Requirement.Entries {
			fmt.Fprintf(tw, "%s\t%s\n", e.Nutrient, e.Value)
		}
	}

	if len(eval.Diet) > 0 {
		fmt.Fprintln(tw, "\nDIET")
		for _, row := range eval.Diet {
			fmt.Fprintf(tw, "%s\t%g kg\n", row.Feed, row.Kg)
		}
		fmt.Fprintln(tw, "\nDIET NUTRIENTS")
		for _, t := range eval.Totals {
			fmt.Fprintf(tw, "%s\t%.2f\n", t.Nutrient, t.Total)
		}
	}

	if len(eval.Comparison) > 0 {
		fmt.Fprintln(tw, "\nCOVERAGE")
		fmt.Fprintln(tw, "Nutrient\tIntake\tRequired\tDifference\tCoverage\tStatus")
		for _, r := range eval.Comparison {
			fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.1f%%\t%s\n", r.Nutrient, r.Actual, r.Target, r.Difference, r.Percent, r.Status)
		}
	}

	return tw.Flush()
}
