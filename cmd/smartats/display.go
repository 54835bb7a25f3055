package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"smartats/ats-evaluator/internal/models"
	"smartats/ats-evaluator/internal/services"
)

func printResult(w io.Writer, resp models.EvaluateResponse) {
	heading := color.New(color.Bold, color.Underline)

	heading.Fprintln(w, "JD Match Percentage")
	fmt.Fprintln(w, color.GreenString(resp.JDMatch))
	fmt.Fprintln(w)

	heading.Fprintln(w, "Missing Keywords")
	if resp.MissingKeywordsText == "" {
		fmt.Fprintln(w, color.HiBlackString("(none)"))
	} else {
		fmt.Fprintln(w, color.YellowString(resp.MissingKeywordsText))
	}
	fmt.Fprintln(w)

	heading.Fprintln(w, "Profile Summary")
	fmt.Fprintln(w, resp.ProfileSummary)
	fmt.Fprintln(w)

	fmt.Fprintln(w, color.HiBlackString("%d page(s), %dms", resp.PageCount, resp.LatencyMs))
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printError shows the failure kind and, for rejected model output, the raw reply.
func printError(w io.Writer, err error) {
	kind := services.KindName(err)
	if kind == "internal_error" {
		kind = "error"
	}
	fmt.Fprintf(w, "%s %s\n", color.RedString("✗ %s:", kind), err)

	if raw, ok := services.RawResponse(err); ok {
		fmt.Fprintln(w, color.HiBlackString("Raw model response:"))
		fmt.Fprintln(w, strings.TrimRight(raw, "\n"))
	}
}
