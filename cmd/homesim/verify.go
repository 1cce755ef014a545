package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"homesim/internal/verify"
)

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <dataset-dir>",
		Short: "Cross-check a generated dataset's artifacts",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerify,
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	report, err := verify.Run(args[0])
	if err != nil {
		return err
	}

	var errorIssues []verify.Issue
	var warnIssues []verify.Issue
	for _, issue := range report.Issues {
		switch issue.Severity {
		case verify.SeverityError:
			errorIssues = append(errorIssues, issue)
		case verify.SeverityWarn:
			warnIssues = append(warnIssues, issue)
		}
	}

	if len(errorIssues) == 0 && len(warnIssues) == 0 {
		fmt.Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	if len(errorIssues) > 0 {
		fmt.Fprintf(os.Stdout, "Errors (%d):\n", len(errorIssues))
		printIssues(os.Stdout, errorIssues)
	}
	if len(warnIssues) > 0 {
		if len(errorIssues) > 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		fmt.Fprintf(os.Stdout, "Warnings (%d):\n", len(warnIssues))
		printIssues(os.Stdout, warnIssues)
	}

	if len(errorIssues) > 0 {
		return fmt.Errorf("verification found errors")
	}
	return nil
}

func printIssues(out *os.File, issues []verify.Issue) {
	for _, issue := range issues {
		location := issue.Entity
		if issue.Step != "" {
			if location != "" {
				location = fmt.Sprintf("%s [%s]", location, issue.Step)
			} else {
				location = issue.Step
			}
		}
		fmt.Fprintf(out, "  - %s: %s (%s)\n", location, issue.Message, issue.Code)
	}
}
