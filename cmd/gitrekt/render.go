package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Vagvedi/gitrekt/internal/core/roast"
)

// renderReport writes the human readable roast, one table row per finding
func renderReport(w io.Writer, rep roast.Report) error {
	bold := color.New(color.Bold)
	if _, err := bold.Fprintf(w, "@%s ", rep.Username); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "scored %s/100\n", scoreColor(rep.OverallScore).Sprint(rep.OverallScore)); err != nil {
		return err
	}

	m := rep.Metrics
	langs := "none"
	if len(m.PrimaryLanguages) > 0 {
		langs = strings.Join(m.PrimaryLanguages, ", ")
	}
	if _, err := fmt.Fprintf(w, "%d repos, %d stars, %d commits, languages: %s\n\n",
		m.TotalRepos, m.TotalStars, m.TotalCommits, langs); err != nil {
		return err
	}

	if len(rep.Roasts) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Severity", "Roast", "Repository", "Details"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignLeft
		})

		rows := make([][]string, 0, len(rep.Roasts))
		for _, r := range rep.Roasts {
			repo := r.Repository
			if repo == "" {
				repo = "-"
			}
			rows = append(rows, []string{severityColor(r.Severity).Sprint(string(r.Severity)), r.Title, repo, r.Message})
		}
		if err := table.Bulk(rows); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	_, err := color.New(color.Bold, color.FgCyan).Fprintln(w, rep.FinalVerdict)
	return err
}

func severityColor(s roast.Severity) *color.Color {
	switch s {
	case roast.SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	case roast.SeverityWarning:
		return color.New(color.FgYellow)
	}
	return color.New(color.FgBlue)
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 80:
		return color.New(color.FgGreen, color.Bold)
	case score >= 50:
		return color.New(color.FgYellow, color.Bold)
	}
	return color.New(color.FgRed, color.Bold)
}
