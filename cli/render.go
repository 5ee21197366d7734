package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/krancour/memberadmin"
	"github.com/pkg/errors"
)

func validateOutputFormat(output string) error {
	switch strings.ToLower(output) {
	case "table", "yaml", "json":
		return nil
	default:
		return errors.Errorf("unknown output format %q", output)
	}
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// renderView writes the view to w in the specified format.
func renderView(w io.Writer, view memberadmin.TableView, output string) error {
	switch strings.ToLower(output) {
	case "yaml":
		yamlBytes, err := yaml.Marshal(view)
		if err != nil {
			return errors.Wrap(err, "error formatting members as yaml")
		}
		fmt.Fprintln(w, string(yamlBytes))
	case "json":
		prettyJSON, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return errors.Wrap(err, "error formatting members as json")
		}
		fmt.Fprintln(w, string(prettyJSON))
	default:
		renderTable(w, view)
	}
	return nil
}

func renderTable(w io.Writer, view memberadmin.TableView) {
	if len(view.Members) == 0 {
		if view.SearchQuery != "" {
			fmt.Fprintf(w, "No members match %q.\n", view.SearchQuery)
		} else {
			fmt.Fprintln(w, "No members found.")
		}
	} else {
		table := uitable.New()
		table.AddRow(checkbox(view.SelectAll), "ID", "NAME", "EMAIL", "ROLE", "")
		for _, member := range view.Members {
			var editing string
			if view.IsEditing(member.ID) {
				editing = "<- editing"
			}
			table.AddRow(
				checkbox(view.SelectAll),
				member.ID,
				member.Name,
				member.Email,
				member.Role,
				editing,
			)
		}
		fmt.Fprintln(w, table)
	}
	footer := fmt.Sprintf(
		"page %d of %d (%d of %d members)",
		view.CurrentPage,
		view.TotalPages,
		view.FilteredCount,
		view.TotalCount,
	)
	if view.SearchQuery != "" {
		footer = fmt.Sprintf("%s, search: %q", footer, view.SearchQuery)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, footer)
}
