package runner

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pgtoolbelt/pgtoolbelt/catalog"
)

// List prints the whole collection grouped by section.
func List(w io.Writer) error {
	return printSnippets(w, catalog.All())
}

// SearchSnippets prints the snippets matching the term.
func SearchSnippets(w io.Writer, term string) error {
	matches := catalog.Search(term)
	if len(matches) == 0 {
		_, err := fmt.Fprintf(w, "No snippets matching %q\n", term)
		return err
	}
	return printSnippets(w, matches)
}

func printSnippets(w io.Writer, snippets []catalog.Snippet) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	lastSection := ""
	for _, snippet := range snippets {
		if snippet.Section != lastSection {
			if lastSection != "" {
				fmt.Fprintln(tw)
			}
			fmt.Fprintf(tw, "%s\n", snippet.Section)
			lastSection = snippet.Section
		}

		marker := " "
		if snippet.Destructive {
			marker = "!"
		}
		fmt.Fprintf(tw, "  %s %s\t%s\n", marker, snippet.ID, snippet.Title)
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Snippets marked ! modify server state and require --force to run.")
	return tw.Flush()
}

// Show prints one snippet in full: description, placeholders and body.
func Show(w io.Writer, id string) error {
	snippet, ok := catalog.ByID(id)
	if !ok {
		return fmt.Errorf("Unknown snippet: %s (try --list)", id)
	}

	fmt.Fprintf(w, "%s (%s)\n\n", snippet.Title, snippet.ID)
	if snippet.Description != "" {
		fmt.Fprintf(w, "%s\n\n", snippet.Description)
	}

	if len(snippet.Placeholders) > 0 {
		fmt.Fprintln(w, "Placeholders:")
		for _, placeholder := range snippet.Placeholders {
			fmt.Fprintf(w, "  %s - %s (e.g. %s)\n", placeholder.Name(), placeholder.Description, placeholder.Example)
		}
		fmt.Fprintln(w)
	}

	_, err := fmt.Fprintln(w, snippet.SQL)
	return err
}
