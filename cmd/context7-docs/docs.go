package main

import (
	"fmt"

	"github.com/fwojciec/context7"
)

// Run executes the docs command. The client is closed before returning.
func (c *DocsCmd) Run(deps *Dependencies) error {
	defer deps.Client.Close()

	query := c.Query
	if query == "" {
		query = c.Library + " overview and getting started"
	}

	fmt.Fprintf(deps.Stdout, "Resolving %q via Context7...\n", c.Library)
	res, err := deps.Client.ResolveLibrary(deps.Ctx, c.Library, query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", context7.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, context7.FormatResolution(res))
	if c.Verbose && len(res.Candidates) > 1 {
		fmt.Fprintln(deps.Stdout, context7.FormatCandidates(res.Candidates))
	}

	if c.Headlines {
		fmt.Fprintf(deps.Stdout, "\nFetching headlines for %q...\n\n", query)
		headlines, err := deps.Client.QueryHeadlines(deps.Ctx, res.LibraryID, query)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", context7.ErrorMessage(err))
			return err
		}
		if headlines == "" {
			headlines = "(no headlines found)"
		}
		fmt.Fprintln(deps.Stdout, headlines)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "\nQuerying docs: %q...\n\n", query)
	docs, err := deps.Client.QueryDocs(deps.Ctx, res.LibraryID, query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", context7.ErrorMessage(err))
		return err
	}
	if docs == "" {
		docs = "(no documentation returned)"
	}
	fmt.Fprintln(deps.Stdout, docs)
	return nil
}
