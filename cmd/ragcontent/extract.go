package main

import (
	"encoding/json"
	"fmt"

	"github.com/shaulkr/ragcontent"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	page, err := deps.Pages.FindPageByID(deps.Ctx, c.PageID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragcontent.ErrorMessage(err))
		return err
	}

	relevant, err := deps.Filter.IsRelevant(deps.Ctx, page, false)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragcontent.ErrorMessage(err))
		return err
	}
	if !relevant {
		fmt.Fprintf(deps.Stderr, "note: page %d would not be indexed\n", c.PageID)
	}

	res, err := deps.Extractor.Extract(deps.Ctx, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragcontent.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
