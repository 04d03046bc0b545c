package main

import (
	"fmt"
	"path/filepath"

	"github.com/shaulkr/ragcontent"
	"github.com/shaulkr/ragcontent/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	ids, err := deps.Pages.ListPageIDs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragcontent.ErrorMessage(err))
		return err
	}

	writer := fs.NewSnapshotWriter(filepath.Dir(c.Dir), filepath.Base(c.Dir))

	exported := 0
	for _, id := range ids {
		page, err := deps.Pages.FindPageByID(deps.Ctx, id)
		if err != nil {
			_ = writer.Abort()
			return err
		}

		relevant, err := deps.Filter.IsRelevant(deps.Ctx, page, false)
		if err != nil {
			_ = writer.Abort()
			return err
		}
		if !relevant {
			continue
		}

		res, err := deps.Extractor.Extract(deps.Ctx, page)
		if err != nil {
			_ = writer.Abort()
			return err
		}

		if err := writer.Save(res); err != nil {
			_ = writer.Abort()
			return err
		}
		exported++
	}

	if exported == 0 {
		_ = writer.Abort()
		fmt.Fprintln(deps.Stdout, "no indexable pages to export")
		return nil
	}

	if err := writer.Commit(); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "exported %d pages to %s\n", exported, c.Dir)
	return nil
}
