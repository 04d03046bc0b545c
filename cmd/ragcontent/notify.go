package main

import (
	"fmt"

	"github.com/shaulkr/ragcontent"
)

// Run executes the notify command.
func (c *NotifyCmd) Run(deps *Dependencies) error {
	page, err := deps.Pages.FindPageByID(deps.Ctx, c.PageID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragcontent.ErrorMessage(err))
		return err
	}

	var enqueued bool
	switch c.Event {
	case "updated":
		enqueued = deps.Notifier.PageUpdated(deps.Ctx, page)
	case "deleted":
		enqueued = deps.Notifier.PageDeleted(deps.Ctx, page)
	case "moved":
		enqueued = deps.Notifier.PageMoved(deps.Ctx, c.FromNamespace, page)
	}

	if enqueued {
		fmt.Fprintf(deps.Stdout, "pingback enqueued for page %d\n", c.PageID)
	} else {
		fmt.Fprintf(deps.Stdout, "no pingback for page %d\n", c.PageID)
	}
	return nil
}
