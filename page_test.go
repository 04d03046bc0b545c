package ragcontent_test

import (
	"testing"

	"github.com/shaulkr/ragcontent"
	"github.com/stretchr/testify/assert"
)

func TestRenderedContent_VisibleCategories(t *testing.T) {
	t.Parallel()

	rc := &ragcontent.RenderedContent{
		Categories: []ragcontent.Category{
			{Name: "Employment"},
			{Name: "Maintenance pages", Hidden: true},
			{Name: "Rights"},
		},
	}

	assert.Equal(t, []string{"Employment", "Rights"}, rc.VisibleCategories())
}

func TestRenderedContent_VisibleCategories_Empty(t *testing.T) {
	t.Parallel()

	rc := &ragcontent.RenderedContent{}
	assert.Empty(t, rc.VisibleCategories())
}

func TestUpdateJob_DedupKey(t *testing.T) {
	t.Parallel()

	a := ragcontent.UpdateJob{ID: "job-a", PageID: 7, RevisionID: 100}
	b := ragcontent.UpdateJob{ID: "job-b", PageID: 7, RevisionID: 200}
	c := ragcontent.UpdateJob{ID: "job-c", PageID: 8}

	assert.Equal(t, a.DedupKey(), b.DedupKey(), "same page must collapse")
	assert.NotEqual(t, a.DedupKey(), c.DedupKey())
}
