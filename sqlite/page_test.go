package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shaulkr/ragcontent"
	"github.com/shaulkr/ragcontent/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPage(t *testing.T, db *sqlite.DB) *ragcontent.Page {
	t.Helper()
	svc := sqlite.NewPageService(db)
	page := &ragcontent.Page{
		ID:         7,
		Title:      "Unemployment benefits",
		Language:   "he",
		IsWikitext: true,
		URL:        "https://wiki.example.org/wiki/Unemployment_benefits",
	}
	require.NoError(t, svc.UpsertPage(context.Background(), page))
	return page
}

func TestPageService_FindPageByID(t *testing.T) {
	t.Parallel()

	t.Run("returns stored page marked as existing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		page := createTestPage(t, db)
		svc := sqlite.NewPageService(db)

		got, err := svc.FindPageByID(context.Background(), page.ID)
		require.NoError(t, err)
		assert.Equal(t, page.Title, got.Title)
		assert.Equal(t, page.URL, got.URL)
		assert.True(t, got.Exists)
		assert.True(t, got.IsWikitext)
	})

	t.Run("returns ENOTFOUND for unknown page", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewPageService(db)

		_, err := svc.FindPageByID(context.Background(), 999)
		require.Error(t, err)
		assert.Equal(t, ragcontent.ENOTFOUND, ragcontent.ErrorCode(err))
	})

	t.Run("upsert replaces metadata in place", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		page := createTestPage(t, db)
		svc := sqlite.NewPageService(db)

		page.Title = "Renamed"
		page.IsRedirect = true
		require.NoError(t, svc.UpsertPage(context.Background(), page))

		got, err := svc.FindPageByID(context.Background(), page.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.True(t, got.IsRedirect)
	})
}

func TestPageService_SaveRevision(t *testing.T) {
	t.Parallel()

	t.Run("new revision becomes current", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		page := createTestPage(t, db)
		svc := sqlite.NewPageService(db)
		ctx := context.Background()

		first, err := svc.SaveRevision(ctx, page.ID, "old text", "<p>old</p>", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		second, err := svc.SaveRevision(ctx, page.ID, "new text", "<p>new</p>", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		rev, err := svc.CurrentRevision(ctx, page.ID)
		require.NoError(t, err)
		assert.Equal(t, second.ID, rev.ID)
		assert.Equal(t, page.ID, rev.PageID)
		assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), rev.Timestamp)

		rendered, err := svc.RenderPage(ctx, page.ID)
		require.NoError(t, err)
		assert.Equal(t, "<p>new</p>", rendered.HTML)
	})

	t.Run("exclude directive sets marker and tracking category", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		page := createTestPage(t, db)
		pages := sqlite.NewPageService(db)
		props := sqlite.NewPropertyService(db)
		ctx := context.Background()

		_, err := pages.SaveRevision(ctx, page.ID, "Text with __NORAG__ marker", "<p>x</p>", time.Now())
		require.NoError(t, err)

		has, err := props.HasProperty(ctx, page.ID, ragcontent.ExcludeMarkerProp)
		require.NoError(t, err)
		assert.True(t, has)

		rendered, err := pages.RenderPage(ctx, page.ID)
		require.NoError(t, err)
		require.Len(t, rendered.Categories, 1)
		assert.Equal(t, ragcontent.ExcludeTrackingCategory, rendered.Categories[0].Name)
		assert.True(t, rendered.Categories[0].Hidden)
		assert.Empty(t, rendered.VisibleCategories())
	})

	t.Run("removing directive clears marker and category", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		page := createTestPage(t, db)
		pages := sqlite.NewPageService(db)
		props := sqlite.NewPropertyService(db)
		ctx := context.Background()

		_, err := pages.SaveRevision(ctx, page.ID, "__no_rag__", "<p>x</p>", time.Now())
		require.NoError(t, err)
		_, err = pages.SaveRevision(ctx, page.ID, "plain text", "<p>y</p>", time.Now())
		require.NoError(t, err)

		has, err := props.HasProperty(ctx, page.ID, ragcontent.ExcludeMarkerProp)
		require.NoError(t, err)
		assert.False(t, has)

		rendered, err := pages.RenderPage(ctx, page.ID)
		require.NoError(t, err)
		assert.Empty(t, rendered.Categories)
	})
}

func TestPageService_RenderPage(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND without a revision", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		page := createTestPage(t, db)
		svc := sqlite.NewPageService(db)

		_, err := svc.RenderPage(context.Background(), page.ID)
		require.Error(t, err)
		assert.Equal(t, ragcontent.ENOTFOUND, ragcontent.ErrorCode(err))

		_, err = svc.CurrentRevision(context.Background(), page.ID)
		require.Error(t, err)
		assert.Equal(t, ragcontent.ENOTFOUND, ragcontent.ErrorCode(err))
	})

	t.Run("categories preserve declaration order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		page := createTestPage(t, db)
		svc := sqlite.NewPageService(db)
		ctx := context.Background()

		_, err := svc.SaveRevision(ctx, page.ID, "text", "<p>x</p>", time.Now())
		require.NoError(t, err)
		require.NoError(t, svc.SetCategories(ctx, page.ID, []ragcontent.Category{
			{Name: "Zebra"},
			{Name: "Apple"},
			{Name: "Maintenance", Hidden: true},
		}))

		rendered, err := svc.RenderPage(ctx, page.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Zebra", "Apple"}, rendered.VisibleCategories())
	})
}

func TestPageService_DeletePage(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	page := createTestPage(t, db)
	svc := sqlite.NewPageService(db)
	ctx := context.Background()

	_, err := svc.SaveRevision(ctx, page.ID, "text", "<p>x</p>", time.Now())
	require.NoError(t, err)

	require.NoError(t, svc.DeletePage(ctx, page.ID))

	_, err = svc.FindPageByID(ctx, page.ID)
	assert.Equal(t, ragcontent.ENOTFOUND, ragcontent.ErrorCode(err))
	_, err = svc.CurrentRevision(ctx, page.ID)
	assert.Equal(t, ragcontent.ENOTFOUND, ragcontent.ErrorCode(err))
}
