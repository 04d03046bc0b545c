package sqlite_test

import (
	"context"
	"testing"

	"github.com/shaulkr/ragcontent"
	"github.com/shaulkr/ragcontent/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyService_HasProperty(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	page := createTestPage(t, db)
	svc := sqlite.NewPropertyService(db)
	ctx := context.Background()

	has, err := svc.HasProperty(ctx, page.ID, "flagged")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, svc.SetProperty(ctx, page.ID, "flagged", "1"))

	has, err = svc.HasProperty(ctx, page.ID, "flagged")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestClassifier(t *testing.T) {
	t.Parallel()

	t.Run("unclassified page yields zero values", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		page := createTestPage(t, db)
		classifier := sqlite.NewClassifier(db)
		ctx := context.Background()

		at, err := classifier.ArticleType(ctx, page)
		require.NoError(t, err)
		assert.Empty(t, at.Code)
		assert.Empty(t, at.Label)

		area, err := classifier.ContentArea(ctx, page)
		require.NoError(t, err)
		assert.Empty(t, area)
	})

	t.Run("reads classifications from page properties", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		page := createTestPage(t, db)
		props := sqlite.NewPropertyService(db)
		classifier := sqlite.NewClassifier(db)
		ctx := context.Background()

		require.NoError(t, props.SetProperty(ctx, page.ID, "articletype", "service_page"))
		require.NoError(t, props.SetProperty(ctx, page.ID, "articlecontentarea", "benefits"))

		at, err := classifier.ArticleType(ctx, page)
		require.NoError(t, err)
		assert.Equal(t, ragcontent.ArticleType{Code: "service_page", Label: "Service page"}, at)

		area, err := classifier.ContentArea(ctx, page)
		require.NoError(t, err)
		assert.Equal(t, "benefits", area)
	})
}
