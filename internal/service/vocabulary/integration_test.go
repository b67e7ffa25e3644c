package vocabulary

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordcard-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/wordcard-backend/internal/adapter/sqlite/testhelper"
	"github.com/heartmarshall/wordcard-backend/internal/adapter/sqlite/wordstore"
	"github.com/heartmarshall/wordcard-backend/internal/provider"
)

func TestRecordWord_WithStore(t *testing.T) {
	t.Parallel()

	db := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := wordstore.New(db, logger)
	dict := &mockDictionary{FetchEntryFunc: func(ctx context.Context, word string) (*provider.DictionaryResult, error) {
		return helloResult(), nil
	}}
	svc := NewService(logger, store, dict, sqlite.NewTxManager(db))
	ctx := context.Background()

	_, err := svc.RecordWord(ctx, RecordInput{Word: "Hello", Contexts: []string{"Hello there"}})
	require.NoError(t, err)
	require.NoError(t, svc.MarkMastered(ctx, "hello", true))

	res, err := svc.RecordWord(ctx, RecordInput{Word: "hello", Contexts: []string{"Hello again", "Hello there"}})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Len(t, dict.calls, 1)

	rec, err := svc.GetRecord(ctx, "HELLO")
	require.NoError(t, err)
	assert.Equal(t, "hello", rec.Word)
	assert.True(t, rec.Mastered)
	assert.Equal(t, []string{"Hello there", "Hello again"}, rec.Contexts)
	assert.Equal(t, []string{"noun", "interjection"}, rec.Definitions.Categories())

	require.NoError(t, svc.DeleteWord(ctx, "hello"))
	words, err := svc.ListWords(ctx)
	require.NoError(t, err)
	assert.Empty(t, words)
}
