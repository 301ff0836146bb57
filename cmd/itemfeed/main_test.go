package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/itemfeed"
	main "github.com/fwojciec/itemfeed/cmd/itemfeed"
	"github.com/fwojciec/itemfeed/mock"
	"github.com/fwojciec/itemfeed/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartPage = `<html><head><title>豆瓣高分 - 多抓鱼</title></head><body>
<div class="book-item"><a href="/books/11"><div class="title">活着</div></a><div class="info">余华</div></div>
<div class="book-item"><a href="/books/12"><div class="title">许三观卖血记</div></a><div class="info">余华</div></div>
</body></html>`

func chartFetcher(closed *bool) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string, opts itemfeed.FetchOptions) (string, error) {
			return chartPage, nil
		},
		CloseFn: func() error {
			*closed = true
			return nil
		},
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := &main.Main{DBPath: filepath.Join(t.TempDir(), "history.db")}

		err := m.Run(context.Background(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, stdout.String(), "itemfeed")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := &main.Main{DBPath: filepath.Join(t.TempDir(), "history.db")}

		err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "run")
	})

	t.Run("lists routes", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := &main.Main{DBPath: filepath.Join(t.TempDir(), "history.db")}

		err := m.Run(context.Background(), []string{"list"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "clothing <keyword>")
	})

	t.Run("runs a page route and records history", func(t *testing.T) {
		t.Parallel()

		var closed bool
		dbPath := filepath.Join(t.TempDir(), "history.db")
		stdout := &bytes.Buffer{}
		m := &main.Main{DBPath: dbPath, Fetcher: chartFetcher(&closed)}

		err := m.Run(context.Background(), []string{"run", "chart", "42", "--format", "json"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.True(t, closed)
		assert.Contains(t, stdout.String(), `"title": "豆瓣高分 - 多抓鱼"`)
		assert.Contains(t, stdout.String(), "https://www.duozhuayu.com/books/11")

		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()
		rec, err := sqlite.NewItemService(db).FindItemByLink(context.Background(), "https://www.duozhuayu.com/books/12")
		require.NoError(t, err)
		assert.False(t, rec.FirstSeen.IsZero())
	})

	t.Run("history lists recorded items", func(t *testing.T) {
		t.Parallel()

		var closed bool
		dbPath := filepath.Join(t.TempDir(), "history.db")
		m := &main.Main{DBPath: dbPath, Fetcher: chartFetcher(&closed)}
		require.NoError(t, m.Run(context.Background(), []string{"run", "chart", "42"}, &bytes.Buffer{}, &bytes.Buffer{}))

		stdout := &bytes.Buffer{}
		err := (&main.Main{DBPath: dbPath}).Run(context.Background(), []string{"history"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://www.duozhuayu.com/books/11")
	})

	t.Run("no-history leaves the database alone", func(t *testing.T) {
		t.Parallel()

		var closed bool
		dbPath := filepath.Join(t.TempDir(), "history.db")
		m := &main.Main{DBPath: dbPath, Fetcher: chartFetcher(&closed)}

		err := m.Run(context.Background(), []string{"run", "chart", "42", "--no-history"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		_, statErr := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("applies descriptor overrides", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		overrides := filepath.Join(dir, "descriptors.yaml")
		require.NoError(t, os.WriteFile(overrides, []byte("category:\n  candidates:\n    - selector: .missing\n  link:\n    selector: a\n    extract: href\n"), 0o600))
		var closed bool
		stderr := &bytes.Buffer{}
		m := &main.Main{DBPath: filepath.Join(dir, "history.db"), Fetcher: chartFetcher(&closed)}

		err := m.Run(context.Background(), []string{"--descriptors", overrides, "run", "category", "42", "--no-history"}, &bytes.Buffer{}, stderr)

		assert.Equal(t, itemfeed.EEMPTY, itemfeed.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--descriptors")
	})

	t.Run("rejects invalid descriptor override", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		overrides := filepath.Join(dir, "descriptors.yaml")
		require.NoError(t, os.WriteFile(overrides, []byte("chart:\n  candidates:\n    - selector: 'div['\n"), 0o600))
		m := &main.Main{DBPath: filepath.Join(dir, "history.db")}

		err := m.Run(context.Background(), []string{"--descriptors", overrides, "list"}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, itemfeed.EINVALID, itemfeed.ErrorCode(err))
	})

	t.Run("runs an API route with injected payloads", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		m := &main.Main{
			DBPath: filepath.Join(t.TempDir(), "history.db"),
			Payloads: &mock.PayloadFetcher{
				FetchPayloadFn: func(ctx context.Context, req *itemfeed.PayloadRequest) ([]byte, error) {
					return []byte(doubanPayload), nil
				},
			},
		}

		err := m.Run(context.Background(), []string{"run", "douban", "-f", "markdown"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "## [长安的荔枝](https://m.douban.com/book/subject/1/)")
	})

	t.Run("chart without books is an empty feed", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		overrides := filepath.Join(dir, "descriptors.yaml")
		require.NoError(t, os.WriteFile(overrides, []byte("chart:\n  candidates:\n    - selector: .missing\n  link:\n    selector: a\n    extract: href\n"), 0o600))
		var closed bool
		stdout := &bytes.Buffer{}
		m := &main.Main{DBPath: filepath.Join(dir, "history.db"), Fetcher: chartFetcher(&closed)}

		err := m.Run(context.Background(), []string{"--descriptors", overrides, "run", "chart", "42", "--no-history", "-f", "json"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"items": []`)
	})
}
