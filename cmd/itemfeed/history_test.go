package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/itemfeed"
	main "github.com/fwojciec/itemfeed/cmd/itemfeed"
	"github.com/fwojciec/itemfeed/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints records in the feed zone", func(t *testing.T) {
		t.Parallel()

		var gotFilter itemfeed.ItemFilter
		history := &mock.ItemHistory{
			FindItemsFn: func(_ context.Context, f itemfeed.ItemFilter) ([]*itemfeed.ItemRecord, error) {
				gotFilter = f
				return []*itemfeed.ItemRecord{{
					Link:      "https://www.duozhuayu.com/books/1",
					FirstSeen: time.Date(2024, 4, 30, 16, 0, 0, 0, time.UTC),
					UpdatedAt: time.Date(2024, 5, 1, 16, 0, 0, 0, time.UTC),
				}}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, History: history}

		err := (&main.HistoryCmd{Limit: 5, Since: time.Hour}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 5, gotFilter.Limit)
		require.NotNil(t, gotFilter.Since)
		assert.WithinDuration(t, time.Now().Add(-time.Hour), *gotFilter.Since, time.Minute)
		assert.Equal(t, "2024-05-02 00:00:00  2024-05-01 00:00:00  https://www.duozhuayu.com/books/1\n", stdout.String())
	})

	t.Run("no since means no lower bound", func(t *testing.T) {
		t.Parallel()

		var gotFilter itemfeed.ItemFilter
		history := &mock.ItemHistory{
			FindItemsFn: func(_ context.Context, f itemfeed.ItemFilter) ([]*itemfeed.ItemRecord, error) {
				gotFilter = f
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, History: history}

		err := (&main.HistoryCmd{Limit: 20}).Run(deps)

		require.NoError(t, err)
		assert.Nil(t, gotFilter.Since)
		assert.Contains(t, stdout.String(), "No items recorded")
	})

	t.Run("reports lookup failure", func(t *testing.T) {
		t.Parallel()

		history := &mock.ItemHistory{
			FindItemsFn: func(context.Context, itemfeed.ItemFilter) ([]*itemfeed.ItemRecord, error) {
				return nil, errors.New("disk I/O error")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, History: history}

		err := (&main.HistoryCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
