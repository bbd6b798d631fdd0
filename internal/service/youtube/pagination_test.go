package youtube

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectPages(t *testing.T) {
	t.Parallel()

	t.Run("walks every page in order", func(t *testing.T) {
		t.Parallel()

		pages := map[string]struct {
			items []string
			next  string
		}{
			"":   {items: []string{"a", "b"}, next: "p2"},
			"p2": {items: []string{"c"}, next: "p3"},
			"p3": {items: []string{"d", "e"}, next: ""},
		}

		var tokensSeen []string
		items, err := CollectPages(context.Background(), func(_ context.Context, token string) ([]string, string, error) {
			tokensSeen = append(tokensSeen, token)
			p := pages[token]
			return p.items, p.next, nil
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
		assert.Equal(t, []string{"", "p2", "p3"}, tokensSeen)
	})

	t.Run("single empty page", func(t *testing.T) {
		t.Parallel()

		items, err := CollectPages(context.Background(), func(_ context.Context, _ string) ([]int, string, error) {
			return nil, "", nil
		})

		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("mid-traversal error discards partial results", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("page 2 unavailable")
		calls := 0

		items, err := CollectPages(context.Background(), func(_ context.Context, token string) ([]string, string, error) {
			calls++
			if token == "" {
				return []string{"a", "b"}, "p2", nil
			}
			return nil, "", boom
		})

		require.ErrorIs(t, err, boom)
		assert.Nil(t, items)
		assert.Equal(t, 2, calls)
	})

	t.Run("empty page mid-stream keeps walking", func(t *testing.T) {
		t.Parallel()

		items, err := CollectPages(context.Background(), func(_ context.Context, token string) ([]string, string, error) {
			switch token {
			case "":
				return []string{"a"}, "p2", nil
			case "p2":
				return nil, "p3", nil
			default:
				return []string{"b"}, "", nil
			}
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, items)
	})
}
