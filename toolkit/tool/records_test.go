package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRecordsTool(t *testing.T) {
	records := NewRecords()
	t.Run("defaults to users table", func(t *testing.T) {
		result, err := records.Call(context.Background(), `{"query": "all"}`)
		require.NoError(t, err)
		assert.Equal(t, "users", gjson.Get(result, "table").String())
		assert.Equal(t, int64(3), gjson.Get(result, "count").Int())
		assert.Equal(t, "Alice Johnson", gjson.Get(result, "results.0.name").String())
	})
	t.Run("products table", func(t *testing.T) {
		result, err := records.Call(context.Background(), `{"query": "laptops", "table": "products"}`)
		require.NoError(t, err)
		assert.Equal(t, int64(3), gjson.Get(result, "count").Int())
		assert.Equal(t, int64(999), gjson.Get(result, "results.0.price").Int())
	})
	t.Run("orders table", func(t *testing.T) {
		result, err := records.Call(context.Background(), `{"query": "recent", "table": "orders"}`)
		require.NoError(t, err)
		assert.Equal(t, int64(2), gjson.Get(result, "count").Int())
	})
	t.Run("unknown table", func(t *testing.T) {
		_, err := records.Call(context.Background(), `{"query": "all", "table": "secrets"}`)
		require.ErrorContains(t, err, "unknown table")
	})
	t.Run("missing query", func(t *testing.T) {
		_, err := records.Call(context.Background(), `{}`)
		require.ErrorContains(t, err, "query is required")
	})
}
