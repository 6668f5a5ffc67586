package comment

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtraFields(t *testing.T) {
	t.Run("keeps scalars and skips comment fields", func(t *testing.T) {
		body := `{"bookId":"b1","text":"x","_id":"forged","createdAt":"2020-01-01T00:00:00Z",
			"stars":5,"ratio":0.5,"mood":"happy","spoiler":false,"note":null}`

		extra, details, err := extraFields([]byte(body))
		require.NoError(t, err)
		assert.Empty(t, details)
		assert.Equal(t, map[string]any{
			"stars":   int64(5),
			"ratio":   0.5,
			"mood":    "happy",
			"spoiler": false,
			"note":    nil,
		}, extra)
	})

	t.Run("no extras", func(t *testing.T) {
		extra, details, err := extraFields([]byte(`{"bookId":"b1","text":"x"}`))
		require.NoError(t, err)
		assert.Nil(t, extra)
		assert.Empty(t, details)
	})

	t.Run("rejects nested values", func(t *testing.T) {
		_, details, err := extraFields([]byte(`{"tags":["a"],"meta":{"k":1}}`))
		require.NoError(t, err)
		require.Len(t, details, 2)
		for _, d := range details {
			assert.Contains(t, d.Message, "must be a string, number, boolean or null")
		}
	})

	t.Run("rejects unsafe names", func(t *testing.T) {
		_, details, err := extraFields([]byte(`{"$set":1,"a.b":2}`))
		require.NoError(t, err)
		assert.Len(t, details, 2)
	})

	t.Run("caps the number of fields", func(t *testing.T) {
		fields := make([]string, 0, maxExtraFields+1)
		for i := 0; i <= maxExtraFields; i++ {
			fields = append(fields, fmt.Sprintf(`"f%d":%d`, i, i))
		}
		_, details, err := extraFields([]byte("{" + strings.Join(fields, ",") + "}"))
		require.NoError(t, err)
		require.Len(t, details, 1)
		assert.Contains(t, details[0].Message, "additional fields")
	})

	t.Run("long string value", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"essay": strings.Repeat("x", maxExtraValueLen+1)})
		_, details, err := extraFields(body)
		require.NoError(t, err)
		assert.Len(t, details, 1)
	})

	t.Run("not an object", func(t *testing.T) {
		_, _, err := extraFields([]byte(`[1]`))
		assert.Error(t, err)
	})
}

func TestComment_MarshalJSON(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("without extras", func(t *testing.T) {
		raw, err := json.Marshal(Comment{ID: "c1", BookID: "b1", Text: "hi", CreatedAt: at})
		require.NoError(t, err)
		assert.JSONEq(t, `{"_id":"c1","bookId":"b1","text":"hi","createdAt":"2024-01-02T03:04:05Z"}`, string(raw))
	})

	t.Run("extras are flattened", func(t *testing.T) {
		c := Comment{ID: "c1", BookID: "b1", Text: "hi", CreatedAt: at, Extra: map[string]any{
			"stars": int64(4),
			"text":  "shadow",
		}}
		raw, err := json.Marshal(c)
		require.NoError(t, err)
		assert.JSONEq(t, `{"_id":"c1","bookId":"b1","text":"hi","createdAt":"2024-01-02T03:04:05Z","stars":4}`, string(raw))
	})

	t.Run("in a slice", func(t *testing.T) {
		raw, err := json.Marshal([]Comment{{ID: "c1", CreatedAt: at, Extra: map[string]any{"mood": "ok"}}})
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"mood":"ok"`)
	})
}

func TestStripReserved(t *testing.T) {
	assert.Nil(t, stripReserved(nil))
	assert.Nil(t, stripReserved(map[string]any{"_id": "x"}))
	assert.Equal(t, map[string]any{"a": 1}, stripReserved(map[string]any{"a": 1, "bookId": "b"}))
}
