package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Image    *string `json:"image"`
}

func TestWrite_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]any{"data": sample{ID: 1, Username: "user1"}}, "json", false))
	assert.Equal(t, `{"data":{"id":1,"username":"user1","image":null}}`+"\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, []int{1}, "", true))
	assert.Equal(t, "[\n  1\n]\n", buf.String())
}

func TestWrite_YAMLUsesJSONNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]any{"data": sample{ID: 7, Username: "user7"}}, "yaml", false))
	assert.Equal(t, "data:\n  id: 7\n  image: null\n  username: user7\n", buf.String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, 1, "edn", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edn")
}
