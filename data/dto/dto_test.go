package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenreListAcceptsListOrString(t *testing.T) {
	var body CreateUserBookRequestBody
	require.NoError(t, json.Unmarshal([]byte(`{"genres":["Fiction","Classics"]}`), &body))
	assert.Equal(t, GenreList{"Fiction", "Classics"}, body.Genres)

	body = CreateUserBookRequestBody{}
	require.NoError(t, json.Unmarshal([]byte(`{"genres":"Fiction, Classics,"}`), &body))
	assert.Equal(t, GenreList{"Fiction", "Classics"}, body.Genres)

	body = CreateUserBookRequestBody{}
	require.NoError(t, json.Unmarshal([]byte(`{"genres":["Body, Mind & Spirit"]}`), &body))
	assert.Equal(t, GenreList{"Body, Mind & Spirit"}, body.Genres)

	body = CreateUserBookRequestBody{}
	require.NoError(t, json.Unmarshal([]byte(`{"genres":""}`), &body))
	assert.Empty(t, body.Genres)

	err := json.Unmarshal([]byte(`{"genres":42}`), &body)
	assert.Error(t, err)
}
