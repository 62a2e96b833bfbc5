package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 30, 0, 123456789, time.UTC)
	token := EncodeCursor(at, 42)
	require.NotEmpty(t, token)

	gotTime, gotID, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, at.Equal(gotTime))
	assert.Equal(t, uint64(42), gotID)
}

func TestDecodeCursor_Empty(t *testing.T) {
	gotTime, gotID, err := DecodeCursor("")
	require.NoError(t, err)
	assert.True(t, gotTime.IsZero())
	assert.Zero(t, gotID)
}

func TestDecodeCursor_Garbage(t *testing.T) {
	_, _, err := DecodeCursor("not-base64!!!")
	assert.Error(t, err)

	// Valid base64, bad shape.
	_, _, err = DecodeCursor("bm90LWEtY3Vyc29y")
	assert.Error(t, err)
}

func TestEncodeCursor_ZeroTime(t *testing.T) {
	assert.Empty(t, EncodeCursor(time.Time{}, 1))
}
