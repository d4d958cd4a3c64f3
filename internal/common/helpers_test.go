package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluralizeUA(t *testing.T) {
	one, few, many := "запис", "записи", "записів"

	cases := []struct {
		n    int64
		want string
	}{
		{0, many},
		{1, one},
		{2, few},
		{4, few},
		{5, many},
		{11, many},
		{12, many},
		{14, many},
		{21, one},
		{22, few},
		{25, many},
		{101, one},
		{111, many},
		{-3, few},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PluralizeUA(tc.n, one, few, many), "n=%d", tc.n)
	}
}

func TestFormatDateTime(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Kyiv")
	require.NoError(t, err)

	// лето: UTC+3
	utc := time.Date(2025, 7, 15, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "15.07.2025 12:30", FormatDateTime(utc, loc))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "привіт", TruncateRunes("привіт", 10))
	assert.Equal(t, "прив", TruncateRunes("привіт", 4))
	assert.Equal(t, "", TruncateRunes("", 5))
	assert.Equal(t, "", TruncateRunes("abc", 0))
}
