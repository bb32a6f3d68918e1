package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(newReader("  hello world  \n"), "Say something", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Say something")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(newReader("partial"), "p", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}

func TestGetSimpleText_EOFEmpty(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(newReader(""), "p", &out)
	assert.Error(t, err)
}

func TestGetAmount(t *testing.T) {
	var out bytes.Buffer
	got, err := GetAmount(newReader("45.99\n"), "Amount", &out)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("45.99")))

	_, err = GetAmount(newReader("lots\n"), "Amount", &out)
	assert.Error(t, err)
}

func TestGetDate(t *testing.T) {
	var out bytes.Buffer
	fallback := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	got, err := GetDate(newReader("2024-01-02\n"), "Date", &out, fallback)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got)

	got, err = GetDate(newReader("\n"), "Date", &out, fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)

	_, err = GetDate(newReader("yesterday\n"), "Date", &out, fallback)
	assert.Error(t, err)
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(newReader("line one\nline two\n\n"), "Content", &out)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
}
