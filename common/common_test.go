package common

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyByName(t *testing.T) {
	cases := []struct {
		name string
		want uint32
		ok   bool
	}{
		{"Right", KeyRight, true},
		{" left ", KeyLeft, true},
		{"SPACE", KeySpace, true},
		{"KPEnter", KeyKPEnter, true},
		{"1", Key1, true},
		{"n", KeyN, true},
		{" Q", KeyQ, true},
		{"F13", 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := KeyByName(c.name)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
	assert.Equal(t, 8, Coalesce(0, 8))
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("hello", "method", "FXAA")
	assert.Contains(t, buf.String(), "method=FXAA")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestWrapIndex(t *testing.T) {
	cases := []struct {
		index, n, want int
	}{
		{0, 6, 0},
		{-1, 6, 5},
		{6, 6, 0},
		{7, 6, 1},
		{-7, 6, 5},
		{3, 0, -1},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, WrapIndex(c.index, c.n), "WrapIndex(%d, %d)", c.index, c.n)
	}
}
