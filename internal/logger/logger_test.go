package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiHandler_RespectsEachHandlerLevel(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	debug := slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	warn := slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn})

	log := slog.New(NewMultiHandler(debug, warn))
	log.Info("listing created", "listing.id", 7)

	require.Contains(t, debugBuf.String(), "listing created")
	require.Empty(t, warnBuf.String())

	log.Warn("image upload slow")
	require.Contains(t, warnBuf.String(), "image upload slow")
}

func TestMultiHandler_EnabledIfAnyHandlerIs(t *testing.T) {
	h := NewMultiHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	require.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	require.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestMultiHandler_WithAttrsPropagates(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(slog.NewTextHandler(&buf, nil))

	slog.New(h).With("user", "alice").WithGroup("req").Info("login", "status", 200)

	out := buf.String()
	require.Contains(t, out, "user=alice")
	require.Contains(t, out, "req.status=200")
}
