package zerologger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-notionmd/internal/logging"
)

func TestProviderWritesJSONEntries(t *testing.T) {
	var buf bytes.Buffer
	provider, err := NewProvider(Config{Level: "debug", Writer: &buf})
	require.NoError(t, err)

	logger := logging.BlocksLogger(provider)
	ctx := logging.ContextWithRun(context.Background(), "run-7", "")
	logger.WithContext(ctx).Error("blocks.render.failed", logging.FieldBlockType, "toggle", logging.FieldBlockID, "b-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "blocks.render.failed", entry["message"])
	assert.Equal(t, "notionmd.blocks", entry["logger"])
	assert.Equal(t, "notionmd.blocks", entry["module"])
	assert.Equal(t, "toggle", entry["block_type"])
	assert.Equal(t, "b-1", entry["block_id"])
	assert.Equal(t, "run-7", entry["run_id"])
}

func TestProviderRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	provider, err := NewProvider(Config{Level: "warn", Writer: &buf})
	require.NoError(t, err)

	logger := provider.GetLogger("notionmd.pages")
	logger.Info("pages.convert.completed")
	logger.Warn("pages.title.fallback", "page_id", "abc")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "pages.title.fallback")
}

func TestProviderOddArgsDoNotPanic(t *testing.T) {
	var buf bytes.Buffer
	provider, err := NewProvider(Config{Level: "info", Format: "console", Writer: &buf})
	require.NoError(t, err)

	provider.GetLogger("").Info("dangling", "key")
	assert.Contains(t, buf.String(), "dangling")
}

func TestProviderDefaultsToErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	provider, err := NewProvider(Config{Writer: &buf})
	require.NoError(t, err)

	logger := logging.PropertiesLogger(provider)
	logger.Warn("properties.serialize.skipped")
	logger.Error("properties.serialize.failed", logging.FieldProperty, "Estado")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"property":"Estado"`)
}

func TestNewProviderRejectsUnknownSettings(t *testing.T) {
	_, err := NewProvider(Config{Format: "xml"})
	assert.Error(t, err)

	_, err = NewProvider(Config{Level: "loud"})
	assert.Error(t, err)
}
