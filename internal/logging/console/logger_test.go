package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-notionmd/internal/logging"
	"github.com/goliatone/go-notionmd/internal/logging/console"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)
}

func TestConsoleLoggerLeadsWithConversionIdentifiers(t *testing.T) {
	var buf bytes.Buffer
	provider, err := console.NewProvider(console.Options{Writer: &buf, Level: "debug", TimeFunc: fixedClock})
	require.NoError(t, err)

	ctx := logging.ContextWithRun(context.Background(), "run-1234", "")
	logger := logging.ExportLogger(provider).WithContext(ctx)

	pageID := uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999")
	logger.Info("export.page.written",
		"edited_at", time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
		logging.FieldPageID, pageID,
	)

	want := "2024-03-14T15:09:26.535897Z INFO export.page.written module=notionmd.export run_id=run-1234 page_id=8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999 edited_at=2024-03-15T08:00:00Z\n"
	assert.Equal(t, want, buf.String())
}

func TestConsoleLoggerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	provider, err := console.NewProvider(console.Options{Writer: &buf, TimeFunc: fixedClock})
	require.NoError(t, err)

	logging.BlocksLogger(provider).Error("blocks.render.failed",
		logging.FieldBlockType, "paragraph",
		logging.FieldBlockID, "b-1",
		logging.FieldError, errors.New("missing payload"),
		"title", "",
	)

	line := buf.String()
	assert.Contains(t, line, " ERROR blocks.render.failed module=notionmd.blocks block_type=paragraph block_id=b-1 ")
	assert.Contains(t, line, `error="missing payload"`)
	assert.Contains(t, line, `title=""`)
}

func TestConsoleLoggerDefaultsToErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	provider, err := console.NewProvider(console.Options{Writer: &buf, TimeFunc: fixedClock})
	require.NoError(t, err)

	logger := provider.GetLogger("notionmd.properties")
	logger.Debug("properties.serialize.started")
	logger.Info("properties.serialize.completed")
	logger.Warn("properties.serialize.skipped")
	logger.Error("properties.serialize.failed", logging.FieldProperty, "Estado")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "ERROR properties.serialize.failed module=notionmd.properties property=Estado")
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	provider, err := console.NewProvider(console.Options{Writer: &buf, Level: "info", TimeFunc: time.Now})
	require.NoError(t, err)

	logger := provider.GetLogger("notionmd.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "included.info")
}

func TestConsoleLoggerKeepsDanglingArguments(t *testing.T) {
	var buf bytes.Buffer
	provider, err := console.NewProvider(console.Options{Writer: &buf, Level: "trace", TimeFunc: fixedClock})
	require.NoError(t, err)

	provider.GetLogger("").Trace("dangling", 42, "value", "orphan")

	assert.Equal(t, "2024-03-14T15:09:26.535897Z TRACE dangling arg_0=value orphan=null\n", buf.String())
}

func TestNewProviderRejectsUnknownLevel(t *testing.T) {
	_, err := console.NewProvider(console.Options{Level: "loud"})
	assert.Error(t, err)
}
