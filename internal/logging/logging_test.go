package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-initgen/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("debug", "json", &buf)
	require.NoError(t, err)

	logger.Debug().Str("template", "basic").Msg("Loaded template")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "basic", entry["template"])
	assert.Equal(t, "Loaded template", entry["message"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("warn", "json", &buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("", "console", &buf)
	require.NoError(t, err)

	logger.Info().Str("plugin", "org.initgen.basic").Msg("Generated project")
	assert.Contains(t, buf.String(), "Generated project")
	assert.Contains(t, buf.String(), "plugin=org.initgen.basic")
}

func TestNew_Errors(t *testing.T) {
	_, err := logging.New("loud", "json", nil)
	assert.Error(t, err)

	_, err = logging.New("info", "xml", nil)
	assert.Error(t, err)
}
