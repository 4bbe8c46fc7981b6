package commands

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightflow/waybill-client/pkg/waybill"
)

func TestCreateClient_RequiresBaseURL(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := createClient()
	require.Error(t, err)
	assert.ErrorIs(t, err, waybill.ErrBaseURLRequired)
	assert.Contains(t, err.Error(), "WAYBILL_BASE_URL")
}

func TestStorePath(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("store-path", "/tmp/custom-store.yml")
	assert.Equal(t, "/tmp/custom-store.yml", storePath())

	viper.Set("store-path", "")
	assert.Contains(t, storePath(), ".waybillctl")
}

func TestOrNA(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NotAvailable, orNA(""))
	assert.Equal(t, "value", orNA("value"))
}

func TestFormatInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "42", formatInt(42))
	assert.Equal(t, "-1", formatInt(-1))
}

func TestRenderStructured(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	handled, err := renderStructured(map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.False(t, handled)

	viper.Set("output", OutputFormatJSON)

	handled, err = renderStructured(map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.True(t, handled)

	viper.Set("output", OutputFormatYAML)

	handled, err = renderStructured(map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.True(t, handled)
}
