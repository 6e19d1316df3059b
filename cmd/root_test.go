package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{
		"generate", "serve", "list-categories", "list-galleries",
		"show-gallery", "show-nav", "export", "inject-nav", "publish",
	} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("v"), "klog verbosity flag")
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PHOTO_ROOT", "from-env")
	t.Setenv("OUTPUT_ROOT", "site")
	t.Setenv("PORTFOLIO_CONFIG", "")
	t.Setenv("PORT", "")

	photoRoot, portNumber = "from-flag", "9090"
	t.Cleanup(func() { photoRoot, portNumber = "", "" })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.PhotoRoot)
	assert.Equal(t, "site", cfg.OutputRoot)
	assert.Equal(t, "9090", cfg.Port)
}
