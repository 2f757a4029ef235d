package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IBM/vmware-l4-automation/internal/config"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "labctl", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
}

func TestRoot_HasSubcommands(t *testing.T) {
	cmd := Root()

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, expected := range []string{"init", "plan", "apply", "doctor", "version"} {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
	assert.Len(t, cmd.Commands(), 5)
}

func TestRoot_PersistentFlags(t *testing.T) {
	cmd := Root()
	pf := cmd.PersistentFlags()

	for _, name := range []string{"config", "api-key", "region", "site", "vdc", "resource-group", "lab", "labs-file", "log-level", "log-format"} {
		assert.NotNil(t, pf.Lookup(name), "missing flag %s", name)
	}
	assert.Equal(t, "r", pf.Lookup("region").Shorthand)
	assert.Equal(t, "s", pf.Lookup("site").Shorthand)
	assert.Equal(t, "v", pf.Lookup("vdc").Shorthand)
	assert.Equal(t, config.DefaultLab, pf.Lookup("lab").DefValue)
}

func TestBindFlags_FlagOverridesViper(t *testing.T) {
	cmd := Root()
	v := config.NewViper()
	bindFlags(v, cmd.PersistentFlags())

	require.NoError(t, cmd.PersistentFlags().Set("site", "from-flag"))
	assert.Equal(t, "from-flag", v.GetString(config.KeySite))
	assert.Equal(t, config.DefaultLab, v.GetString(config.KeyLab))
}
