package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/subadmin/internal/infrastructure/config"
	sharedConfig "github.com/orris-inc/subadmin/internal/shared/config"
)

func TestNewCommand_Subcommands(t *testing.T) {
	cmd := NewCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down", "status", "create", "seed"}, names)
}

func TestSeedCommand_RequiresFile(t *testing.T) {
	cmd := NewCommand()
	cmd.SetArgs([]string{"seed"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file")
}

func TestGooseStrategy_RejectsSQLite(t *testing.T) {
	_, err := gooseStrategy(&config.Config{Database: sharedConfig.DatabaseConfig{Driver: "sqlite"}})
	require.Error(t, err)

	s, err := gooseStrategy(&config.Config{Database: sharedConfig.DatabaseConfig{Driver: "mysql"}})
	require.NoError(t, err)
	assert.Equal(t, "goose", s.GetName())
}
