package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelp(t *testing.T) {
	assert := assert.New(t)

	rootCmd := newRootCmd(&Cli{})

	rootCmd.SetArgs([]string{})
	assert.NoError(rootCmd.Execute())

	rootCmd.SetArgs([]string{"convert", "--help"})
	assert.NoError(rootCmd.Execute())
	rootCmd.SetArgs([]string{"diagram"})
	assert.NoError(rootCmd.Execute())
	rootCmd.SetArgs([]string{"diagram", "create", "--help"})
	assert.NoError(rootCmd.Execute())
	rootCmd.SetArgs([]string{"sample", "--help"})
	assert.NoError(rootCmd.Execute())
	rootCmd.SetArgs([]string{"stats", "--help"})
	assert.NoError(rootCmd.Execute())
	rootCmd.SetArgs([]string{"validate", "--help"})
	assert.NoError(rootCmd.Execute())
}

func TestVersion(t *testing.T) {
	cli := New("1.2.3")

	var buffer bytes.Buffer
	cli.rootCmd.SetOut(&buffer)
	cli.rootCmd.SetArgs([]string{"version"})

	assert.Equal(t, 0, cli.Execute())
	assert.Equal(t, "1.2.3\n", buffer.String())
}

func TestNoAuthorization(t *testing.T) {
	t.Setenv(envAuthorization, "")
	t.Setenv(envHttpBasicAuthUsername, "")
	t.Setenv(envHttpBasicAuthPassword, "")

	_, err := execute(nil, []string{"diagram", "delete", "--id", "d1"})
	assert.ErrorContains(t, err, "no authorization set")
}
