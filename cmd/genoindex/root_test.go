package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRootCommandRegistersSubcommands(t *testing.T) {
	cmd := newRootCommand(context.Background())
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["build"])
	require.True(t, names["search"])
}

func TestNewRootCommandVerboseFlag(t *testing.T) {
	cmd := newRootCommand(context.Background())
	require.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
}
