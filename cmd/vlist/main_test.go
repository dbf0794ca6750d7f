package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vlist/internal/cli"
	"github.com/rshade/vlist/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		require.NotNil(t, root)
		assert.Equal(t, "vlist", root.Use)

		var names []string
		for _, sub := range root.Commands() {
			names = append(names, sub.Name())
		}
		for _, want := range []string{"browse", "range", "offset", "nearest", "layout", "bench", "config"} {
			assert.Contains(t, names, want)
		}
	})
}
