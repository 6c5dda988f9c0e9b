package main

import (
	"bytes"
	"strings"
	"testing"

	"aidoc/internal/browser"
	"aidoc/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.True(t, strings.HasPrefix(out.String(), "aidoc "+version))
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"model", "plain"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "flag %s", name)
	}
	for _, name := range []string{"config", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "flag %s", name)
	}

	cfgFlag := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, cfgFlag)
	assert.Equal(t, ".aidoc/config.yaml", cfgFlag.DefValue)
}

func TestBrowserConfig_CarriesFlags(t *testing.T) {
	got := browserConfig(config.BrowserConfig{
		Bin:         "/usr/bin/chromium",
		DebuggerURL: "ws://127.0.0.1:9222/devtools/browser/x",
		NoSandbox:   true,
		Flags:       []string{"--disable-gpu", "window-size=1280,800"},
	})

	assert.Equal(t, browser.Config{
		Bin:         "/usr/bin/chromium",
		DebuggerURL: "ws://127.0.0.1:9222/devtools/browser/x",
		NoSandbox:   true,
		Flags:       []string{"--disable-gpu", "window-size=1280,800"},
	}, got)
}
