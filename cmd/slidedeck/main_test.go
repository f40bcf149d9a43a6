package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deckcontext "slidedeck/internal/context"
	"slidedeck/internal/services"
	"slidedeck/internal/version"
)

// withEnv runs the test against env instead of the process environment.
func withEnv(t *testing.T, env deckcontext.MapEnv) {
	t.Helper()
	original := envProvider
	originalRegistry := services.GetGlobalRegistry()
	if _, ok := env["GLAMOUR_STYLE"]; !ok {
		env["GLAMOUR_STYLE"] = "notty"
	}
	envProvider = env
	t.Cleanup(func() {
		envProvider = original
		services.SetGlobalRegistry(originalRegistry)
		deckcontext.ResetGlobalConfiguration()
		checkVerify = false
		checkJSON = false
		versionDetailed = false
		validateWithDefaults = false
	})
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	return cmd, out
}

func TestInitializeServices(t *testing.T) {
	withEnv(t, deckcontext.MapEnv{})

	registry, err := initializeServices(envProvider, "")
	require.NoError(t, err)
	assert.Same(t, registry, services.GetGlobalRegistry())

	for _, name := range []string{"configuration", "layout_catalog", "verification", "markdown"} {
		_, err := registry.GetService(name)
		assert.NoError(t, err, name)
	}
}

func TestInitializeServices_EnvFile(t *testing.T) {
	withEnv(t, deckcontext.MapEnv{"LLM": "anthropic"})
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ANTHROPIC_API_KEY=sk-ant\n"), 0600))

	registry, err := initializeServices(envProvider, envFile)
	require.NoError(t, err)
	config, err := registry.ConfigurationService()
	require.NoError(t, err)
	assert.True(t, config.HasRequiredKey())
}

func TestRunCheck(t *testing.T) {
	tests := []struct {
		name        string
		env         deckcontext.MapEnv
		expectError bool
		contains    []string
	}{
		{
			name:     "openai key present",
			env:      deckcontext.MapEnv{"OPENAI_API_KEY": "sk-1"},
			contains: []string{"OPENAI_API_KEY", "env"},
		},
		{
			name:        "ollama url missing",
			env:         deckcontext.MapEnv{"LLM": "ollama"},
			expectError: true,
			contains:    []string{"OLLAMA_URL", "LLM configuration required"},
		},
		{
			name:        "unsupported provider",
			env:         deckcontext.MapEnv{"LLM": "mistral"},
			expectError: true,
			contains:    []string{"OPENAI_API_KEY", "mistral"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withEnv(t, tt.env)
			cmd, out := newTestCommand()

			err := runCheck(cmd, nil)
			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, errMissingKey)
			} else {
				require.NoError(t, err)
			}
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestRunCheck_JSON(t *testing.T) {
	withEnv(t, deckcontext.MapEnv{"LLM": "Google", "GOOGLE_API_KEY": " g-key "})
	checkJSON = true
	cmd, out := newTestCommand()

	require.NoError(t, runCheck(cmd, nil))

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, true, report["hasKey"])
	assert.Equal(t, "google", report["provider"])
	assert.Equal(t, "Google", report["requestedProvider"])
	assert.Equal(t, "env", report["source"])
	assert.NotContains(t, report, "verified")
}

func TestRunCheck_VerifyWithoutKeySkipsProbe(t *testing.T) {
	withEnv(t, deckcontext.MapEnv{"LLM": "custom"})
	checkVerify = true
	checkJSON = true
	cmd, out := newTestCommand()

	err := runCheck(cmd, nil)
	assert.ErrorIs(t, err, errMissingKey)
	assert.NotContains(t, out.String(), "verified")
}

func TestRunLayouts(t *testing.T) {
	withEnv(t, deckcontext.MapEnv{})

	cmd, out := newTestCommand()
	require.NoError(t, runLayoutsList(cmd, nil))
	assert.Contains(t, out.String(), "thankyou-ey-slide")

	cmd, out = newTestCommand()
	require.NoError(t, runLayoutsShow(cmd, []string{"stats-ey-slide"}))
	assert.Contains(t, out.String(), `"schema"`)

	cmd, _ = newTestCommand()
	assert.Error(t, runLayoutsShow(cmd, []string{"missing"}))
}

func TestRunLayoutsValidate(t *testing.T) {
	withEnv(t, deckcontext.MapEnv{})
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"title":"Agenda"}`), 0600))
	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"title":"A"}`), 0600))

	cmd, out := newTestCommand()
	require.NoError(t, runLayoutsValidate(cmd, []string{"intro-pitchdeck-slide", valid}))
	assert.Contains(t, out.String(), "valid")

	cmd, out = newTestCommand()
	err := runLayoutsValidate(cmd, []string{"intro-pitchdeck-slide", invalid})
	require.Error(t, err)
	assert.Contains(t, out.String(), "invalid")

	cmd, _ = newTestCommand()
	assert.Error(t, runLayoutsValidate(cmd, []string{"intro-pitchdeck-slide", filepath.Join(dir, "missing.json")}))
}

func TestVersionCommand(t *testing.T) {
	withEnv(t, deckcontext.MapEnv{})
	cmd, out := newTestCommand()

	versionCmd.Run(cmd, nil)
	assert.Contains(t, out.String(), "slidedeck v")

	versionDetailed = true
	cmd, out = newTestCommand()
	versionCmd.Run(cmd, nil)
	assert.Contains(t, out.String(), "Go Version:")
}

func TestRunServe_RejectsInvalidVersion(t *testing.T) {
	withEnv(t, deckcontext.MapEnv{})
	original := version.Version
	version.Version = "not-a-version"
	defer func() { version.Version = original }()

	cmd, _ := newTestCommand()
	err := runServe(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid semantic version")
}

func TestWithLayoutDefaults(t *testing.T) {
	withEnv(t, deckcontext.MapEnv{})
	catalog, err := layoutCatalog()
	require.NoError(t, err)

	merged, err := withLayoutDefaults(catalog, "thankyou-ey-slide", []byte(`{"title":"Thank you all"}`))
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(merged, &fields))
	assert.Equal(t, "Thank you all", fields["title"])
	assert.Equal(t, "Questions?", fields["subtitle"])
	assert.Equal(t, "contact@ey.com", fields["email"])

	_, err = withLayoutDefaults(catalog, "thankyou-ey-slide", []byte(`[1,2]`))
	assert.Error(t, err)
	_, err = withLayoutDefaults(catalog, "missing", []byte(`{}`))
	assert.ErrorIs(t, err, services.ErrLayoutNotFound)
}

func TestRunLayoutsValidate_WithDefaults(t *testing.T) {
	withEnv(t, deckcontext.MapEnv{})
	validateWithDefaults = true
	dir := t.TempDir()

	partial := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(`{"title":"Thank you all"}`), 0600))
	cmd, out := newTestCommand()
	require.NoError(t, runLayoutsValidate(cmd, []string{"thankyou-ey-slide", partial}))
	assert.Contains(t, out.String(), "valid")

	badEmail := filepath.Join(dir, "bad-email.json")
	require.NoError(t, os.WriteFile(badEmail, []byte(`{"email":"not an email"}`), 0600))
	cmd, out = newTestCommand()
	require.Error(t, runLayoutsValidate(cmd, []string{"thankyou-ey-slide", badEmail}))
	assert.Contains(t, out.String(), "invalid")
}
