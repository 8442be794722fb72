package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gridpick/internal/domain"
	"gridpick/internal/selection"
)

const ordersYAML = `
- id: a
  status: active
  sku: X1
- id: b
  status: draft
  sku: X2
- id: c
  status: active
  sku: X3
- id: d
  status: active
  sku: X4
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// executeCommand runs the root command and returns stdout; logs go to a
// separate buffer.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestApplyPrintsSelectedIDs(t *testing.T) {
	file := writeFile(t, "orders.yaml", ordersYAML)

	out, err := executeCommand(t, "", "apply", file, "-g", "multi+ @1 b", "-g", "multi+ @3 d", "-g", "single- c")

	require.NoError(t, err)
	assert.Equal(t, "b\nd\n", out)
}

func TestApplyReadsScriptFromStdin(t *testing.T) {
	file := writeFile(t, "orders.yaml", ordersYAML)
	script := "# everything but b\nall+\nremove b\n"

	out, err := executeCommand(t, script, "apply", file, "--script", "-", "--output", "json")
	require.NoError(t, err)

	var result domain.PickResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.ElementsMatch(t, []string{"a", "c", "d"}, result.Selected)
	assert.False(t, result.AllSelected)
	assert.Equal(t, []string{"b"}, result.Removed)
}

func TestApplyScriptFileAndYAMLOutput(t *testing.T) {
	file := writeFile(t, "orders.yaml", ordersYAML)
	script := writeFile(t, "steps.txt", "page+\n")

	out, err := executeCommand(t, "", "apply", file, "-s", script, "-o", "yaml")
	require.NoError(t, err)

	var result domain.PickResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"a", "b", "c", "d"}, result.Selected)
	assert.False(t, result.AllSelected, "page selection never sets all")
}

func TestApplyHonoursFilter(t *testing.T) {
	file := writeFile(t, "orders.yaml", ordersYAML)

	out, err := executeCommand(t, "", "apply", file, "--filter", `status == "active"`, "-g", "all+")

	require.NoError(t, err)
	assert.Equal(t, "a\nc\nd\n", out)
}

func TestApplyWithCustomIDField(t *testing.T) {
	file := writeFile(t, "orders.yaml", ordersYAML)

	out, err := executeCommand(t, "", "apply", file, "--id-field", "sku", "-g", "range+ 0..1")

	require.NoError(t, err)
	assert.Equal(t, "X1\nX2\n", out)
}

func TestApplyReportsIdentityErrors(t *testing.T) {
	file := writeFile(t, "orders.yaml", ordersYAML+"- id: e\n")

	_, err := executeCommand(t, "", "apply", file, "--id-field", "sku", "-g", "all+")

	var identityErr *selection.IdentityError
	require.True(t, errors.As(err, &identityErr), "got %v", err)
	assert.Equal(t, 4, identityErr.Index)
}

func TestApplyStartingSelection(t *testing.T) {
	out, err := executeCommand(t, "", "apply", "--demo", "3", "--all", "-g", "clear", "-o", "json")
	require.NoError(t, err)

	var result domain.PickResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Empty(t, result.Selected)
	assert.False(t, result.AllSelected)
}

func TestApplyAllSeedsEveryRow(t *testing.T) {
	file := writeFile(t, "orders.yaml", ordersYAML)

	out, err := executeCommand(t, "", "apply", file, "--all", "-g", "single- a", "-o", "json")
	require.NoError(t, err)

	var result domain.PickResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.ElementsMatch(t, []string{"b", "c", "d"}, result.Selected)
	assert.False(t, result.AllSelected)

	out, err = executeCommand(t, "", "apply", file, "--all", "--filter", `status == "active"`, "-g", "range- 2..2")
	require.NoError(t, err)
	assert.Equal(t, "a\nc\n", out)
}

func TestApplyAllReportsIdentityErrors(t *testing.T) {
	file := writeFile(t, "orders.yaml", ordersYAML+"- id: e\n")

	_, err := executeCommand(t, "", "apply", file, "--id-field", "sku", "--all", "-g", "clear")

	var identityErr *selection.IdentityError
	require.True(t, errors.As(err, &identityErr), "got %v", err)
	assert.Contains(t, err.Error(), "select all")
}

func TestApplyUsesConfigFile(t *testing.T) {
	file := writeFile(t, "orders.yaml", ordersYAML)
	cfg := writeFile(t, "gridpick.toml", `
version = 1
id_field = "sku"
filter = 'status != "draft"'
output = "lines"
`)

	out, err := executeCommand(t, "", "--config", cfg, "apply", file, "-g", "all+")

	require.NoError(t, err)
	assert.Equal(t, "X1\nX3\nX4\n", out)
}

func TestApplyErrors(t *testing.T) {
	file := writeFile(t, "orders.yaml", ordersYAML)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no gestures", []string{"apply", file}, "no gestures"},
		{"bad gesture", []string{"apply", file, "-g", "toggle+ a"}, "parse --gesture"},
		{"no resources", []string{"apply", "-g", "all+"}, "no resources"},
		{"bad output", []string{"apply", file, "-g", "all+", "-o", "csv"}, "unknown output format"},
		{"bad filter", []string{"apply", file, "-g", "all+", "--filter", "status =="}, "compile filter"},
		{"missing file", []string{"apply", filepath.Join(t.TempDir(), "nope.yaml"), "-g", "all+"}, "nope.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
