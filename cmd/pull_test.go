package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func runPull(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPullPopulationDensity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/BE/BE0101/BE0101C/BE0101C1", r.URL.Path)
		w.Write([]byte("region,Population density per sq. km 2024\n01 Stockholm county,363.6\n")) //nolint:errcheck
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", fmt.Sprintf(`
api:
  base_url: %s
logging:
  development: false
`, srv.URL))
	queryPath := writeFile(t, dir, "query.json", `{
		"queryObj": {"query": [], "response": {"format": "csv"}},
		"tableIdForQuery": "BE0101C1"
	}`)
	outDir := filepath.Join(dir, "out")

	out, err := runPull(t, "pull", "popdensity",
		"--config", cfgPath, "--query", queryPath, "--output-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Data saved to ")

	got, err := os.ReadFile(filepath.Join(outDir, "popdensity.csv"))
	require.NoError(t, err)
	assert.Equal(t, "County,PopDensity_2024\nStockholm,363.6\n", string(got))
}

func TestPullUnknownDataset(t *testing.T) {
	_, err := runPull(t, "pull", "housing-prices")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dataset")
}

func TestPullMissingQuerySpec(t *testing.T) {
	dir := t.TempDir()
	_, err := runPull(t, "pull", "direct-estimates",
		"--query", filepath.Join(dir, "absent.json"), "--output-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query spec")

	// The config failure must occur before any file lands in the output dir.
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}
