package sink_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scbtools/tablepull/internal/normalize"
	"github.com/scbtools/tablepull/internal/sink"
)

func TestNewCreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out", "nested")
	_, err := sink.New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory.
	_, err = sink.New(dir)
	require.NoError(t, err)
}

func TestNewRejectsEmptyDir(t *testing.T) {
	t.Parallel()

	_, err := sink.New("  ")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := sink.New(dir)
	require.NoError(t, err)

	table := normalize.Table{
		Header: []string{"County", "PopDensity_2024"},
		Rows: [][]string{
			{"Stockholm", "363.6"},
			{"Norrbotten", "2.5"},
		},
	}

	path, err := w.WriteCSV("popdensity.csv", table)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "County,PopDensity_2024\nStockholm,363.6\nNorrbotten,2.5\n", string(got))
}

func TestWriteCSVOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := sink.New(dir)
	require.NoError(t, err)

	table := normalize.Table{Header: []string{"County"}, Rows: [][]string{{"Gotland"}}}

	first, err := w.WriteCSV("out.csv", table)
	require.NoError(t, err)
	second, err := w.WriteCSV("out.csv", table)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "County\nGotland\n", string(got), "rerun must replace, not append")
}

func TestWriteRaw(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := sink.New(dir)
	require.NoError(t, err)

	body := []byte("CHARSET=\"ANSI\";\nAXIS-VERSION=\"2013\";\nTITLE=\"Population density\";\n")
	path, err := w.WriteRaw("BE0101N1.px", body)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, got, "passthrough must be byte-exact")
}
