package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/trispin"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"trispin", "--log-format", "none"}, args...))
	return out.String(), err
}

func TestTermsCommand(t *testing.T) {
	out, err := run(t, "terms")
	require.NoError(t, err)

	lines := strings.Fields(out)
	require.Len(t, lines, len(trispin.Terms))
	for i, term := range trispin.Terms {
		assert.Equal(t, string(term), lines[i])
	}
}

func TestBasisCommand(t *testing.T) {
	out, err := run(t, "basis", "--nx", "3", "--ny", "2", "--leads")
	require.NoError(t, err)
	assert.Contains(t, out, "sector:     nx3-ny2-kx0-ky0\n")
	assert.Contains(t, out, "scanned:    64\n")

	out, err = run(t, "basis", "--nx", "4", "--ny", "2", "--nup", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "sector:     nx4-ny2-kx0-ky0-nup4\n")
	assert.Contains(t, out, "scanned:    70\n")

	_, err = run(t, "basis", "--nx", "3", "--ny", "2", "--kx", "3")
	assert.ErrorIs(t, err, trispin.ErrInvalidParams)
}

func TestBasisCommandPersists(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "--store", "local", "--store-path", dir, "basis", "--nx", "2", "--ny", "2")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "bloch", "nx2-ny2-kx0-ky0.snap"))
	assert.NoError(t, err)
}

func TestHamiltonianCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.json")
	_, err := run(t, "hamiltonian", "--term", "ss_z", "--l", "1", "--nx", "3", "--ny", "2", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var m cooMatrix
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, m.NRows, m.NCols)
	assert.Positive(t, m.NRows)
	assert.Len(t, m.Col, len(m.Row))
	assert.Len(t, m.Re, len(m.Row))
	assert.Len(t, m.Im, len(m.Row))
	for i := range m.Row {
		assert.Less(t, m.Row[i], m.NRows)
		assert.Less(t, m.Col[i], m.NCols)
	}

	out, err := run(t, "hamiltonian", "--term", "sss_chi", "--nx", "3", "--ny", "3", "--kx", "1", "--ky", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `{"nrows":`))
}

func TestHamiltonianCommandErrors(t *testing.T) {
	_, err := run(t, "hamiltonian", "--term", "ss_q")
	var termErr *trispin.ErrUnknownTerm
	assert.ErrorAs(t, err, &termErr)

	_, err = run(t, "hamiltonian", "--term", "ss_z", "--l", "4")
	assert.ErrorIs(t, err, trispin.ErrInvalidParams)

	_, err = run(t, "hamiltonian", "--term", "ss_ppmm", "--nx", "3", "--ny", "2", "--nup", "3")
	assert.ErrorIs(t, err, trispin.ErrInvalidParams)

	_, err = run(t, "hamiltonian")
	assert.Error(t, err)
}
