package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(body), 0o600))
}

func TestFileRepository_Collection(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "frota", `[{"Placa":"ABC-1234","Modelo":"Onix","ValorCompra":19523}]`)
	writeFixture(t, dir, "multas", `null`)
	writeFixture(t, dir, "eventos", `{"Placa":"ABC-1234"}`)
	writeFixture(t, dir, "sinistros", `[1, 2]`)
	repo := NewFileRepository(dir)
	ctx := context.Background()

	rows, err := repo.Collection(ctx, "frota")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ABC-1234", rows[0]["Placa"])
	assert.Equal(t, 19523.0, rows[0]["ValorCompra"])

	rows, err = repo.Collection(ctx, "manutencoes")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	rows, err = repo.Collection(ctx, "multas")
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = repo.Collection(ctx, "eventos")
	assert.ErrorIs(t, err, ErrNotCollection)

	_, err = repo.Collection(ctx, "sinistros")
	assert.ErrorIs(t, err, ErrNotCollection)

	_, err = repo.Collection(ctx, "../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidCollection)
}

func TestFileRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileRepository(t.TempDir()).Collection(ctx, "frota")
	assert.ErrorIs(t, err, context.Canceled)
}
