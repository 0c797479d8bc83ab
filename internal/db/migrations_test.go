package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationStatements(t *testing.T) {
	stmts, err := migrationStatements([]string{"frota", "manutencoes"})
	require.NoError(t, err)

	assert.Len(t, stmts, len(baseStatements)+2*len(PlateColumns))
	assert.Contains(t, stmts[0], "fleet_plate_key")

	joined := strings.Join(stmts, "\n")
	assert.Contains(t, joined, `"idx_frota_Placa_key" ON "frota" (fleet_plate_key("Placa"::text))`)
	assert.Contains(t, joined, `table_name = 'manutencoes' AND column_name = 'PlacaVeiculo'`)
}

func TestMigrationStatements_RejectsUnsafeNames(t *testing.T) {
	_, err := migrationStatements([]string{"frota; DROP TABLE x"})
	require.Error(t, err)

	assert.True(t, ValidIdentifier("contratos_locacao"))
	assert.False(t, ValidIdentifier("1frota"))
	assert.False(t, ValidIdentifier(`"frota"`))
}
