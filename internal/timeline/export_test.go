package timeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-timeline-service/internal/model"
)

func TestWriteCSV(t *testing.T) {
	rows := []model.VehicleTimelineSummary{
		{
			Plate: "ABC-1234", PlateKey: "ABC1234", Model: "Onix",
			Events: []model.TimelineEvent{
				{Type: model.EventRental, At: ptr(at(2024, 1, 1, 15)), Description: "Contrato 1", Detail: "Cliente; filial"},
				{Type: model.EventReturn, Description: "sem data"},
			},
		},
		{Plate: "XYZ9876", PlateKey: "XYZ9876"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows, ';'))

	want := "placa;modelo;tipo_evento;data_evento;descricao;detalhe\n" +
		"ABC-1234;Onix;LOCACAO;2024-01-01;Contrato 1;\"Cliente; filial\"\n" +
		"ABC-1234;Onix;DEVOLUCAO;;sem data;\n" +
		"XYZ9876;;;;;\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_DefaultDelimiter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, 0))

	assert.Equal(t, "placa,modelo,tipo_evento,data_evento,descricao,detalhe\n", buf.String())
}
