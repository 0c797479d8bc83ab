package timeline

import (
	"encoding/csv"
	"fmt"
	"io"

	"fleet-timeline-service/internal/model"
	"fleet-timeline-service/internal/normalize"
)

var exportHeader = []string{"placa", "modelo", "tipo_evento", "data_evento", "descricao", "detalhe"}

// WriteCSV flattens the rows into one line per event. Vehicles without dated
// events still get a line so the export lists every filtered vehicle.
func WriteCSV(w io.Writer, rows []model.VehicleTimelineSummary, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		if len(row.Events) == 0 {
			if err := cw.Write([]string{row.Plate, row.Model, "", "", "", ""}); err != nil {
				return fmt.Errorf("write %s: %w", row.PlateKey, err)
			}
			continue
		}
		for _, ev := range row.Events {
			vehicleModel := row.Model
			if vehicleModel == "" {
				vehicleModel = ev.Model
			}
			var date string
			if ev.At != nil {
				date = normalize.DateKey(*ev.At)
			}
			record := []string{row.Plate, vehicleModel, string(ev.Type), date, ev.Description, ev.Detail}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write %s: %w", row.PlateKey, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
