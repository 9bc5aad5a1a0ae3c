package steps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
)

// getCellValue returns a row's cell by header name, using table.Rows[0] as the header
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}
	return ""
}

// parseQuantities reads "name=qty,name=qty" cells
func parseQuantities(cell string) (map[string]float64, error) {
	out := map[string]float64{}
	if strings.TrimSpace(cell) == "" {
		return out, nil
	}
	for _, pair := range strings.Split(cell, ",") {
		name, qty, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("expected name=quantity, got %q", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(qty), 64)
		if err != nil {
			return nil, fmt.Errorf("bad quantity for %s: %w", name, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

func parseCounts(cell string) (map[string]int, error) {
	amounts, err := parseQuantities(cell)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(amounts))
	for name, v := range amounts {
		out[name] = int(v)
	}
	return out, nil
}
