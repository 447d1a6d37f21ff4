package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/optionsage/optionsage/src/models"
)

type featureRowCSV struct {
	models.FeatureRow
	models.Greeks
	DataSource models.DataSource `csv:"data_source"`
}

// ExportFeatureRows writes enriched rows to a per-ticker csv for offline
// model training. An existing file is left untouched.
func ExportFeatureRows(outDir string, symbol models.StockSymbol, source models.DataSource, rows []models.FeatureRow) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("ExportFeatureRows: no rows to export for %s", symbol)
	}

	outPath := filepath.Join(outDir, fmt.Sprintf("features_%s.csv", symbol))

	if _, err := os.Stat(outPath); err == nil {
		log.Infof("ExportFeatureRows: %s already exists", outPath)
		return outPath, nil
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("ExportFeatureRows: failed to create %s: %w", outDir, err)
	}

	records := make([]featureRowCSV, 0, len(rows))
	for _, row := range rows {
		records = append(records, featureRowCSV{
			FeatureRow: row,
			Greeks:     row.Greeks,
			DataSource: source,
		})
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("ExportFeatureRows: failed to create %s: %w", outPath, err)
	}

	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return "", fmt.Errorf("ExportFeatureRows: failed to write csv: %w", err)
	}

	log.Infof("ExportFeatureRows: wrote %d rows to %s", len(records), outPath)

	return outPath, nil
}
