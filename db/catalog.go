package db

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	assetstore "personnel-admin/lib/dicts/asset/store"
	stationstore "personnel-admin/lib/dicts/station/store"
	dbmodels "personnel-admin/models/db"
)

// fillAssets активы из assets.csv: название;серийный номер
func fillAssets(dir string) {
	log.Info("предзаполнение активов")
	store := assetstore.NewInstance(DB)
	list, err := store.List("")
	if err != nil {
		log.WithError(err).Error("ошибка предзаполнения активов")
		return
	}
	if len(list) > 0 {
		log.Info("активы заполнены")
		return
	}

	lines, err := readCsvFile(filepath.Join(dir, "assets.csv"), ';')
	if err != nil {
		log.WithError(err).Error("ошибка загрузки файла с активами")
		return
	}
	for k, line := range lines {
		if len(line) < 2 || strings.TrimSpace(line[0]) == "" {
			log.Warnf("пропущена строка %v файла с активами", k)
			continue
		}
		rec := dbmodels.Asset{
			Name:         strings.TrimSpace(line[0]),
			SerialNumber: strings.TrimSpace(line[1]),
		}
		if _, err = store.Create(rec); err != nil {
			log.WithError(err).
				WithField("asset_name", rec.Name).
				Error("ошибка добавления актива")
			return
		}
	}
	log.Info("активы добавлены")
}

// fillStations места службы из stations.csv: название;адрес
func fillStations(dir string) {
	log.Info("предзаполнение мест службы")
	store := stationstore.NewInstance(DB)
	list, err := store.List("")
	if err != nil {
		log.WithError(err).Error("ошибка предзаполнения мест службы")
		return
	}
	if len(list) > 0 {
		log.Info("места службы заполнены")
		return
	}

	lines, err := readCsvFile(filepath.Join(dir, "stations.csv"), ';')
	if err != nil {
		log.WithError(err).Error("ошибка загрузки файла с местами службы")
		return
	}
	for k, line := range lines {
		if len(line) < 2 || strings.TrimSpace(line[0]) == "" {
			log.Warnf("пропущена строка %v файла с местами службы", k)
			continue
		}
		rec := dbmodels.Station{
			Name:    strings.TrimSpace(line[0]),
			Address: strings.TrimSpace(line[1]),
		}
		if _, err = store.Create(rec); err != nil {
			log.WithError(err).
				WithField("station_name", rec.Name).
				Error("ошибка добавления места службы")
			return
		}
	}
	log.Info("места службы добавлены")
}

func readCsvFile(filePath string, comma rune) ([][]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка открытия файла")
	}
	defer f.Close()

	csvReader := csv.NewReader(f)
	csvReader.Comma = comma
	csvReader.FieldsPerRecord = -1
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка обработки файла")
	}

	return records, nil
}
