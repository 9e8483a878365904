package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "personnel-admin/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.Asset{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Asset")
	}
	if err := DB.AutoMigrate(&dbmodels.Station{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Station")
	}
	if err := DB.AutoMigrate(&dbmodels.StatusHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры StatusHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.AssetHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры AssetHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.StationHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры StationHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.HistoryExport{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры HistoryExport")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
