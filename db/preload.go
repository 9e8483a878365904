package db

import (
	log "github.com/sirupsen/logrus"
)

// InitPreload заполняет справочники активов и мест службы из csv в каталоге dir.
// Пустой dir - предзаполнение отключено.
func InitPreload(dir string) {
	if dir == "" {
		log.Info("предзаполнение справочников отключено")
		return
	}
	fillAssets(dir)
	fillStations(dir)
}
