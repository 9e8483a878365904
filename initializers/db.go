package initializers

import (
	"personnel-admin/config"
	"personnel-admin/db"
)

func InitDBConnection() {
	dbConf := config.Conf.Database
	err := db.Connect(db.Options{
		Host:      dbConf.Host,
		Port:      dbConf.Port,
		Name:      dbConf.Name,
		User:      dbConf.User,
		Password:  dbConf.Password,
		DebugMode: dbConf.DebugMode != nil && *dbConf.DebugMode,
		Migrate:   dbConf.MigrateOnStart != nil && *dbConf.MigrateOnStart,
	})
	if err != nil {
		panic(err.Error())
	}

	db.InitPreload(dbConf.PreloadDir)
}
