package initializers

import (
	"context"

	"personnel-admin/config"
	"personnel-admin/fiberlog"
	assetprovider "personnel-admin/lib/dicts/asset"
	employeeprovider "personnel-admin/lib/dicts/employee"
	stationprovider "personnel-admin/lib/dicts/station"
	exportretention "personnel-admin/lib/export/retention"
	xlsexport "personnel-admin/lib/export/xls"
	filestorage "personnel-admin/lib/file-storage"
	historyhandler "personnel-admin/lib/history"
	"personnel-admin/lib/rbac"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	rbac.NewHandler()
	employeeprovider.NewHandler()
	assetprovider.NewHandler()
	stationprovider.NewHandler()
	xlsexport.NewHandler()
	historyhandler.NewHandler()
	exportretention.StartWorker(ctx, filestorage.Instance, config.Conf.Export.RetentionDays)
}
