package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"
	"personnel-admin/config"
	"personnel-admin/db"
	filestorage "personnel-admin/lib/file-storage"
	filesdbstorage "personnel-admin/lib/file-storage/storage"
	s3client "personnel-admin/s3"
)

// InitS3 клиент S3 и архив выгрузок. Без S3_ENDPOINT архив выгрузок отключен.
func InitS3() {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("архив выгрузок отключен, отсутствует настройка S3_ENDPOINT")
		return
	}
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	// Проверка соединения
	_, err = minioClient.ListBuckets(context.Background())
	if err != nil {
		log.WithError(err).Error("S3 соединение не удалось — ListBuckets вернул ошибку")
		return
	}

	s3client.Client = minioClient
	filestorage.NewInstance(minioClient, config.Conf.S3.BucketName, filesdbstorage.NewInstance(db.DB))
	log.Info("S3 клиент успешно инициализирован")
}
