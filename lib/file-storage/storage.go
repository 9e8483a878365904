package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	filesdbstorage "personnel-admin/lib/file-storage/storage"
	"personnel-admin/models"
	dbmodels "personnel-admin/models/db"
	s3client "personnel-admin/s3"
)

// ObjectStorage операции S3, которые использует архив выгрузок
type ObjectStorage interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Provider interface {
	UploadExport(ctx context.Context, rec dbmodels.HistoryExport, body []byte) (dbmodels.HistoryExport, error)
	GetExport(ctx context.Context, key string) (*dbmodels.HistoryExport, []byte, error)
	RemoveExpired(ctx context.Context, before time.Time) (removed int, err error)
}

var Instance Provider

type impl struct {
	s3         ObjectStorage
	bucketName string
	store      filesdbstorage.Provider
	readObject func(ctx context.Context, key string) ([]byte, error)
}

func NewInstance(client *minio.Client, bucketName string, store filesdbstorage.Provider) {
	if err := s3client.MakeBucket(context.Background(), client, bucketName); err != nil {
		log.WithError(err).WithField("bucket", bucketName).Error("ошибка создания бакета для выгрузок")
	}
	Instance = newImpl(client, bucketName, store)
}

func newImpl(s3 ObjectStorage, bucketName string, store filesdbstorage.Provider) *impl {
	i := &impl{
		s3:         s3,
		bucketName: bucketName,
		store:      store,
	}
	i.readObject = i.getObject
	return i
}

// ObjectKey ключ объекта выгрузки: вид/дата/uuid.формат
func ObjectKey(kind models.HistoryKind, format dbmodels.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s/%s/%s.%s", kind, now.Format("2006-01-02"), uuid.NewString(), format)
}

func (i impl) UploadExport(ctx context.Context, rec dbmodels.HistoryExport, body []byte) (dbmodels.HistoryExport, error) {
	if rec.ObjectKey == "" {
		rec.ObjectKey = ObjectKey(rec.Kind, rec.Format, time.Now())
	}
	if rec.ContentType == "" {
		rec.ContentType = rec.Format.ContentType()
	}
	rec.Size = int64(len(body))
	_, err := i.s3.PutObject(ctx, i.bucketName, rec.ObjectKey, bytes.NewReader(body), rec.Size,
		minio.PutObjectOptions{ContentType: rec.ContentType})
	if err != nil {
		return dbmodels.HistoryExport{}, errors.Wrap(err, "ошибка загрузки выгрузки в S3")
	}
	id, err := i.store.Save(rec)
	if err != nil {
		return dbmodels.HistoryExport{}, errors.Wrap(err, "ошибка сохранения информации о выгрузке")
	}
	rec.ID = id
	return rec, nil
}

func (i impl) GetExport(ctx context.Context, key string) (*dbmodels.HistoryExport, []byte, error) {
	rec, err := i.store.GetByKey(key)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения информации о выгрузке")
	}
	if rec == nil {
		return nil, nil, nil
	}
	body, err := i.readObject(ctx, key)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения выгрузки из S3")
	}
	return rec, body, nil
}

const removeBatchSize = 100

// RemoveExpired удаляет выгрузки, созданные раньше before: сначала объект в S3, затем запись.
// Ошибка удаления объекта прерывает очистку, запись остается до следующего запуска.
func (i impl) RemoveExpired(ctx context.Context, before time.Time) (removed int, err error) {
	for ctx.Err() == nil {
		list, err := i.store.ListCreatedBefore(before, removeBatchSize)
		if err != nil {
			return removed, errors.Wrap(err, "ошибка получения списка устаревших выгрузок")
		}
		for _, rec := range list {
			err = i.s3.RemoveObject(ctx, i.bucketName, rec.ObjectKey, minio.RemoveObjectOptions{})
			if err != nil {
				return removed, errors.Wrapf(err, "ошибка удаления выгрузки %s из S3", rec.ObjectKey)
			}
			if err = i.store.Delete(rec.ID); err != nil {
				return removed, errors.Wrap(err, "ошибка удаления информации о выгрузке")
			}
			removed++
		}
		if len(list) < removeBatchSize {
			return removed, nil
		}
	}
	return removed, ctx.Err()
}

func (i impl) getObject(ctx context.Context, key string) ([]byte, error) {
	obj, err := i.s3.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}
