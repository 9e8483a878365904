package filesdbstorage

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "personnel-admin/models/db"
)

type Provider interface {
	Save(rec dbmodels.HistoryExport) (id string, err error)
	GetByKey(key string) (*dbmodels.HistoryExport, error)
	ListCreatedBefore(before time.Time, limit int) ([]dbmodels.HistoryExport, error)
	Delete(id string) error
}

type impl struct {
	db *gorm.DB
}

func NewInstance(db *gorm.DB) Provider {
	return &impl{db: db}
}

func (i impl) Save(rec dbmodels.HistoryExport) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByKey(key string) (*dbmodels.HistoryExport, error) {
	rec := dbmodels.HistoryExport{}
	err := i.db.
		Model(&dbmodels.HistoryExport{}).
		Where("object_key = ?", key).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListCreatedBefore самые старые выгрузки, созданные раньше before
func (i impl) ListCreatedBefore(before time.Time, limit int) ([]dbmodels.HistoryExport, error) {
	list := []dbmodels.HistoryExport{}
	err := i.db.
		Model(&dbmodels.HistoryExport{}).
		Where("created_at < ?", before).
		Order("created_at").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.HistoryExport{}).
		Error
}
