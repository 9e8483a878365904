package stationstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "personnel-admin/models/db"
)

type Provider interface {
	Create(rec dbmodels.Station) (id string, err error)
	GetByID(id string) (*dbmodels.Station, error)
	List(search string) ([]dbmodels.Station, error)
	IsUnique(name string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Station) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка добавления места службы")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Station, error) {
	rec := dbmodels.Station{BaseModel: dbmodels.BaseModel{ID: id}}
	err := i.db.First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(search string) ([]dbmodels.Station, error) {
	var result []dbmodels.Station
	tx := i.db.Model(dbmodels.Station{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(name) like ? OR LOWER(address) like ?", like, like)
	}
	err := tx.Order("name").Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка мест службы")
	}
	return result, nil
}

func (i impl) IsUnique(name string) (bool, error) {
	var rowCount int64
	err := i.db.Model(dbmodels.Station{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&rowCount).
		Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки уникальности места службы")
	}
	return rowCount == 0, nil
}
