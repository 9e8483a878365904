package assetstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "personnel-admin/models/db"
)

type Provider interface {
	Create(rec dbmodels.Asset) (id string, err error)
	GetByID(id string) (*dbmodels.Asset, error)
	List(search string) ([]dbmodels.Asset, error)
	IsUnique(name, serialNumber string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Asset) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка добавления актива")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Asset, error) {
	rec := dbmodels.Asset{BaseModel: dbmodels.BaseModel{ID: id}}
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

func (i impl) List(search string) ([]dbmodels.Asset, error) {
	var result []dbmodels.Asset
	tx := i.db.Model(dbmodels.Asset{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(name) like ? OR LOWER(serial_number) like ?", like, like)
	}
	err := tx.Order("name").Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка активов")
	}
	return result, nil
}

// IsUnique актив с таким названием и серийным номером еще не заведен
func (i impl) IsUnique(name, serialNumber string) (bool, error) {
	var rowCount int64
	err := i.db.Model(dbmodels.Asset{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Where("serial_number = ?", strings.TrimSpace(serialNumber)).
		Count(&rowCount).
		Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки уникальности актива")
	}
	return rowCount == 0, nil
}
