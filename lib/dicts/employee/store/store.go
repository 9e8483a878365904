package employeestore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dictapimodels "personnel-admin/models/api/dict"
	dbmodels "personnel-admin/models/db"
)

type Provider interface {
	Create(rec dbmodels.Employee) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.Employee, error)
	List(filter dictapimodels.EmployeeFind) ([]dbmodels.Employee, error)
	IsUnique(selfID, personalNumber string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Employee) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка добавления сотрудника")
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Employee{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка изменения сотрудника")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) List(filter dictapimodels.EmployeeFind) ([]dbmodels.Employee, error) {
	var result []dbmodels.Employee
	tx := i.db.Model(dbmodels.Employee{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(last_name || ' ' || first_name) like ? OR LOWER(personal_number) like ?", like, like)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	err := tx.Order("last_name, first_name").Find(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка сотрудников")
	}
	return result, nil
}

func (i impl) IsUnique(selfID, personalNumber string) (bool, error) {
	var rowCount int64
	tx := i.db.Model(dbmodels.Employee{}).
		Where("LOWER(personal_number) = ?", strings.ToLower(strings.TrimSpace(personalNumber)))
	if selfID != "" {
		tx = tx.Where("id <> ?", selfID)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return false, errors.Wrap(err, "ошибка проверки уникальности табельного номера")
	}
	return rowCount == 0, nil
}
