package dictapimodels

import (
	"strings"

	"github.com/pkg/errors"
	"personnel-admin/models"
)

type EmployeeData struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PersonalNumber string `json:"personalNumber"`
	Status         string `json:"status"`
}

type EmployeeView struct {
	EmployeeData
	ID string `json:"_id"`
}

func (c EmployeeData) Validate() error {
	if strings.TrimSpace(c.LastName) == "" {
		return errors.New("не указана фамилия сотрудника")
	}
	if strings.TrimSpace(c.FirstName) == "" {
		return errors.New("не указано имя сотрудника")
	}
	if strings.TrimSpace(c.PersonalNumber) == "" {
		return errors.New("не указан табельный номер")
	}
	if c.Status != "" && !models.EmployeeStatus(c.Status).IsValid() {
		return errors.Errorf("недопустимый статус сотрудника: %v", c.Status)
	}
	return nil
}

func (v EmployeeView) GetFullName() string {
	return strings.TrimSpace(v.LastName + " " + v.FirstName)
}

func (v EmployeeView) Option() ReferenceOption {
	return ReferenceOption{
		ID:       v.ID,
		Label:    v.GetFullName(),
		Subtitle: v.PersonalNumber,
	}
}

type EmployeeFind struct {
	Search string `query:"search"` // поиск по ФИО или табельному номеру
	Status string `query:"status"`
}
