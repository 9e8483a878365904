package dbmodels

import (
	"fmt"

	"personnel-admin/models"
	dictapimodels "personnel-admin/models/api/dict"
	historyapimodels "personnel-admin/models/api/history"
)

type Employee struct {
	BaseModel
	FirstName      string                `gorm:"type:varchar(150)"`
	LastName       string                `gorm:"type:varchar(150)"`
	PersonalNumber string                `gorm:"type:varchar(50);uniqueIndex"` // Табельный номер
	Status         models.EmployeeStatus `gorm:"type:varchar(32)"`
}

func (r Employee) GetFullName() string {
	return fmt.Sprintf("%s %s", r.LastName, r.FirstName)
}

func (r Employee) ToRef() historyapimodels.Ref {
	return historyapimodels.Ref{
		ID:             r.ID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		PersonalNumber: r.PersonalNumber,
		Status:         string(r.Status),
	}
}

func (r Employee) ToModel() dictapimodels.EmployeeView {
	return dictapimodels.EmployeeView{
		ID: r.ID,
		EmployeeData: dictapimodels.EmployeeData{
			FirstName:      r.FirstName,
			LastName:       r.LastName,
			PersonalNumber: r.PersonalNumber,
			Status:         string(r.Status),
		},
	}
}
