package dbmodels

import dictapimodels "personnel-admin/models/api/dict"

type Asset struct {
	BaseModel
	Name         string `gorm:"index;type:varchar(255)"`
	SerialNumber string `gorm:"type:varchar(100)"` // Инвентарный/серийный номер
}

func (r Asset) ToModel() dictapimodels.AssetView {
	return dictapimodels.AssetView{
		ID: r.ID,
		AssetData: dictapimodels.AssetData{
			Name:         r.Name,
			SerialNumber: r.SerialNumber,
		},
	}
}
