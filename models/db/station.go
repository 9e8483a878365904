package dbmodels

import dictapimodels "personnel-admin/models/api/dict"

type Station struct {
	BaseModel
	Name    string `gorm:"index;type:varchar(255)"`
	Address string `gorm:"type:varchar(500)"` // Адрес одной строкой
}

func (r Station) ToModel() dictapimodels.StationView {
	return dictapimodels.StationView{
		ID: r.ID,
		StationData: dictapimodels.StationData{
			Name:    r.Name,
			Address: r.Address,
		},
	}
}
