package dbmodels

import (
	"time"

	"personnel-admin/models"
	historyapimodels "personnel-admin/models/api/history"
)

// HistoryBase общие поля записей истории сотрудника
type HistoryBase struct {
	BaseModel
	EmployeeID string     `gorm:"type:varchar(36);index"`
	Employee   *Employee  `gorm:"foreignKey:EmployeeID"`
	FromDate   time.Time  `gorm:"type:date;index"`
	ToDate     *time.Time `gorm:"type:date"` // nil - запись действует
	AuthorModel
}

type StatusHistory struct {
	HistoryBase
	CurrentStatus models.EmployeeStatus `gorm:"type:varchar(32)"`
	LastStatus    models.EmployeeStatus `gorm:"type:varchar(32)"`
	Description   string
}

type AssetHistory struct {
	HistoryBase
	Action         models.HistoryAction `gorm:"type:varchar(32)"`
	CurrentAssetID *string              `gorm:"type:varchar(36)"`
	CurrentAsset   *Asset               `gorm:"foreignKey:CurrentAssetID"`
	LastAssetID    *string              `gorm:"type:varchar(36)"`
	LastAsset      *Asset               `gorm:"foreignKey:LastAssetID"`
	Remarks        string
}

type StationHistory struct {
	HistoryBase
	Action           models.HistoryAction `gorm:"type:varchar(32)"`
	CurrentStationID *string              `gorm:"type:varchar(36)"`
	CurrentStation   *Station             `gorm:"foreignKey:CurrentStationID"`
	LastStationID    *string              `gorm:"type:varchar(36)"`
	LastStation      *Station             `gorm:"foreignKey:LastStationID"`
	Remarks          string
}

func (r HistoryBase) fillModel(rec *historyapimodels.Record) {
	rec.ID = r.ID
	rec.Employee = historyapimodels.Ref{ID: r.EmployeeID}
	if r.Employee != nil {
		rec.Employee = r.Employee.ToRef()
	}
	if !r.FromDate.IsZero() {
		rec.FromDate = r.FromDate.Format(historyapimodels.DateLayout)
	}
	if r.ToDate != nil {
		rec.ToDate = r.ToDate.Format(historyapimodels.DateLayout)
	}
	rec.Author = r.UserName
	if !r.CreatedAt.IsZero() {
		rec.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
}

func (r StatusHistory) ToModel() historyapimodels.Record {
	rec := historyapimodels.NewStatusRecord(r.EmployeeID, historyapimodels.StatusChange{
		Current:     r.CurrentStatus,
		Previous:    r.LastStatus,
		Description: r.Description,
	})
	r.fillModel(&rec)
	return rec
}

func (r AssetHistory) ToModel() historyapimodels.Record {
	rec := historyapimodels.NewAssignmentRecord(models.HistoryKindAsset, r.EmployeeID, historyapimodels.AssignmentChange{
		Action:   r.Action,
		Current:  assetRef(r.CurrentAssetID, r.CurrentAsset),
		Previous: assetRef(r.LastAssetID, r.LastAsset),
		Remarks:  r.Remarks,
	})
	r.fillModel(&rec)
	return rec
}

func (r StationHistory) ToModel() historyapimodels.Record {
	rec := historyapimodels.NewAssignmentRecord(models.HistoryKindStation, r.EmployeeID, historyapimodels.AssignmentChange{
		Action:   r.Action,
		Current:  stationRef(r.CurrentStationID, r.CurrentStation),
		Previous: stationRef(r.LastStationID, r.LastStation),
		Remarks:  r.Remarks,
	})
	r.fillModel(&rec)
	return rec
}

func assetRef(id *string, asset *Asset) historyapimodels.Ref {
	if asset != nil {
		return historyapimodels.Ref{ID: asset.ID, Name: asset.Name}
	}
	if id != nil {
		return historyapimodels.Ref{ID: *id}
	}
	return historyapimodels.Ref{}
}

func stationRef(id *string, station *Station) historyapimodels.Ref {
	if station != nil {
		return historyapimodels.Ref{ID: station.ID, Name: station.Name}
	}
	if id != nil {
		return historyapimodels.Ref{ID: *id}
	}
	return historyapimodels.Ref{}
}
