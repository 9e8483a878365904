package historyapimodels

import (
	"encoding/json"

	"github.com/pkg/errors"
	"personnel-admin/models"
)

// Представление записей на бэкенде. У каждого вида свои имена полей,
// перевод в Record и обратно выполняется только здесь.

type StatusHistoryView struct {
	ID            string `json:"_id"`
	Employee      Ref    `json:"employee"`
	FromDate      string `json:"fromDate,omitempty"`
	ToDate        string `json:"toDate,omitempty"`
	CurrentStatus string `json:"currentStatus,omitempty"`
	LastStatus    string `json:"lastStatus,omitempty"`
	Description   string `json:"description"`
	CreatedBy     string `json:"createdBy,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

type AssetHistoryView struct {
	ID           string `json:"_id"`
	Employee     Ref    `json:"employee"`
	FromDate     string `json:"fromDate,omitempty"`
	ToDate       string `json:"toDate,omitempty"`
	Action       string `json:"action"`
	CurrentAsset *Ref   `json:"currentAsset,omitempty"`
	LastAsset    *Ref   `json:"lastAsset,omitempty"`
	Remarks      string `json:"remarks"`
	CreatedBy    string `json:"createdBy,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

type StationHistoryView struct {
	ID             string `json:"_id"`
	Employee       Ref    `json:"employee"`
	FromDate       string `json:"fromDate,omitempty"`
	ToDate         string `json:"toDate,omitempty"`
	Action         string `json:"action"`
	CurrentStation *Ref   `json:"currentStation,omitempty"`
	LastStation    *Ref   `json:"lastStation,omitempty"`
	Remarks        string `json:"remarks"`
	CreatedBy      string `json:"createdBy,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

// Тела запросов на создание/изменение. Для asset/station поля предыдущего
// значения нет: его вычисляет бэкенд.

type StatusHistoryData struct {
	Employee      string `json:"employee,omitempty"`
	FromDate      string `json:"fromDate,omitempty"`
	ToDate        string `json:"toDate,omitempty"`
	CurrentStatus string `json:"currentStatus,omitempty"`
	LastStatus    string `json:"lastStatus,omitempty"`
	Description   string `json:"description"`
}

type AssetHistoryData struct {
	Employee     string `json:"employee,omitempty"`
	FromDate     string `json:"fromDate,omitempty"`
	ToDate       string `json:"toDate,omitempty"`
	Action       string `json:"action,omitempty"`
	CurrentAsset string `json:"currentAsset,omitempty"`
	Remarks      string `json:"remarks"`
}

type StationHistoryData struct {
	Employee       string `json:"employee,omitempty"`
	FromDate       string `json:"fromDate,omitempty"`
	ToDate         string `json:"toDate,omitempty"`
	Action         string `json:"action,omitempty"`
	CurrentStation string `json:"currentStation,omitempty"`
	Remarks        string `json:"remarks"`
}

// Data тело запроса любого вида истории
type Data interface {
	ToRecord() Record
}

// NewData пустое тело запроса для вида истории, используется для разбора запроса
func NewData(kind models.HistoryKind) (Data, error) {
	switch kind {
	case models.HistoryKindStatus:
		return &StatusHistoryData{}, nil
	case models.HistoryKindAsset:
		return &AssetHistoryData{}, nil
	case models.HistoryKindStation:
		return &StationHistoryData{}, nil
	}
	return nil, errors.Errorf("неизвестный вид истории: %v", kind)
}

func (d StatusHistoryData) ToRecord() Record {
	rec := NewStatusRecord(d.Employee, StatusChange{
		Current:     models.EmployeeStatus(d.CurrentStatus),
		Previous:    models.EmployeeStatus(d.LastStatus),
		Description: d.Description,
	})
	rec.FromDate = d.FromDate
	rec.ToDate = d.ToDate
	return rec
}

func (d AssetHistoryData) ToRecord() Record {
	rec := NewAssignmentRecord(models.HistoryKindAsset, d.Employee, AssignmentChange{
		Action:  models.HistoryAction(d.Action),
		Current: Ref{ID: d.CurrentAsset},
		Remarks: d.Remarks,
	})
	rec.FromDate = d.FromDate
	rec.ToDate = d.ToDate
	return rec
}

func (d StationHistoryData) ToRecord() Record {
	rec := NewAssignmentRecord(models.HistoryKindStation, d.Employee, AssignmentChange{
		Action:  models.HistoryAction(d.Action),
		Current: Ref{ID: d.CurrentStation},
		Remarks: d.Remarks,
	})
	rec.FromDate = d.FromDate
	rec.ToDate = d.ToDate
	return rec
}

// EncodePayload тело запроса для записи. При изменении сотрудник не передается.
// Предыдущее значение актива/места службы не передается никогда.
func EncodePayload(rec Record, forUpdate bool) (interface{}, error) {
	employeeID := rec.Employee.ID
	if forUpdate {
		employeeID = ""
	}
	switch rec.Kind {
	case models.HistoryKindStatus:
		if rec.Status == nil {
			return nil, errors.New("запись не соответствует виду истории status")
		}
		return StatusHistoryData{
			Employee:      employeeID,
			FromDate:      rec.FromDate,
			ToDate:        rec.ToDate,
			CurrentStatus: string(rec.Status.Current),
			LastStatus:    string(rec.Status.Previous),
			Description:   rec.Status.Description,
		}, nil
	case models.HistoryKindAsset:
		if rec.Assignment == nil {
			return nil, errors.New("запись не соответствует виду истории asset")
		}
		return AssetHistoryData{
			Employee:     employeeID,
			FromDate:     rec.FromDate,
			ToDate:       rec.ToDate,
			Action:       string(rec.Assignment.Action),
			CurrentAsset: rec.Assignment.Current.ID,
			Remarks:      rec.Assignment.Remarks,
		}, nil
	case models.HistoryKindStation:
		if rec.Assignment == nil {
			return nil, errors.New("запись не соответствует виду истории station")
		}
		return StationHistoryData{
			Employee:       employeeID,
			FromDate:       rec.FromDate,
			ToDate:         rec.ToDate,
			Action:         string(rec.Assignment.Action),
			CurrentStation: rec.Assignment.Current.ID,
			Remarks:        rec.Assignment.Remarks,
		}, nil
	}
	return nil, errors.Errorf("неизвестный вид истории: %v", rec.Kind)
}

// EncodeView представление записи для ответа бэкенда
func EncodeView(rec Record) (interface{}, error) {
	switch rec.Kind {
	case models.HistoryKindStatus:
		if rec.Status == nil {
			return nil, errors.New("запись не соответствует виду истории status")
		}
		return StatusHistoryView{
			ID:            rec.ID,
			Employee:      rec.Employee,
			FromDate:      rec.FromDate,
			ToDate:        rec.ToDate,
			CurrentStatus: string(rec.Status.Current),
			LastStatus:    string(rec.Status.Previous),
			Description:   rec.Status.Description,
			CreatedBy:     rec.Author,
			CreatedAt:     rec.CreatedAt,
		}, nil
	case models.HistoryKindAsset:
		if rec.Assignment == nil {
			return nil, errors.New("запись не соответствует виду истории asset")
		}
		return AssetHistoryView{
			ID:           rec.ID,
			Employee:     rec.Employee,
			FromDate:     rec.FromDate,
			ToDate:       rec.ToDate,
			Action:       string(rec.Assignment.Action),
			CurrentAsset: refPtr(rec.Assignment.Current),
			LastAsset:    refPtr(rec.Assignment.Previous),
			Remarks:      rec.Assignment.Remarks,
			CreatedBy:    rec.Author,
			CreatedAt:    rec.CreatedAt,
		}, nil
	case models.HistoryKindStation:
		if rec.Assignment == nil {
			return nil, errors.New("запись не соответствует виду истории station")
		}
		return StationHistoryView{
			ID:             rec.ID,
			Employee:       rec.Employee,
			FromDate:       rec.FromDate,
			ToDate:         rec.ToDate,
			Action:         string(rec.Assignment.Action),
			CurrentStation: refPtr(rec.Assignment.Current),
			LastStation:    refPtr(rec.Assignment.Previous),
			Remarks:        rec.Assignment.Remarks,
			CreatedBy:      rec.Author,
			CreatedAt:      rec.CreatedAt,
		}, nil
	}
	return nil, errors.Errorf("неизвестный вид истории: %v", rec.Kind)
}

// EncodeViews представление списка записей
func EncodeViews(list []Record) ([]interface{}, error) {
	result := make([]interface{}, 0, len(list))
	for _, rec := range list {
		view, err := EncodeView(rec)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	return result, nil
}

// DecodeRecord разбор записи из ответа бэкенда для указанного вида истории
func DecodeRecord(kind models.HistoryKind, raw json.RawMessage) (Record, error) {
	switch kind {
	case models.HistoryKindStatus:
		view := StatusHistoryView{}
		if err := json.Unmarshal(raw, &view); err != nil {
			return Record{}, errors.Wrap(err, "некорректная запись истории статусов")
		}
		rec := NewStatusRecord("", StatusChange{
			Current:     models.EmployeeStatus(view.CurrentStatus),
			Previous:    models.EmployeeStatus(view.LastStatus),
			Description: view.Description,
		})
		fillCommon(&rec, view.ID, view.Employee, view.FromDate, view.ToDate, view.CreatedBy, view.CreatedAt)
		return rec, nil
	case models.HistoryKindAsset:
		view := AssetHistoryView{}
		if err := json.Unmarshal(raw, &view); err != nil {
			return Record{}, errors.Wrap(err, "некорректная запись истории активов")
		}
		rec := NewAssignmentRecord(kind, "", AssignmentChange{
			Action:   models.HistoryAction(view.Action),
			Current:  refValue(view.CurrentAsset),
			Previous: refValue(view.LastAsset),
			Remarks:  view.Remarks,
		})
		fillCommon(&rec, view.ID, view.Employee, view.FromDate, view.ToDate, view.CreatedBy, view.CreatedAt)
		return rec, nil
	case models.HistoryKindStation:
		view := StationHistoryView{}
		if err := json.Unmarshal(raw, &view); err != nil {
			return Record{}, errors.Wrap(err, "некорректная запись истории мест службы")
		}
		rec := NewAssignmentRecord(kind, "", AssignmentChange{
			Action:   models.HistoryAction(view.Action),
			Current:  refValue(view.CurrentStation),
			Previous: refValue(view.LastStation),
			Remarks:  view.Remarks,
		})
		fillCommon(&rec, view.ID, view.Employee, view.FromDate, view.ToDate, view.CreatedBy, view.CreatedAt)
		return rec, nil
	}
	return Record{}, errors.Errorf("неизвестный вид истории: %v", kind)
}

func fillCommon(rec *Record, id string, employee Ref, from, to, author, createdAt string) {
	rec.ID = id
	rec.Employee = employee
	rec.FromDate = from
	rec.ToDate = to
	rec.Author = author
	rec.CreatedAt = createdAt
}
