package historydbstore

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"personnel-admin/models"
	historyapimodels "personnel-admin/models/api/history"
	dbmodels "personnel-admin/models/db"
)

type Provider interface {
	Create(rec historyapimodels.Record, userID *string) (id string, err error)
	Update(id string, rec historyapimodels.Record) (found bool, err error)
	Delete(kind models.HistoryKind, id string) (found bool, err error)
	GetByID(kind models.HistoryKind, id string) (*historyapimodels.Record, error)
	ListCount(kind models.HistoryKind, filter historyapimodels.HistoryFilter) (count int64, err error)
	List(kind models.HistoryKind, filter historyapimodels.HistoryFilter) ([]historyapimodels.Record, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

const lastRecordOrder = "from_date desc, created_at desc"

// ErrBackdated новая запись начинается раньше последней записи сотрудника
var ErrBackdated = errors.New("дата начала раньше начала последней записи сотрудника")

func (i impl) Create(rec historyapimodels.Record, userID *string) (id string, err error) {
	base, err := newHistoryBase(rec, userID)
	if err != nil {
		return "", err
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		switch rec.Kind {
		case models.HistoryKindStatus:
			id, err = createStatus(tx, base, rec)
		case models.HistoryKindAsset:
			id, err = createAsset(tx, base, rec)
		case models.HistoryKindStation:
			id, err = createStation(tx, base, rec)
		default:
			err = errors.Errorf("неизвестный вид истории: %v", rec.Kind)
		}
		return err
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// createStatus предыдущий статус: переданный клиентом, иначе текущий статус последней записи,
// иначе статус из карточки сотрудника. Статус в карточке обновляется.
func createStatus(tx *gorm.DB, base dbmodels.HistoryBase, rec historyapimodels.Record) (string, error) {
	last := dbmodels.StatusHistory{}
	found, err := findLast(tx, &last, base.EmployeeID)
	if err != nil {
		return "", err
	}
	if found && base.FromDate.Before(last.FromDate) {
		return "", ErrBackdated
	}
	row := dbmodels.StatusHistory{
		HistoryBase:   base,
		CurrentStatus: rec.Status.Current,
		LastStatus:    rec.Status.Previous,
		Description:   rec.Status.Description,
	}
	if !row.LastStatus.IsValid() {
		row.LastStatus = ""
		if found {
			row.LastStatus = last.CurrentStatus
		} else {
			employee := dbmodels.Employee{}
			err = tx.Select("status").Where("id = ?", base.EmployeeID).First(&employee).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return "", err
			}
			row.LastStatus = employee.Status
		}
	}
	if found {
		if err = closeLast(tx, &dbmodels.StatusHistory{}, last.HistoryBase, base.FromDate); err != nil {
			return "", err
		}
	}
	if err = tx.Omit("Employee").Create(&row).Error; err != nil {
		return "", err
	}
	err = tx.Model(&dbmodels.Employee{}).
		Where("id = ?", base.EmployeeID).
		Update("status", row.CurrentStatus).
		Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка обновления статуса сотрудника")
	}
	return row.ID, nil
}

// createAsset предыдущий актив берется только из последней записи сотрудника
func createAsset(tx *gorm.DB, base dbmodels.HistoryBase, rec historyapimodels.Record) (string, error) {
	last := dbmodels.AssetHistory{}
	found, err := findLast(tx, &last, base.EmployeeID)
	if err != nil {
		return "", err
	}
	if found && base.FromDate.Before(last.FromDate) {
		return "", ErrBackdated
	}
	row := dbmodels.AssetHistory{
		HistoryBase:    base,
		Action:         rec.Assignment.Action,
		CurrentAssetID: refID(rec.Assignment.Current),
		Remarks:        rec.Assignment.Remarks,
	}
	if found {
		row.LastAssetID = last.CurrentAssetID
		if err = closeLast(tx, &dbmodels.AssetHistory{}, last.HistoryBase, base.FromDate); err != nil {
			return "", err
		}
	}
	if err = tx.Omit("Employee", "CurrentAsset", "LastAsset").Create(&row).Error; err != nil {
		return "", err
	}
	return row.ID, nil
}

func createStation(tx *gorm.DB, base dbmodels.HistoryBase, rec historyapimodels.Record) (string, error) {
	last := dbmodels.StationHistory{}
	found, err := findLast(tx, &last, base.EmployeeID)
	if err != nil {
		return "", err
	}
	if found && base.FromDate.Before(last.FromDate) {
		return "", ErrBackdated
	}
	row := dbmodels.StationHistory{
		HistoryBase:      base,
		Action:           rec.Assignment.Action,
		CurrentStationID: refID(rec.Assignment.Current),
		Remarks:          rec.Assignment.Remarks,
	}
	if found {
		row.LastStationID = last.CurrentStationID
		if err = closeLast(tx, &dbmodels.StationHistory{}, last.HistoryBase, base.FromDate); err != nil {
			return "", err
		}
	}
	if err = tx.Omit("Employee", "CurrentStation", "LastStation").Create(&row).Error; err != nil {
		return "", err
	}
	return row.ID, nil
}

func findLast(tx *gorm.DB, out interface{}, employeeID string) (bool, error) {
	err := tx.
		Where("employee_id = ?", employeeID).
		Order(lastRecordOrder).
		First(out).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, "ошибка получения последней записи истории")
	}
	return true, nil
}

// closeLast закрывает действующую запись датой начала новой
func closeLast(tx *gorm.DB, model interface{}, last dbmodels.HistoryBase, toDate time.Time) error {
	if last.ToDate != nil {
		return nil
	}
	err := tx.Model(model).
		Where("id = ?", last.ID).
		Update("to_date", toDate).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка закрытия предыдущей записи истории")
	}
	return nil
}

func (i impl) Update(id string, rec historyapimodels.Record) (found bool, err error) {
	model, err := newModel(rec.Kind)
	if err != nil {
		return false, err
	}
	updates, err := updateFields(rec)
	if err != nil {
		return false, err
	}
	if rec.Kind != models.HistoryKindStatus {
		tx := i.db.
			Model(model).
			Where("id = ?", id).
			Updates(updates)
		if tx.Error != nil {
			return false, tx.Error
		}
		return tx.RowsAffected != 0, nil
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		row, err := getStatusRecord(tx, id)
		if err != nil || row == nil {
			return err
		}
		err = tx.Model(model).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return err
		}
		found = true
		return syncEmployeeStatus(tx, row.EmployeeID, "")
	})
	return found, err
}

// updateFields изменяемые поля. Сотрудник и предыдущее значение не меняются.
func updateFields(rec historyapimodels.Record) (map[string]interface{}, error) {
	fromDate, toDate, err := parseDates(rec.FromDate, rec.ToDate)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"to_date": toDate,
	}
	if !fromDate.IsZero() {
		updates["from_date"] = fromDate
	}
	if rec.Status != nil {
		updates["current_status"] = rec.Status.Current
		updates["description"] = rec.Status.Description
	}
	if rec.Assignment != nil {
		updates["action"] = rec.Assignment.Action
		updates["remarks"] = rec.Assignment.Remarks
		if rec.Kind == models.HistoryKindAsset {
			updates["current_asset_id"] = refID(rec.Assignment.Current)
		} else {
			updates["current_station_id"] = refID(rec.Assignment.Current)
		}
	}
	return updates, nil
}

func (i impl) Delete(kind models.HistoryKind, id string) (found bool, err error) {
	model, err := newModel(kind)
	if err != nil {
		return false, err
	}
	if kind != models.HistoryKindStatus {
		tx := i.db.
			Where("id = ?", id).
			Delete(model)
		if tx.Error != nil {
			return false, tx.Error
		}
		return tx.RowsAffected != 0, nil
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		row, err := getStatusRecord(tx, id)
		if err != nil || row == nil {
			return err
		}
		if err = tx.Where("id = ?", id).Delete(model).Error; err != nil {
			return err
		}
		found = true
		return syncEmployeeStatus(tx, row.EmployeeID, row.LastStatus)
	})
	return found, err
}

func getStatusRecord(tx *gorm.DB, id string) (*dbmodels.StatusHistory, error) {
	row := dbmodels.StatusHistory{}
	err := tx.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// syncEmployeeStatus статус в карточке сотрудника равен текущему статусу последней записи.
// Без записей статус берется из fallback, пустой fallback карточку не меняет.
func syncEmployeeStatus(tx *gorm.DB, employeeID string, fallback models.EmployeeStatus) error {
	last := dbmodels.StatusHistory{}
	found, err := findLast(tx, &last, employeeID)
	if err != nil {
		return err
	}
	status := fallback
	if found {
		status = last.CurrentStatus
	}
	if !status.IsValid() {
		return nil
	}
	err = tx.Model(&dbmodels.Employee{}).
		Where("id = ?", employeeID).
		Update("status", status).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка обновления статуса сотрудника")
	}
	return nil
}

func (i impl) GetByID(kind models.HistoryKind, id string) (*historyapimodels.Record, error) {
	var (
		rec historyapimodels.Record
		err error
	)
	switch kind {
	case models.HistoryKindStatus:
		row := dbmodels.StatusHistory{}
		err = i.db.Preload("Employee").Where("id = ?", id).First(&row).Error
		rec = row.ToModel()
	case models.HistoryKindAsset:
		row := dbmodels.AssetHistory{}
		err = i.db.Preload("Employee").Preload("CurrentAsset").Preload("LastAsset").Where("id = ?", id).First(&row).Error
		rec = row.ToModel()
	case models.HistoryKindStation:
		row := dbmodels.StationHistory{}
		err = i.db.Preload("Employee").Preload("CurrentStation").Preload("LastStation").Where("id = ?", id).First(&row).Error
		rec = row.ToModel()
	default:
		return nil, errors.Errorf("неизвестный вид истории: %v", kind)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListCount(kind models.HistoryKind, filter historyapimodels.HistoryFilter) (count int64, err error) {
	model, err := newModel(kind)
	if err != nil {
		return 0, err
	}
	var rowCount int64
	err = i.filtered(i.db.Model(model), kind, filter).Count(&rowCount).Error
	if err != nil {
		log.WithError(err).WithField("kind", kind).Error("ошибка получения общего количества записей истории")
		return 0, errors.New("ошибка получения общего количества записей истории")
	}
	return rowCount, nil
}

func (i impl) List(kind models.HistoryKind, filter historyapimodels.HistoryFilter) ([]historyapimodels.Record, error) {
	model, err := newModel(kind)
	if err != nil {
		return nil, err
	}
	tx := i.filtered(i.db.Model(model), kind, filter).Preload("Employee")
	_, limit := filter.GetPage()
	tx = tx.Limit(limit).Offset(filter.GetOffset()).Order(lastRecordOrder)

	result := []historyapimodels.Record{}
	switch kind {
	case models.HistoryKindStatus:
		list := []dbmodels.StatusHistory{}
		err = tx.Find(&list).Error
		for _, row := range list {
			result = append(result, row.ToModel())
		}
	case models.HistoryKindAsset:
		list := []dbmodels.AssetHistory{}
		err = tx.Preload("CurrentAsset").Preload("LastAsset").Find(&list).Error
		for _, row := range list {
			result = append(result, row.ToModel())
		}
	case models.HistoryKindStation:
		list := []dbmodels.StationHistory{}
		err = tx.Preload("CurrentStation").Preload("LastStation").Find(&list).Error
		for _, row := range list {
			result = append(result, row.ToModel())
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (i impl) filtered(tx *gorm.DB, kind models.HistoryKind, filter historyapimodels.HistoryFilter) *gorm.DB {
	spec := kind.Spec()
	if employee := filter.Employee; employee != "" {
		tx = tx.Where("employee_id = ?", employee)
	}
	if value := filter.EnumValue(kind); value != "" {
		column := "action"
		if spec.EnumParam == "status" {
			column = "current_status"
		}
		tx = tx.Where(column+" = ?", value)
	}
	if text := filter.TextValue(kind); text != "" {
		tx = tx.Where(spec.TextParam+" ILIKE ?", "%"+text+"%")
	}
	return tx
}

func newModel(kind models.HistoryKind) (interface{}, error) {
	switch kind {
	case models.HistoryKindStatus:
		return &dbmodels.StatusHistory{}, nil
	case models.HistoryKindAsset:
		return &dbmodels.AssetHistory{}, nil
	case models.HistoryKindStation:
		return &dbmodels.StationHistory{}, nil
	}
	return nil, errors.Errorf("неизвестный вид истории: %v", kind)
}

func newHistoryBase(rec historyapimodels.Record, userID *string) (dbmodels.HistoryBase, error) {
	fromDate, toDate, err := parseDates(rec.FromDate, rec.ToDate)
	if err != nil {
		return dbmodels.HistoryBase{}, err
	}
	if fromDate.IsZero() {
		fromDate = time.Now().Truncate(24 * time.Hour)
	}
	return dbmodels.HistoryBase{
		EmployeeID: rec.Employee.ID,
		FromDate:   fromDate,
		ToDate:     toDate,
		AuthorModel: dbmodels.AuthorModel{
			UserID:   userID,
			UserName: rec.Author,
		},
	}, nil
}

func parseDates(from, to string) (fromDate time.Time, toDate *time.Time, err error) {
	if from != "" {
		fromDate, err = time.Parse(historyapimodels.DateLayout, from)
		if err != nil {
			return time.Time{}, nil, errors.Errorf("некорректная дата начала: %v", from)
		}
	}
	if to != "" {
		value, err := time.Parse(historyapimodels.DateLayout, to)
		if err != nil {
			return time.Time{}, nil, errors.Errorf("некорректная дата окончания: %v", to)
		}
		toDate = &value
	}
	return fromDate, toDate, nil
}

func refID(ref historyapimodels.Ref) *string {
	if ref.ID == "" {
		return nil
	}
	id := ref.ID
	return &id
}
