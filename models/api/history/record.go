package historyapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"personnel-admin/models"
)

const DateLayout = "2006-01-02"

// Record запись истории сотрудника. Вид определяется полем Kind,
// для status заполнен Status, для asset/station - Assignment.
type Record struct {
	Kind       models.HistoryKind
	ID         string
	Employee   Ref
	FromDate   string
	ToDate     string // пусто - запись действует
	Author     string
	CreatedAt  string
	Status     *StatusChange
	Assignment *AssignmentChange
}

type StatusChange struct {
	Current     models.EmployeeStatus
	Previous    models.EmployeeStatus // при создании бэкенд может вычислить сам
	Description string
}

// AssignmentChange изменение актива или места службы.
// Previous заполняется только бэкендом по цепочке записей сотрудника.
type AssignmentChange struct {
	Action   models.HistoryAction
	Current  Ref
	Previous Ref
	Remarks  string
}

func NewStatusRecord(employeeID string, change StatusChange) Record {
	return Record{
		Kind:     models.HistoryKindStatus,
		Employee: Ref{ID: employeeID},
		Status:   &change,
	}
}

func NewAssignmentRecord(kind models.HistoryKind, employeeID string, change AssignmentChange) Record {
	return Record{
		Kind:       kind,
		Employee:   Ref{ID: employeeID},
		Assignment: &change,
	}
}

// Value статус или действие записи
func (r Record) Value() string {
	switch {
	case r.Status != nil:
		return string(r.Status.Current)
	case r.Assignment != nil:
		return string(r.Assignment.Action)
	}
	return ""
}

// Text описание (status) или примечание (asset/station)
func (r Record) Text() string {
	switch {
	case r.Status != nil:
		return r.Status.Description
	case r.Assignment != nil:
		return r.Assignment.Remarks
	}
	return ""
}

// IsActive запись действует на текущий момент
func (r Record) IsActive() bool {
	return r.ToDate == ""
}

// Validate проверка записи перед созданием
func (r Record) Validate() error {
	if strings.TrimSpace(r.Employee.ID) == "" {
		return errors.New("не указан сотрудник")
	}
	return r.ValidateChange()
}

// ValidateChange проверка изменяемых полей записи (без сотрудника)
func (r Record) ValidateChange() error {
	if !r.Kind.IsValid() {
		return errors.Errorf("неизвестный вид истории: %v", r.Kind)
	}
	if err := validateDates(r.FromDate, r.ToDate); err != nil {
		return err
	}
	if r.Kind == models.HistoryKindStatus {
		return r.validateStatus()
	}
	return r.validateAssignment()
}

func (r Record) validateStatus() error {
	if r.Status == nil || r.Assignment != nil {
		return errors.New("запись не соответствует виду истории status")
	}
	if r.Status.Current == "" {
		return errors.New("не указан текущий статус")
	}
	if !r.Status.Current.IsValid() {
		return errors.Errorf("недопустимый статус: %v", r.Status.Current)
	}
	if r.Status.Previous != "" && !r.Status.Previous.IsValid() {
		return errors.Errorf("недопустимый предыдущий статус: %v", r.Status.Previous)
	}
	if strings.TrimSpace(r.Status.Description) == "" {
		return errors.New("не указано описание")
	}
	return nil
}

func (r Record) validateAssignment() error {
	if r.Assignment == nil || r.Status != nil {
		return errors.Errorf("запись не соответствует виду истории %v", r.Kind)
	}
	if r.Assignment.Action == "" {
		return errors.New("не указано действие")
	}
	if !r.Kind.IsAllowed(string(r.Assignment.Action)) {
		return errors.Errorf("недопустимое действие для вида истории %v: %v", r.Kind, r.Assignment.Action)
	}
	if strings.TrimSpace(r.Assignment.Current.ID) == "" {
		if r.Kind == models.HistoryKindAsset {
			return errors.New("не указан актив")
		}
		return errors.New("не указано место службы")
	}
	if strings.TrimSpace(r.Assignment.Remarks) == "" {
		return errors.New("не указано примечание")
	}
	return nil
}

func validateDates(from, to string) error {
	var fromT, toT time.Time
	var err error
	if from != "" {
		fromT, err = time.Parse(DateLayout, from)
		if err != nil {
			return errors.Errorf("некорректная дата начала: %v", from)
		}
	}
	if to != "" {
		toT, err = time.Parse(DateLayout, to)
		if err != nil {
			return errors.Errorf("некорректная дата окончания: %v", to)
		}
	}
	if from != "" && to != "" && toT.Before(fromT) {
		return errors.New("дата окончания раньше даты начала")
	}
	return nil
}
