package employeeprovider

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"personnel-admin/db"
	employeestore "personnel-admin/lib/dicts/employee/store"
	initchecker "personnel-admin/lib/utils/init-checker"
	"personnel-admin/models"
	apimodels "personnel-admin/models/api"
	dictapimodels "personnel-admin/models/api/dict"
	dbmodels "personnel-admin/models/db"
)

type Provider interface {
	Create(request dictapimodels.EmployeeData) (id string, hMsg string, err error)
	Update(id string, request dictapimodels.EmployeeData) (hMsg string, err error)
	Get(id string) (item dictapimodels.EmployeeView, err error)
	List(filter dictapimodels.EmployeeFind) (list []dictapimodels.EmployeeView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: employeestore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store employeestore.Provider
}

func (i impl) Create(request dictapimodels.EmployeeData) (id string, hMsg string, err error) {
	unique, err := i.store.IsUnique("", request.PersonalNumber)
	if err != nil {
		return "", "", err
	}
	if !unique {
		return "", "сотрудник с таким табельным номером уже существует", nil
	}
	status := models.EmployeeStatus(request.Status)
	if status == "" {
		status = models.EmployeeStatusActive
	}
	rec := dbmodels.Employee{
		FirstName:      strings.TrimSpace(request.FirstName),
		LastName:       strings.TrimSpace(request.LastName),
		PersonalNumber: strings.TrimSpace(request.PersonalNumber),
		Status:         status,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	log.
		WithField("employee_id", id).
		WithField("personal_number", rec.PersonalNumber).
		Info("добавлен сотрудник")
	return id, "", nil
}

// Update меняет ФИО и табельный номер. Статус меняется только записью истории статусов.
func (i impl) Update(id string, request dictapimodels.EmployeeData) (hMsg string, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", apimodels.NewNotFoundError("сотрудник не найден")
	}
	if request.Status != "" && models.EmployeeStatus(request.Status) != rec.Status {
		return "статус сотрудника меняется через историю статусов", nil
	}
	unique, err := i.store.IsUnique(id, request.PersonalNumber)
	if err != nil {
		return "", err
	}
	if !unique {
		return "сотрудник с таким табельным номером уже существует", nil
	}
	updMap := map[string]interface{}{
		"first_name":      strings.TrimSpace(request.FirstName),
		"last_name":       strings.TrimSpace(request.LastName),
		"personal_number": strings.TrimSpace(request.PersonalNumber),
	}
	if err = i.store.Update(id, updMap); err != nil {
		return "", err
	}
	log.WithField("employee_id", id).Info("изменен сотрудник")
	return "", nil
}

func (i impl) Get(id string) (item dictapimodels.EmployeeView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.EmployeeView{}, err
	}
	if rec == nil {
		return dictapimodels.EmployeeView{}, apimodels.NewNotFoundError("сотрудник не найден")
	}
	return rec.ToModel(), nil
}

func (i impl) List(filter dictapimodels.EmployeeFind) (list []dictapimodels.EmployeeView, err error) {
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.EmployeeView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, rec.ToModel())
	}
	return result, nil
}
