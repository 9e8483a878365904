package models

import (
	"github.com/pkg/errors"
)

type HistoryKind string

const (
	HistoryKindStatus  HistoryKind = "status"
	HistoryKindAsset   HistoryKind = "asset"
	HistoryKindStation HistoryKind = "station"
)

// HistoryKinds порядок вкладок истории
var HistoryKinds = []HistoryKind{HistoryKindStatus, HistoryKindAsset, HistoryKindStation}

type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusRetired    EmployeeStatus = "retired"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
	EmployeeStatusDismissed  EmployeeStatus = "dismissed"
)

type HistoryAction string

const (
	AssetActionAllocated   HistoryAction = "allocated"
	AssetActionDeallocated HistoryAction = "deallocated"
	AssetActionReturned    HistoryAction = "returned"

	StationActionAssigned   HistoryAction = "assigned"
	StationActionUnassigned HistoryAction = "unassigned"
	StationActionRelieved   HistoryAction = "relieved"

	// ActionTransferred общее действие для активов и мест службы
	ActionTransferred HistoryAction = "transferred"
)

// HistoryKindSpec описание полей и допустимых значений для вида истории
type HistoryKindSpec struct {
	Kind        HistoryKind
	Title       string
	Resource    string   // путь ресурса на бэкенде
	EnumParam   string   // имя параметра статуса/действия
	TextParam   string   // имя текстового поля
	CurrentKey  string   // поле текущего значения
	PreviousKey string   // поле предыдущего значения, заполняется сервером
	RefEntity   string   // справочник для текущего/предыдущего значения
	Values      []string // допустимые значения статуса/действия
}

var historyKindSpecs = map[HistoryKind]HistoryKindSpec{
	HistoryKindStatus: {
		Kind:        HistoryKindStatus,
		Title:       "История статусов",
		Resource:    "status-history",
		EnumParam:   "status",
		TextParam:   "description",
		CurrentKey:  "currentStatus",
		PreviousKey: "lastStatus",
		Values: []string{
			string(EmployeeStatusActive),
			string(EmployeeStatusRetired),
			string(EmployeeStatusTerminated),
			string(EmployeeStatusDismissed),
		},
	},
	HistoryKindAsset: {
		Kind:        HistoryKindAsset,
		Title:       "История активов",
		Resource:    "asset-history",
		EnumParam:   "action",
		TextParam:   "remarks",
		CurrentKey:  "currentAsset",
		PreviousKey: "lastAsset",
		RefEntity:   "asset",
		Values: []string{
			string(AssetActionAllocated),
			string(AssetActionDeallocated),
			string(ActionTransferred),
			string(AssetActionReturned),
		},
	},
	HistoryKindStation: {
		Kind:        HistoryKindStation,
		Title:       "История мест службы",
		Resource:    "station-history",
		EnumParam:   "action",
		TextParam:   "remarks",
		CurrentKey:  "currentStation",
		PreviousKey: "lastStation",
		RefEntity:   "station",
		Values: []string{
			string(StationActionAssigned),
			string(StationActionUnassigned),
			string(ActionTransferred),
			string(StationActionRelieved),
		},
	},
}

func ParseHistoryKind(value string) (HistoryKind, error) {
	kind := HistoryKind(value)
	if _, ok := historyKindSpecs[kind]; !ok {
		return "", errors.Errorf("неизвестный вид истории: %v", value)
	}
	return kind, nil
}

// ParseHistoryResource определяет вид истории по пути ресурса (status-history и т.д.)
func ParseHistoryResource(resource string) (HistoryKind, error) {
	for kind, spec := range historyKindSpecs {
		if spec.Resource == resource {
			return kind, nil
		}
	}
	return "", errors.Errorf("неизвестный ресурс истории: %v", resource)
}

func (k HistoryKind) Spec() HistoryKindSpec {
	return historyKindSpecs[k]
}

func (k HistoryKind) IsValid() bool {
	_, ok := historyKindSpecs[k]
	return ok
}

// IsAllowed проверяет, что значение статуса/действия допустимо для вида истории
func (k HistoryKind) IsAllowed(value string) bool {
	for _, v := range historyKindSpecs[k].Values {
		if v == value {
			return true
		}
	}
	return false
}

// HasReference вид истории ссылается на актив или место службы
func (k HistoryKind) HasReference() bool {
	return historyKindSpecs[k].RefEntity != ""
}

func (s EmployeeStatus) IsValid() bool {
	return HistoryKindStatus.IsAllowed(string(s))
}

var employeeStatusHumanName = map[EmployeeStatus]string{
	EmployeeStatusActive:     "Работает",
	EmployeeStatusRetired:    "На пенсии",
	EmployeeStatusTerminated: "Уволен по инициативе работодателя",
	EmployeeStatusDismissed:  "Отстранен",
}

func (s EmployeeStatus) ToHuman() string {
	if human, exist := employeeStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

var actionHumanName = map[HistoryAction]string{
	AssetActionAllocated:    "Выдан",
	AssetActionDeallocated:  "Изъят",
	AssetActionReturned:     "Возвращен",
	StationActionAssigned:   "Назначен",
	StationActionUnassigned: "Снят с назначения",
	StationActionRelieved:   "Освобожден",
	ActionTransferred:       "Переведен",
}

func (a HistoryAction) ToHuman() string {
	if human, exist := actionHumanName[a]; exist {
		return human
	}
	return string(a)
}
