package historyrender

import (
	"personnel-admin/models"
	historyapimodels "personnel-admin/models/api/history"
)

type BadgeColor string

const (
	BadgeGreen  BadgeColor = "green"
	BadgeBlue   BadgeColor = "blue"
	BadgeOrange BadgeColor = "orange"
	BadgeRed    BadgeColor = "red"
	BadgePurple BadgeColor = "purple"
	BadgeGray   BadgeColor = "gray"
)

var badgeColors = map[string]BadgeColor{
	string(models.EmployeeStatusActive):     BadgeGreen,
	string(models.EmployeeStatusRetired):    BadgeBlue,
	string(models.EmployeeStatusTerminated): BadgeRed,
	string(models.EmployeeStatusDismissed):  BadgeOrange,

	string(models.AssetActionAllocated):    BadgeGreen,
	string(models.AssetActionDeallocated):  BadgeRed,
	string(models.AssetActionReturned):     BadgeBlue,
	string(models.StationActionAssigned):   BadgeGreen,
	string(models.StationActionUnassigned): BadgeRed,
	string(models.StationActionRelieved):   BadgeOrange,
	string(models.ActionTransferred):       BadgePurple,
}

// Arrow разделитель "было → стало"
const Arrow = " → "

// Row запись истории, подготовленная для вывода
type Row struct {
	ID       string
	Employee string
	Value    string
	Badge    string
	Color    BadgeColor
	Change   string
	Note     string
	FromDate string
	ToDate   string
	Author   string
}

func BadgeColorOf(value string) BadgeColor {
	if color, ok := badgeColors[value]; ok {
		return color
	}
	return BadgeGray
}

func Rows(kind models.HistoryKind, records []historyapimodels.Record) []Row {
	result := make([]Row, 0, len(records))
	for _, rec := range records {
		if rec.Kind != "" && rec.Kind != kind {
			continue
		}
		result = append(result, NewRow(rec))
	}
	return result
}

func NewRow(rec historyapimodels.Record) Row {
	return Row{
		ID:       rec.ID,
		Employee: rec.Employee.Label(),
		Value:    rec.Value(),
		Badge:    badgeLabel(rec),
		Color:    BadgeColorOf(rec.Value()),
		Change:   ChangeLabel(rec),
		Note:     rec.Text(),
		FromDate: rec.FromDate,
		ToDate:   rec.ToDate,
		Author:   rec.Author,
	}
}

func badgeLabel(rec historyapimodels.Record) string {
	if rec.Status != nil {
		return rec.Status.Current.ToHuman()
	}
	if rec.Assignment != nil {
		return rec.Assignment.Action.ToHuman()
	}
	return ""
}

// ChangeLabel подпись изменения. Для перевода и смены статуса - "было → стало",
// если известны обе стороны, иначе та, что есть.
func ChangeLabel(rec historyapimodels.Record) string {
	switch {
	case rec.Status != nil:
		current := humanStatus(rec.Status.Current)
		previous := humanStatus(rec.Status.Previous)
		if previous != "" && current != "" && rec.Status.Previous != rec.Status.Current {
			return previous + Arrow + current
		}
		return firstNonEmpty(current, previous)
	case rec.Assignment != nil:
		current := rec.Assignment.Current.Label()
		previous := rec.Assignment.Previous.Label()
		if rec.Assignment.Action == models.ActionTransferred && previous != "" && current != "" {
			return previous + Arrow + current
		}
		return firstNonEmpty(current, previous)
	}
	return ""
}

func humanStatus(status models.EmployeeStatus) string {
	if status == "" {
		return ""
	}
	return status.ToHuman()
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
