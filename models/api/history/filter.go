package historyapimodels

import (
	"net/url"
	"strconv"
	"strings"

	"personnel-admin/models"
	apimodels "personnel-admin/models/api"
)

// Criteria фильтр списка истории на стороне клиента
type Criteria struct {
	Employee       string
	StatusOrAction string
	TextSearch     string
	Page           int
	Limit          int
}

// IsEmpty в фильтре нет ни одного условия
func (c Criteria) IsEmpty() bool {
	return c.Normalize() == Criteria{Page: c.Page, Limit: c.Limit}
}

// Normalize убирает пробелы по краям значений
func (c Criteria) Normalize() Criteria {
	return Criteria{
		Employee:       strings.TrimSpace(c.Employee),
		StatusOrAction: strings.TrimSpace(c.StatusOrAction),
		TextSearch:     strings.TrimSpace(c.TextSearch),
		Page:           c.Page,
		Limit:          c.Limit,
	}
}

// Query параметры запроса списка для вида истории. Пустые значения не передаются,
// имена статуса/действия и текста берутся из описания вида.
func (c Criteria) Query(kind models.HistoryKind) url.Values {
	spec := kind.Spec()
	c = c.Normalize()
	query := url.Values{}
	if c.Employee != "" {
		query.Set("employee", c.Employee)
	}
	if c.StatusOrAction != "" {
		query.Set(spec.EnumParam, c.StatusOrAction)
	}
	if c.TextSearch != "" {
		query.Set(spec.TextParam, c.TextSearch)
	}
	if c.Page > 0 {
		query.Set("page", strconv.Itoa(c.Page))
	}
	if c.Limit > 0 {
		query.Set("limit", strconv.Itoa(c.Limit))
	}
	return query
}

// HistoryFilter фильтр списка истории на стороне бэкенда
type HistoryFilter struct {
	apimodels.Pagination
	Employee    string `query:"employee"`
	Status      string `query:"status"`
	Action      string `query:"action"`
	Description string `query:"description"`
	Remarks     string `query:"remarks"`
}

// EnumValue значение статуса/действия для вида истории
func (f HistoryFilter) EnumValue(kind models.HistoryKind) string {
	if kind.Spec().EnumParam == "status" {
		return strings.TrimSpace(f.Status)
	}
	return strings.TrimSpace(f.Action)
}

// TextValue строка поиска по описанию/примечанию для вида истории
func (f HistoryFilter) TextValue(kind models.HistoryKind) string {
	if kind.Spec().TextParam == "description" {
		return strings.TrimSpace(f.Description)
	}
	return strings.TrimSpace(f.Remarks)
}
