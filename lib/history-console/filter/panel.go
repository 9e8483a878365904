package historyfilter

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	historystore "personnel-admin/lib/history-console/store"
	"personnel-admin/models"
	historyapimodels "personnel-admin/models/api/history"
)

var (
	ErrEmployeeScoped = errors.New("сотрудник зафиксирован для страницы и не может быть изменен")
)

// Option значение выпадающего списка статуса/действия
type Option struct {
	Value string
	Label string
}

// Form значения полей панели фильтров
type Form struct {
	Employee       string
	StatusOrAction string
	TextSearch     string
	Page           int
	Limit          int
}

// Panel фильтры списка истории для активного вида
type Panel struct {
	store historystore.Provider
	kind  models.HistoryKind
	scope string
	form  Form
}

func NewPanel(store historystore.Provider) *Panel {
	return &Panel{
		store: store,
		kind:  store.Kind(),
		scope: store.EmployeeScope(),
		form:  Form{Employee: store.EmployeeScope()},
	}
}

func (p *Panel) Kind() models.HistoryKind {
	return p.kind
}

func (p *Panel) Form() Form {
	return p.form
}

// EnumLabel подпись выпадающего списка для вида
func (p *Panel) EnumLabel() string {
	if p.kind == models.HistoryKindStatus {
		return "Статус"
	}
	return "Действие"
}

// TextLabel подпись текстового поля для вида
func (p *Panel) TextLabel() string {
	if p.kind.Spec().TextParam == "description" {
		return "Описание"
	}
	return "Примечание"
}

// EnumOptions варианты статуса (вид status) или действия (asset/station)
func (p *Panel) EnumOptions() []Option {
	values := p.kind.Spec().Values
	result := make([]Option, 0, len(values))
	for _, value := range values {
		result = append(result, Option{Value: value, Label: humanValue(p.kind, value)})
	}
	return result
}

// EmployeeReadOnly поле сотрудника недоступно для изменения
func (p *Panel) EmployeeReadOnly() bool {
	return p.scope != ""
}

func (p *Panel) SetEmployee(value string) error {
	value = strings.TrimSpace(value)
	if p.EmployeeReadOnly() {
		if value != p.scope {
			return ErrEmployeeScoped
		}
		return nil
	}
	p.form.Employee = value
	return nil
}

func (p *Panel) SetStatusOrAction(value string) error {
	value = strings.TrimSpace(value)
	if value != "" && !p.kind.IsAllowed(value) {
		return errors.Errorf("недопустимое значение для вида истории %v: %v", p.kind, value)
	}
	p.form.StatusOrAction = value
	return nil
}

func (p *Panel) SetTextSearch(value string) {
	p.form.TextSearch = value
}

// SetPage страница и размер страницы; 0 - значение сервера по умолчанию
func (p *Panel) SetPage(page, limit int) {
	p.form.Page = max(page, 0)
	p.form.Limit = max(limit, 0)
}

// Criteria значения формы без пустых строк
func (p *Panel) Criteria() historyapimodels.Criteria {
	return historyapimodels.Criteria{
		Employee:       p.form.Employee,
		StatusOrAction: p.form.StatusOrAction,
		TextSearch:     p.form.TextSearch,
		Page:           p.form.Page,
		Limit:          p.form.Limit,
	}.Normalize()
}

// Apply запрашивает список с текущими значениями формы
func (p *Panel) Apply(ctx context.Context) error {
	return p.store.Fetch(ctx, p.Criteria())
}

// Clear сбрасывает форму и страницу (сотрудник страницы сохраняется) и запрашивает список
func (p *Panel) Clear(ctx context.Context) error {
	p.form = Form{Employee: p.scope}
	return p.store.Fetch(ctx, p.Criteria())
}

// Rebind перестраивает панель после смены вида: статус/действие другого вида
// не имеет смысла, форма сбрасывается до сотрудника страницы
func (p *Panel) Rebind(kind models.HistoryKind) {
	if kind == p.kind {
		return
	}
	p.kind = kind
	p.form = Form{Employee: p.scope}
}

func humanValue(kind models.HistoryKind, value string) string {
	if kind == models.HistoryKindStatus {
		return models.EmployeeStatus(value).ToHuman()
	}
	return models.HistoryAction(value).ToHuman()
}
