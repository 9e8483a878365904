package historyeditor

import (
	"context"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	historystore "personnel-admin/lib/history-console/store"
	"personnel-admin/models"
	dictapimodels "personnel-admin/models/api/dict"
	historyapimodels "personnel-admin/models/api/history"
)

// Lookups справочники, нужные форме
type Lookups interface {
	GetEmployee(ctx context.Context, id string) (dictapimodels.EmployeeView, error)
	ListEmployees(ctx context.Context, search string) ([]dictapimodels.EmployeeView, error)
	ListAssets(ctx context.Context) ([]dictapimodels.AssetView, error)
	ListStations(ctx context.Context) ([]dictapimodels.StationView, error)
}

// Options режим формы: Record - изменение существующей записи,
// иначе создание (EmployeeID - сотрудник страницы, если есть)
type Options struct {
	Record     *historyapimodels.Record
	EmployeeID string
}

// Form поля формы. Для status используются CurrentStatus, PreviousStatus и Description,
// для asset/station - Action, Current и Remarks.
type Form struct {
	Employee       string
	FromDate       string
	ToDate         string
	CurrentStatus  string
	PreviousStatus string
	Description    string
	Action         string
	Current        string
	Remarks        string
}

// ValidationError ошибка заполнения формы, запрос на сервер не отправляется
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type Editor struct {
	store         historystore.Provider
	kind          models.HistoryKind
	recordID      string
	employeeFixed bool
	closed        bool

	Form      Form
	employees []dictapimodels.ReferenceOption
	catalog   []dictapimodels.ReferenceOption
}

func Open(ctx context.Context, store historystore.Provider, lookups Lookups, opts Options) (*Editor, error) {
	kind := store.Kind()
	e := &Editor{
		store: store,
		kind:  kind,
	}
	if opts.Record != nil {
		if opts.Record.Kind != kind {
			return nil, errors.Errorf("запись вида %v нельзя изменить на вкладке %v", opts.Record.Kind, kind)
		}
		e.recordID = opts.Record.ID
		e.employeeFixed = true
		e.Form = formFromRecord(*opts.Record)
	} else {
		e.Form.Employee = strings.TrimSpace(opts.EmployeeID)
		e.employeeFixed = e.Form.Employee != ""
	}

	employees, err := lookups.ListEmployees(ctx, "")
	if err != nil {
		return nil, errors.Wrap(err, "ошибка загрузки списка сотрудников")
	}
	e.employees = make([]dictapimodels.ReferenceOption, 0, len(employees))
	for _, employee := range employees {
		e.employees = append(e.employees, employee.Option())
	}

	switch kind {
	case models.HistoryKindAsset:
		assets, err := lookups.ListAssets(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка загрузки списка активов")
		}
		for _, asset := range assets {
			e.catalog = append(e.catalog, asset.Option())
		}
	case models.HistoryKindStation:
		stations, err := lookups.ListStations(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка загрузки списка мест службы")
		}
		for _, station := range stations {
			e.catalog = append(e.catalog, station.Option())
		}
	case models.HistoryKindStatus:
		if opts.Record == nil && e.Form.Employee != "" {
			e.prefillPreviousStatus(ctx, lookups)
		}
	}
	return e, nil
}

// prefillPreviousStatus предыдущий статус по умолчанию - текущий статус сотрудника
func (e *Editor) prefillPreviousStatus(ctx context.Context, lookups Lookups) {
	employee, err := lookups.GetEmployee(ctx, e.Form.Employee)
	if err != nil {
		log.
			WithField("employee", e.Form.Employee).
			WithError(err).
			Warn("не удалось получить текущий статус сотрудника")
		return
	}
	if models.EmployeeStatus(employee.Status).IsValid() {
		e.Form.PreviousStatus = employee.Status
	}
}

// SelectEmployee выбор сотрудника в форме создания. Для вида status
// предыдущий статус подставляется из карточки, если еще не заполнен.
func (e *Editor) SelectEmployee(ctx context.Context, lookups Lookups, id string) error {
	if e.employeeFixed {
		return errors.New("сотрудник записи не может быть изменен")
	}
	e.Form.Employee = strings.TrimSpace(id)
	if e.kind == models.HistoryKindStatus && e.Form.Employee != "" && e.Form.PreviousStatus == "" {
		e.prefillPreviousStatus(ctx, lookups)
	}
	return nil
}

func formFromRecord(rec historyapimodels.Record) Form {
	form := Form{
		Employee: rec.Employee.ID,
		FromDate: rec.FromDate,
		ToDate:   rec.ToDate,
	}
	if rec.Status != nil {
		form.CurrentStatus = string(rec.Status.Current)
		form.PreviousStatus = string(rec.Status.Previous)
		form.Description = rec.Status.Description
	}
	if rec.Assignment != nil {
		form.Action = string(rec.Assignment.Action)
		form.Current = rec.Assignment.Current.ID
		form.Remarks = rec.Assignment.Remarks
	}
	return form
}

func (e *Editor) Kind() models.HistoryKind {
	return e.kind
}

func (e *Editor) IsEdit() bool {
	return e.recordID != ""
}

func (e *Editor) IsClosed() bool {
	return e.closed
}

// EmployeeReadOnly сотрудника нельзя выбрать: изменение записи или страница сотрудника
func (e *Editor) EmployeeReadOnly() bool {
	return e.employeeFixed
}

func (e *Editor) EmployeeOptions() []dictapimodels.ReferenceOption {
	return e.employees
}

// CatalogOptions активы или места службы для выбора текущего значения
func (e *Editor) CatalogOptions() []dictapimodels.ReferenceOption {
	return e.catalog
}

// SearchOptions варианты каталога, ранжированные по нечеткому совпадению с запросом
func (e *Editor) SearchOptions(query string) []dictapimodels.ReferenceOption {
	return searchOptions(e.catalog, query)
}

func (e *Editor) SearchEmployees(query string) []dictapimodels.ReferenceOption {
	return searchOptions(e.employees, query)
}

func searchOptions(options []dictapimodels.ReferenceOption, query string) []dictapimodels.ReferenceOption {
	query = strings.TrimSpace(query)
	if query == "" {
		return options
	}
	words := make([]string, len(options))
	for i, option := range options {
		words[i] = strings.TrimSpace(option.Label + " " + option.Subtitle)
	}
	ranks := fuzzy.RankFindNormalizedFold(query, words)
	sort.Sort(ranks)

	result := make([]dictapimodels.ReferenceOption, 0, len(ranks))
	for _, rank := range ranks {
		result = append(result, options[rank.OriginalIndex])
	}
	return result
}

// Validate проверка формы перед отправкой
func (e *Editor) Validate() error {
	form := e.Form
	if strings.TrimSpace(form.Employee) == "" {
		return &ValidationError{Field: "employee", Message: "не указан сотрудник"}
	}
	if e.kind == models.HistoryKindStatus {
		if err := e.validateStatus(); err != nil {
			return err
		}
	} else if err := e.validateAssignment(); err != nil {
		return err
	}
	if err := e.record().Validate(); err != nil {
		return &ValidationError{Field: "dates", Message: err.Error()}
	}
	return nil
}

func (e *Editor) validateStatus() error {
	form := e.Form
	if form.PreviousStatus == "" {
		return &ValidationError{Field: "previousStatus", Message: "не указан предыдущий статус"}
	}
	if !models.EmployeeStatus(form.PreviousStatus).IsValid() {
		return &ValidationError{Field: "previousStatus", Message: "недопустимый предыдущий статус: " + form.PreviousStatus}
	}
	if form.CurrentStatus == "" {
		return &ValidationError{Field: "currentStatus", Message: "не указан текущий статус"}
	}
	if !models.EmployeeStatus(form.CurrentStatus).IsValid() {
		return &ValidationError{Field: "currentStatus", Message: "недопустимый статус: " + form.CurrentStatus}
	}
	if strings.TrimSpace(form.Description) == "" {
		return &ValidationError{Field: "description", Message: "не указано описание"}
	}
	return nil
}

func (e *Editor) validateAssignment() error {
	form := e.Form
	if form.Action == "" {
		return &ValidationError{Field: "action", Message: "не указано действие"}
	}
	if !e.kind.IsAllowed(form.Action) {
		return &ValidationError{Field: "action", Message: "недопустимое действие: " + form.Action}
	}
	current := strings.TrimSpace(form.Current)
	if current == "" {
		return &ValidationError{Field: "current", Message: e.currentRequiredMessage()}
	}
	if _, ok := dictapimodels.ReferenceMap(e.catalog)[current]; !ok {
		return &ValidationError{Field: "current", Message: "значение отсутствует в справочнике: " + current}
	}
	if strings.TrimSpace(form.Remarks) == "" {
		return &ValidationError{Field: "remarks", Message: "не указано примечание"}
	}
	return nil
}

func (e *Editor) currentRequiredMessage() string {
	if e.kind == models.HistoryKindAsset {
		return "не указан актив"
	}
	return "не указано место службы"
}

// record минимальная запись для отправки: только поля вида,
// предыдущий актив/место службы не заполняется
func (e *Editor) record() historyapimodels.Record {
	form := e.Form
	var rec historyapimodels.Record
	if e.kind == models.HistoryKindStatus {
		rec = historyapimodels.NewStatusRecord(strings.TrimSpace(form.Employee), historyapimodels.StatusChange{
			Current:     models.EmployeeStatus(form.CurrentStatus),
			Previous:    models.EmployeeStatus(form.PreviousStatus),
			Description: strings.TrimSpace(form.Description),
		})
	} else {
		rec = historyapimodels.NewAssignmentRecord(e.kind, strings.TrimSpace(form.Employee), historyapimodels.AssignmentChange{
			Action:  models.HistoryAction(form.Action),
			Current: historyapimodels.Ref{ID: strings.TrimSpace(form.Current)},
			Remarks: strings.TrimSpace(form.Remarks),
		})
	}
	rec.FromDate = strings.TrimSpace(form.FromDate)
	rec.ToDate = strings.TrimSpace(form.ToDate)
	return rec
}

// Submit проверяет форму и сохраняет запись через список истории.
// После успешного сохранения форма закрывается.
func (e *Editor) Submit(ctx context.Context) (historyapimodels.Record, error) {
	if e.closed {
		return historyapimodels.Record{}, errors.New("форма уже закрыта")
	}
	if err := e.Validate(); err != nil {
		return historyapimodels.Record{}, err
	}
	rec := e.record()
	var (
		saved historyapimodels.Record
		err   error
	)
	if e.IsEdit() {
		saved, err = e.store.Update(ctx, e.recordID, rec)
	} else {
		saved, err = e.store.Create(ctx, rec)
	}
	if err != nil {
		return historyapimodels.Record{}, err
	}
	e.closed = true
	return saved, nil
}
