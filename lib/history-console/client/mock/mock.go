// Package historyclientmock хранит историю в памяти и повторяет поведение
// бэкенда по цепочке записей. Используется в тестах консоли.
package historyclientmock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	historyclient "personnel-admin/lib/history-console/client"
	"personnel-admin/models"
	dictapimodels "personnel-admin/models/api/dict"
	historyapimodels "personnel-admin/models/api/history"
)

type ListCall struct {
	Kind     models.HistoryKind
	Criteria historyapimodels.Criteria
}

type Client struct {
	mu        sync.Mutex
	nextID    int
	records   map[models.HistoryKind][]historyapimodels.Record
	gates     map[models.HistoryKind]chan struct{}
	listErr   error
	listCalls []ListCall
	created   []historyapimodels.Record

	Employees []dictapimodels.EmployeeView
	Assets    []dictapimodels.AssetView
	Stations  []dictapimodels.StationView
}

var _ historyclient.Provider = (*Client)(nil)

func New() *Client {
	return &Client{
		records: map[models.HistoryKind][]historyapimodels.Record{},
		gates:   map[models.HistoryKind]chan struct{}{},
	}
}

// Hold задерживает ответы List для вида до вызова release
func (c *Client) Hold(kind models.HistoryKind) (release func()) {
	gate := make(chan struct{})
	c.mu.Lock()
	c.gates[kind] = gate
	c.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			if c.gates[kind] == gate {
				delete(c.gates, kind)
			}
			c.mu.Unlock()
			close(gate)
		})
	}
}

// FailList следующие вызовы List возвращают err (nil - снова успешно)
func (c *Client) FailList(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listErr = err
}

// Seed добавляет запись как уже сохраненную на бэкенде
func (c *Client) Seed(rec historyapimodels.Record) historyapimodels.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rec.ID == "" {
		rec.ID = c.newID()
	}
	c.records[rec.Kind] = append([]historyapimodels.Record{rec}, c.records[rec.Kind]...)
	return rec
}

// Forget удаляет запись только на бэкенде
func (c *Client) Forget(kind models.HistoryKind, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[kind] = without(c.records[kind], id)
}

func (c *Client) ListCalls() []ListCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]ListCall, len(c.listCalls))
	copy(result, c.listCalls)
	return result
}

// Created записи в том виде, в каком они пришли на создание
func (c *Client) Created() []historyapimodels.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]historyapimodels.Record, len(c.created))
	copy(result, c.created)
	return result
}

func (c *Client) List(ctx context.Context, kind models.HistoryKind, criteria historyapimodels.Criteria) ([]historyapimodels.Record, error) {
	c.mu.Lock()
	c.listCalls = append(c.listCalls, ListCall{Kind: kind, Criteria: criteria})
	gate := c.gates[kind]
	c.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, historyclient.AsError(ctx.Err())
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listErr != nil {
		return nil, c.listErr
	}
	criteria = criteria.Normalize()
	result := []historyapimodels.Record{}
	for _, rec := range c.records[kind] {
		if matches(rec, criteria) {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (c *Client) Create(_ context.Context, rec historyapimodels.Record) (historyapimodels.Record, error) {
	if err := rec.Validate(); err != nil {
		return historyapimodels.Record{}, historyclient.NewInvalidError(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created = append(c.created, rec)

	saved := copyRecord(rec)
	saved.ID = c.newID()
	if last := c.lastOf(rec.Kind, rec.Employee.ID); last != nil {
		if saved.Assignment != nil {
			saved.Assignment.Previous = last.Assignment.Current
		}
		if saved.Status != nil && saved.Status.Previous == "" {
			saved.Status.Previous = last.Status.Current
		}
	}
	if saved.Assignment != nil {
		saved.Assignment.Current = c.resolve(rec.Kind, saved.Assignment.Current)
	}
	c.records[rec.Kind] = append([]historyapimodels.Record{saved}, c.records[rec.Kind]...)
	return saved, nil
}

func (c *Client) Update(_ context.Context, id string, rec historyapimodels.Record) (historyapimodels.Record, error) {
	if err := rec.ValidateChange(); err != nil {
		return historyapimodels.Record{}, historyclient.NewInvalidError(err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.records[rec.Kind]
	for i := range list {
		if list[i].ID != id {
			continue
		}
		updated := copyRecord(rec)
		updated.ID = id
		updated.Employee = list[i].Employee
		if updated.Assignment != nil && list[i].Assignment != nil {
			updated.Assignment.Previous = list[i].Assignment.Previous
			updated.Assignment.Current = c.resolve(rec.Kind, updated.Assignment.Current)
		}
		list[i] = updated
		return updated, nil
	}
	return historyapimodels.Record{}, &historyclient.Error{
		Kind:    historyclient.ErrorKindServer,
		Status:  404,
		Message: "запись истории не найдена",
	}
}

func (c *Client) Delete(_ context.Context, kind models.HistoryKind, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[kind] = without(c.records[kind], id)
	return nil
}

func (c *Client) GetEmployee(_ context.Context, id string) (dictapimodels.EmployeeView, error) {
	for _, employee := range c.Employees {
		if employee.ID == id {
			return employee, nil
		}
	}
	return dictapimodels.EmployeeView{}, &historyclient.Error{
		Kind:    historyclient.ErrorKindServer,
		Status:  404,
		Message: "сотрудник не найден",
	}
}

func (c *Client) ListEmployees(_ context.Context, search string) ([]dictapimodels.EmployeeView, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	result := []dictapimodels.EmployeeView{}
	for _, employee := range c.Employees {
		if search == "" || strings.Contains(strings.ToLower(employee.GetFullName()), search) {
			result = append(result, employee)
		}
	}
	return result, nil
}

func (c *Client) ListAssets(_ context.Context) ([]dictapimodels.AssetView, error) {
	return c.Assets, nil
}

func (c *Client) ListStations(_ context.Context) ([]dictapimodels.StationView, error) {
	return c.Stations, nil
}

func (c *Client) newID() string {
	c.nextID++
	return fmt.Sprintf("h%d", c.nextID)
}

func (c *Client) lastOf(kind models.HistoryKind, employeeID string) *historyapimodels.Record {
	for i := range c.records[kind] {
		if c.records[kind][i].Employee.ID == employeeID {
			return &c.records[kind][i]
		}
	}
	return nil
}

func (c *Client) resolve(kind models.HistoryKind, ref historyapimodels.Ref) historyapimodels.Ref {
	switch kind {
	case models.HistoryKindAsset:
		for _, asset := range c.Assets {
			if asset.ID == ref.ID {
				return historyapimodels.Ref{ID: asset.ID, Name: asset.Name}
			}
		}
	case models.HistoryKindStation:
		for _, station := range c.Stations {
			if station.ID == ref.ID {
				return historyapimodels.Ref{ID: station.ID, Name: station.Name}
			}
		}
	}
	return ref
}

func matches(rec historyapimodels.Record, criteria historyapimodels.Criteria) bool {
	if criteria.Employee != "" && rec.Employee.ID != criteria.Employee {
		return false
	}
	if criteria.StatusOrAction != "" && rec.Value() != criteria.StatusOrAction {
		return false
	}
	if criteria.TextSearch != "" &&
		!strings.Contains(strings.ToLower(rec.Text()), strings.ToLower(criteria.TextSearch)) {
		return false
	}
	return true
}

func without(list []historyapimodels.Record, id string) []historyapimodels.Record {
	result := make([]historyapimodels.Record, 0, len(list))
	for _, rec := range list {
		if rec.ID != id {
			result = append(result, rec)
		}
	}
	return result
}

func copyRecord(rec historyapimodels.Record) historyapimodels.Record {
	if rec.Status != nil {
		status := *rec.Status
		rec.Status = &status
	}
	if rec.Assignment != nil {
		assignment := *rec.Assignment
		rec.Assignment = &assignment
	}
	return rec
}
