package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	historyeditor "personnel-admin/lib/history-console/editor"
	historyrender "personnel-admin/lib/history-console/render"
	dictapimodels "personnel-admin/models/api/dict"
	historyapimodels "personnel-admin/models/api/history"
)

// formFlags поля формы записи; незаданные флаги не меняют форму
type formFlags struct {
	employee       string
	fromDate       string
	toDate         string
	status         string
	previousStatus string
	description    string
	action         string
	current        string
	remarks        string
}

func (f *formFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.employee, "for", "", "сотрудник: ID или часть ФИО/табельного номера")
	flags.StringVar(&f.fromDate, "from", "", "дата начала (YYYY-MM-DD)")
	flags.StringVar(&f.toDate, "to", "", "дата окончания (YYYY-MM-DD)")
	flags.StringVar(&f.status, "status", "", "текущий статус (status)")
	flags.StringVar(&f.previousStatus, "previous-status", "", "предыдущий статус (status), по умолчанию статус сотрудника")
	flags.StringVar(&f.description, "description", "", "описание (status)")
	flags.StringVar(&f.action, "action", "", "действие (asset, station)")
	flags.StringVar(&f.current, "current", "", "актив или место службы: ID или часть названия")
	flags.StringVar(&f.remarks, "remarks", "", "примечание (asset, station)")
}

func (f *formFlags) apply(cmd *cobra.Command, s *session, e *historyeditor.Editor) error {
	changed := cmd.Flags().Changed
	// предыдущий статус раньше сотрудника, чтобы не затереть подстановку из карточки
	if changed("previous-status") {
		e.Form.PreviousStatus = f.previousStatus
	}
	if changed("for") {
		option, err := pickOption("сотрудник", f.employee, e.EmployeeOptions(), e.SearchEmployees)
		if err != nil {
			return err
		}
		if err = e.SelectEmployee(commandContext(cmd), s.client, option.ID); err != nil {
			return err
		}
	}
	if changed("from") {
		e.Form.FromDate = f.fromDate
	}
	if changed("to") {
		e.Form.ToDate = f.toDate
	}
	if changed("status") {
		e.Form.CurrentStatus = f.status
	}
	if changed("description") {
		e.Form.Description = f.description
	}
	if changed("action") {
		e.Form.Action = f.action
	}
	if changed("current") {
		option, err := pickOption("значение справочника", f.current, e.CatalogOptions(), e.SearchOptions)
		if err != nil {
			return err
		}
		e.Form.Current = option.ID
	}
	if changed("remarks") {
		e.Form.Remarks = f.remarks
	}
	return nil
}

// pickOption точное совпадение по ID, иначе лучший вариант нечеткого поиска
func pickOption(what, query string, options []dictapimodels.ReferenceOption, search func(string) []dictapimodels.ReferenceOption) (dictapimodels.ReferenceOption, error) {
	query = strings.TrimSpace(query)
	for _, option := range options {
		if option.ID == query {
			return option, nil
		}
	}
	if query != "" {
		if found := search(query); len(found) > 0 {
			return found[0], nil
		}
	}
	return dictapimodels.ReferenceOption{}, errors.Errorf("%s не найден: %s", what, query)
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	form := &formFlags{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создание записи истории",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession()
			if err != nil {
				return err
			}
			e, err := historyeditor.Open(commandContext(cmd), s.store, s.client, historyeditor.Options{EmployeeID: s.store.EmployeeScope()})
			if err != nil {
				return err
			}
			return submit(cmd, s, e, form)
		},
	}
	form.register(cmd)
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	form := &formFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Изменение записи истории (сотрудник и предыдущее значение не меняются)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession()
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			rec, err := findRecord(ctx, s, args[0])
			if err != nil {
				return err
			}
			e, err := historyeditor.Open(ctx, s.store, s.client, historyeditor.Options{Record: &rec})
			if err != nil {
				return err
			}
			return submit(cmd, s, e, form)
		},
	}
	form.register(cmd)
	return cmd
}

func submit(cmd *cobra.Command, s *session, e *historyeditor.Editor, form *formFlags) error {
	if err := form.apply(cmd, s, e); err != nil {
		return err
	}
	saved, err := e.Submit(commandContext(cmd))
	if err != nil {
		var validationErr *historyeditor.ValidationError
		if errors.As(err, &validationErr) {
			return errors.Errorf("%s (поле %s)", validationErr.Message, validationErr.Field)
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "запись сохранена:", saved.ID)
	return historyrender.Table(cmd.OutOrStdout(), e.Kind(), historyrender.Rows(e.Kind(), []historyapimodels.Record{saved}))
}

// findRecord ищет запись постранично в списке истории текущего вида
func findRecord(ctx context.Context, s *session, id string) (historyapimodels.Record, error) {
	criteria := s.store.Criteria()
	criteria.Limit = maxPageSize
	for criteria.Page = 1; ; criteria.Page++ {
		if err := s.store.Fetch(ctx, criteria); err != nil {
			return historyapimodels.Record{}, err
		}
		records := s.store.Snapshot().Records
		for _, rec := range records {
			if rec.ID == id {
				return rec, nil
			}
		}
		if len(records) < criteria.Limit {
			return historyapimodels.Record{}, errors.Errorf("запись %s не найдена в истории вида %s", id, s.store.Kind())
		}
	}
}
