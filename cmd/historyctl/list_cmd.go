package main

import (
	"github.com/spf13/cobra"
	"personnel-admin/config"
	historyfilter "personnel-admin/lib/history-console/filter"
	historyrender "personnel-admin/lib/history-console/render"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		employee string
		value    string
		text     string
		page     int
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список записей истории с фильтрами",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.newSession()
			if err != nil {
				return err
			}
			panel := historyfilter.NewPanel(s.store)
			if cmd.Flags().Changed("filter-employee") {
				if err = panel.SetEmployee(employee); err != nil {
					return err
				}
			}
			if err = panel.SetStatusOrAction(value); err != nil {
				return err
			}
			panel.SetTextSearch(text)
			panel.SetPage(page, limit)
			if err = panel.Apply(commandContext(cmd)); err != nil {
				return err
			}

			state := s.store.Snapshot()
			return historyrender.Table(cmd.OutOrStdout(), state.Kind, historyrender.Rows(state.Kind, state.Records))
		},
	}
	cmd.Flags().StringVar(&employee, "filter-employee", "", "фильтр по ID сотрудника")
	cmd.Flags().StringVarP(&value, "value", "s", "", "статус (status) или действие (asset, station)")
	cmd.Flags().StringVarP(&text, "text", "t", "", "поиск по описанию (status) или примечанию (asset, station)")
	cmd.Flags().IntVar(&page, "page", 0, "страница")
	cmd.Flags().IntVar(&limit, "limit", 0, "записей на странице (по умолчанию CONSOLE_PAGE_SIZE)")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("limit") {
			limit = config.Conf.Console.PageSize
		}
	}
	return cmd
}
