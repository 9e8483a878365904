package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	historyfilter "personnel-admin/lib/history-console/filter"
	historystore "personnel-admin/lib/history-console/store"
	"personnel-admin/models"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "Виды истории и допустимые значения статуса/действия",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, kind := range models.HistoryKinds {
				panel := historyfilter.NewPanel(historystore.NewInstance(historystore.Config{Kind: kind}))
				spec := kind.Spec()
				values := make([]string, 0, len(spec.Values))
				for _, option := range panel.EnumOptions() {
					values = append(values, fmt.Sprintf("%s (%s)", option.Value, option.Label))
				}
				fmt.Fprintf(out, "%s\t/%s\n", spec.Title, spec.Resource)
				fmt.Fprintf(out, "  %s: %s\n", panel.EnumLabel(), strings.Join(values, ", "))
				fmt.Fprintf(out, "  %s: %s\n", panel.TextLabel(), spec.TextParam)
			}
			return nil
		},
	}
}
