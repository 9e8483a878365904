package historyfilter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	historyclientmock "personnel-admin/lib/history-console/client/mock"
	historystore "personnel-admin/lib/history-console/store"
	"personnel-admin/models"
	historyapimodels "personnel-admin/models/api/history"
)

func TestPanel(t *testing.T) {
	t.Run(`controls depend on kind`, func(t *testing.T) {
		store := historystore.NewInstance(historystore.Config{Client: historyclientmock.New(), Kind: models.HistoryKindStatus})
		panel := NewPanel(store)
		require.Equal(t, "Статус", panel.EnumLabel())
		require.Equal(t, "Описание", panel.TextLabel())
		require.Len(t, panel.EnumOptions(), 4)
		require.Equal(t, Option{Value: "retired", Label: "На пенсии"}, panel.EnumOptions()[1])

		panel.Rebind(models.HistoryKindStation)
		require.Equal(t, "Действие", panel.EnumLabel())
		require.Equal(t, "Примечание", panel.TextLabel())
		require.Equal(t, "assigned", panel.EnumOptions()[0].Value)
		require.False(t, panel.EmployeeReadOnly())
	})

	t.Run(`apply prunes empty values`, func(t *testing.T) {
		client := historyclientmock.New()
		store := historystore.NewInstance(historystore.Config{Client: client, Kind: models.HistoryKindAsset})
		panel := NewPanel(store)
		require.NoError(t, panel.SetEmployee(" "))
		require.NoError(t, panel.SetStatusOrAction("returned"))
		panel.SetTextSearch("  ")
		require.NoError(t, panel.Apply(context.TODO()))

		calls := client.ListCalls()
		require.Len(t, calls, 1)
		require.Equal(t, historyapimodels.Criteria{StatusOrAction: "returned"}, calls[0].Criteria)
		query := calls[0].Criteria.Query(models.HistoryKindAsset)
		for key, values := range query {
			require.NotEmpty(t, values[0], key)
		}
	})

	t.Run(`enum value must fit kind`, func(t *testing.T) {
		store := historystore.NewInstance(historystore.Config{Client: historyclientmock.New(), Kind: models.HistoryKindAsset})
		panel := NewPanel(store)
		err := panel.SetStatusOrAction("retired")
		require.Equal(t, "недопустимое значение для вида истории asset: retired", err.Error())
		require.Equal(t, "", panel.Form().StatusOrAction)
	})

	t.Run(`clear with employee scope`, func(t *testing.T) {
		client := historyclientmock.New()
		store := historystore.NewInstance(historystore.Config{Client: client, Kind: models.HistoryKindStatus, EmployeeScope: "E1"})
		panel := NewPanel(store)
		require.True(t, panel.EmployeeReadOnly())
		require.ErrorIs(t, panel.SetEmployee("E2"), ErrEmployeeScoped)
		require.NoError(t, panel.SetEmployee("E1"))

		require.NoError(t, panel.SetStatusOrAction("retired"))
		require.NoError(t, panel.Apply(context.TODO()))
		require.NoError(t, panel.Clear(context.TODO()))

		calls := client.ListCalls()
		require.Len(t, calls, 2)
		require.Equal(t, historyapimodels.Criteria{Employee: "E1", StatusOrAction: "retired"}, calls[0].Criteria)
		require.Equal(t, historyapimodels.Criteria{Employee: "E1"}, calls[1].Criteria)
		require.Equal(t, Form{Employee: "E1"}, panel.Form())
	})

	t.Run(`paging goes with apply and is reset by clear`, func(t *testing.T) {
		client := historyclientmock.New()
		store := historystore.NewInstance(historystore.Config{Client: client, Kind: models.HistoryKindStation})
		panel := NewPanel(store)
		require.NoError(t, panel.SetStatusOrAction("assigned"))
		panel.SetPage(2, 50)
		require.NoError(t, panel.Apply(context.TODO()))
		require.NoError(t, panel.Clear(context.TODO()))

		calls := client.ListCalls()
		require.Len(t, calls, 2)
		require.Equal(t, historyapimodels.Criteria{StatusOrAction: "assigned", Page: 2, Limit: 50}, calls[0].Criteria)
		require.True(t, calls[1].Criteria.IsEmpty())
		require.Equal(t, historyapimodels.Criteria{}, calls[1].Criteria)
	})

	t.Run(`clear without scope`, func(t *testing.T) {
		client := historyclientmock.New()
		store := historystore.NewInstance(historystore.Config{Client: client, Kind: models.HistoryKindStatus})
		panel := NewPanel(store)
		require.NoError(t, panel.SetEmployee("E3"))
		panel.SetTextSearch("пенси")
		require.NoError(t, panel.Clear(context.TODO()))
		calls := client.ListCalls()
		require.True(t, calls[0].Criteria.IsEmpty())
		require.Empty(t, calls[0].Criteria.Query(models.HistoryKindStatus))
	})
}
