package historystore

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	historyclient "personnel-admin/lib/history-console/client"
	historyclientmock "personnel-admin/lib/history-console/client/mock"
	"personnel-admin/models"
	historyapimodels "personnel-admin/models/api/history"
)

func statusRecord(employeeID string, current models.EmployeeStatus, description string) historyapimodels.Record {
	return historyapimodels.NewStatusRecord(employeeID, historyapimodels.StatusChange{
		Current:     current,
		Previous:    models.EmployeeStatusActive,
		Description: description,
	})
}

func assetRecord(employeeID, assetID string, action models.HistoryAction) historyapimodels.Record {
	return historyapimodels.NewAssignmentRecord(models.HistoryKindAsset, employeeID, historyapimodels.AssignmentChange{
		Action:  action,
		Current: historyapimodels.Ref{ID: assetID},
		Remarks: "примечание",
	})
}

func waitDone(t *testing.T, done <-chan error) error {
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("запрос истории не завершился")
	}
	return nil
}

func TestStoreFetch(t *testing.T) {
	t.Run(`fetch replaces list`, func(t *testing.T) {
		client := historyclientmock.New()
		client.Seed(statusRecord("E1", models.EmployeeStatusRetired, "на пенсию"))
		client.Seed(statusRecord("E2", models.EmployeeStatusDismissed, "отстранен"))
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindStatus})

		err := store.Fetch(context.TODO(), historyapimodels.Criteria{Employee: "E1"})
		require.NoError(t, err)
		state := store.Snapshot()
		require.False(t, state.Loading)
		require.Nil(t, state.Err)
		require.Len(t, state.Records, 1)
		require.Equal(t, "на пенсию", state.Records[0].Text())
	})

	t.Run(`error clears list`, func(t *testing.T) {
		client := historyclientmock.New()
		client.Seed(statusRecord("E1", models.EmployeeStatusRetired, "на пенсию"))
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindStatus})
		require.NoError(t, store.Fetch(context.TODO(), historyapimodels.Criteria{}))
		require.Len(t, store.Snapshot().Records, 1)

		client.FailList(errors.New("connection refused"))
		err := store.Fetch(context.TODO(), historyapimodels.Criteria{})
		require.Error(t, err)
		state := store.Snapshot()
		require.Empty(t, state.Records)
		require.NotNil(t, state.Err)
		require.Equal(t, historyclient.ErrorKindTransport, state.Err.Kind)
		require.Equal(t, "не удалось выполнить запрос к серверу", state.Err.Message)

		client.FailList(nil)
		require.NoError(t, store.Reload(context.TODO()))
		require.Nil(t, store.Snapshot().Err)
	})

	t.Run(`employee scope is kept`, func(t *testing.T) {
		client := historyclientmock.New()
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindAsset, EmployeeScope: "E1"})
		require.NoError(t, store.Fetch(context.TODO(), historyapimodels.Criteria{Employee: "E2", StatusOrAction: "allocated"}))
		calls := client.ListCalls()
		require.Len(t, calls, 1)
		require.Equal(t, historyapimodels.Criteria{Employee: "E1", StatusOrAction: "allocated"}, calls[0].Criteria)
	})
}

func TestStoreSwitchKind(t *testing.T) {
	t.Run(`switch clears synchronously`, func(t *testing.T) {
		client := historyclientmock.New()
		client.Seed(statusRecord("E1", models.EmployeeStatusRetired, "на пенсию"))
		client.Seed(assetRecord("E1", "A1", models.AssetActionAllocated))
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindStatus})
		require.NoError(t, store.Fetch(context.TODO(), historyapimodels.Criteria{StatusOrAction: "retired"}))
		require.Len(t, store.Snapshot().Records, 1)

		release := client.Hold(models.HistoryKindAsset)
		done := store.SwitchKind(context.TODO(), models.HistoryKindAsset)
		state := store.Snapshot()
		require.Equal(t, models.HistoryKindAsset, state.Kind)
		require.Empty(t, state.Records)
		require.Nil(t, state.Err)
		require.True(t, state.Loading)
		require.True(t, state.Criteria.IsEmpty())

		release()
		require.NoError(t, waitDone(t, done))
		state = store.Snapshot()
		require.Len(t, state.Records, 1)
		require.Equal(t, models.HistoryKindAsset, state.Records[0].Kind)
	})

	t.Run(`switch keeps only employee scope`, func(t *testing.T) {
		client := historyclientmock.New()
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindStatus, EmployeeScope: "E1"})
		require.NoError(t, store.Fetch(context.TODO(), historyapimodels.Criteria{StatusOrAction: "retired", TextSearch: "x"}))
		require.NoError(t, waitDone(t, store.SwitchKind(context.TODO(), models.HistoryKindStation)))
		calls := client.ListCalls()
		require.Equal(t, historyapimodels.Criteria{Employee: "E1"}, calls[len(calls)-1].Criteria)
	})

	t.Run(`stale kind response is discarded`, func(t *testing.T) {
		client := historyclientmock.New()
		client.Seed(statusRecord("E1", models.EmployeeStatusRetired, "на пенсию"))
		client.Seed(assetRecord("E1", "A1", models.AssetActionAllocated))
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindStatus})

		release := client.Hold(models.HistoryKindStatus)
		statusDone := make(chan error, 1)
		go func() {
			statusDone <- store.Fetch(context.TODO(), historyapimodels.Criteria{})
		}()
		require.Eventually(t, func() bool { return len(client.ListCalls()) == 1 }, time.Second, time.Millisecond)

		require.NoError(t, waitDone(t, store.SwitchKind(context.TODO(), models.HistoryKindAsset)))
		release()
		require.NoError(t, waitDone(t, statusDone))

		state := store.Snapshot()
		require.Equal(t, models.HistoryKindAsset, state.Kind)
		require.Len(t, state.Records, 1)
		require.Equal(t, models.HistoryKindAsset, state.Records[0].Kind)
		require.False(t, state.Loading)
	})

	t.Run(`newest fetch of same kind wins`, func(t *testing.T) {
		client := historyclientmock.New()
		client.Seed(statusRecord("E1", models.EmployeeStatusRetired, "на пенсию"))
		client.Seed(statusRecord("E2", models.EmployeeStatusDismissed, "отстранен"))
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindStatus})

		release := client.Hold(models.HistoryKindStatus)
		firstDone := make(chan error, 1)
		go func() {
			firstDone <- store.Fetch(context.TODO(), historyapimodels.Criteria{Employee: "E1"})
		}()
		require.Eventually(t, func() bool { return len(client.ListCalls()) == 1 }, time.Second, time.Millisecond)
		release()

		require.NoError(t, store.Fetch(context.TODO(), historyapimodels.Criteria{Employee: "E2"}))
		require.NoError(t, waitDone(t, firstDone))
		state := store.Snapshot()
		require.Len(t, state.Records, 1)
		require.Equal(t, "E2", state.Records[0].Employee.ID)
	})

	t.Run(`unknown kind`, func(t *testing.T) {
		store := NewInstance(Config{Client: historyclientmock.New(), Kind: models.HistoryKindStatus})
		err := waitDone(t, store.SwitchKind(context.TODO(), "salary"))
		require.Equal(t, "неизвестный вид истории: salary", err.Error())
		require.Equal(t, models.HistoryKindStatus, store.Kind())
	})
}

func TestStoreMutations(t *testing.T) {
	t.Run(`create then fetch shows record`, func(t *testing.T) {
		client := historyclientmock.New()
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindAsset})
		updates, cancel := store.Subscribe()
		defer cancel()

		created, err := store.Create(context.TODO(), assetRecord("E1", "A1", models.AssetActionAllocated))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		state := store.Snapshot()
		require.Len(t, state.Records, 1)
		require.Equal(t, created.ID, state.Records[0].ID)
		require.Len(t, client.ListCalls(), 1)

		require.NoError(t, store.Reload(context.TODO()))
		require.Equal(t, created.ID, store.Snapshot().Records[0].ID)

		last := <-updates
		require.Len(t, last.Records, 1)
	})

	t.Run(`previous reference is chained by backend`, func(t *testing.T) {
		client := historyclientmock.New()
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindAsset, EmployeeScope: "E1"})
		_, err := store.Create(context.TODO(), assetRecord("E1", "A1", models.AssetActionAllocated))
		require.NoError(t, err)
		second, err := store.Create(context.TODO(), assetRecord("E1", "A2", models.ActionTransferred))
		require.NoError(t, err)
		require.Equal(t, "A1", second.Assignment.Previous.ID)
		for _, sent := range client.Created() {
			require.True(t, sent.Assignment.Previous.IsEmpty())
		}
		require.Len(t, store.Snapshot().Records, 2)
	})

	t.Run(`create waits reconcile delay`, func(t *testing.T) {
		client := historyclientmock.New()
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindAsset, ReconcileDelay: 20 * time.Millisecond})
		started := time.Now()
		_, err := store.Create(context.TODO(), assetRecord("E1", "A1", models.AssetActionAllocated))
		require.NoError(t, err)
		require.GreaterOrEqual(t, time.Since(started), 20*time.Millisecond)
		require.Len(t, client.ListCalls(), 1)
	})

	t.Run(`create failure keeps list`, func(t *testing.T) {
		client := historyclientmock.New()
		client.Seed(assetRecord("E1", "A1", models.AssetActionAllocated))
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindAsset})
		require.NoError(t, store.Fetch(context.TODO(), historyapimodels.Criteria{}))

		invalid := assetRecord("E1", "", models.AssetActionAllocated)
		_, err := store.Create(context.TODO(), invalid)
		require.Error(t, err)
		require.Equal(t, historyclient.ErrorKindInvalid, historyclient.AsError(err).Kind)
		require.Len(t, store.Snapshot().Records, 1)
	})

	t.Run(`update replaces in place`, func(t *testing.T) {
		client := historyclientmock.New()
		seeded := client.Seed(statusRecord("E1", models.EmployeeStatusRetired, "на пенсию"))
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindStatus})
		require.NoError(t, store.Fetch(context.TODO(), historyapimodels.Criteria{}))

		updated, err := store.Update(context.TODO(), seeded.ID, statusRecord("E1", models.EmployeeStatusRetired, "по выслуге лет"))
		require.NoError(t, err)
		require.Equal(t, seeded.ID, updated.ID)
		state := store.Snapshot()
		require.Len(t, state.Records, 1)
		require.Equal(t, "по выслуге лет", state.Records[0].Text())
	})

	t.Run(`delete is not resurrected`, func(t *testing.T) {
		client := historyclientmock.New()
		first := client.Seed(statusRecord("E1", models.EmployeeStatusRetired, "на пенсию"))
		client.Seed(statusRecord("E2", models.EmployeeStatusDismissed, "отстранен"))
		store := NewInstance(Config{Client: client, Kind: models.HistoryKindStatus})
		require.NoError(t, store.Fetch(context.TODO(), historyapimodels.Criteria{}))
		require.Len(t, store.Snapshot().Records, 2)

		release := client.Hold(models.HistoryKindStatus)
		removeDone := make(chan error, 1)
		go func() {
			removeDone <- store.Remove(context.TODO(), first.ID)
		}()
		require.Eventually(t, func() bool { return len(client.ListCalls()) == 2 }, time.Second, time.Millisecond)

		// повторный запрос еще не вернулся, запись уже убрана локально
		state := store.Snapshot()
		require.True(t, state.Loading)
		require.Len(t, state.Records, 1)
		require.NotEqual(t, first.ID, state.Records[0].ID)

		release()
		require.NoError(t, waitDone(t, removeDone))
		state = store.Snapshot()
		require.False(t, state.Loading)
		require.Len(t, state.Records, 1)
		require.NotEqual(t, first.ID, state.Records[0].ID)

		require.NoError(t, store.Reload(context.TODO()))
		require.Len(t, store.Snapshot().Records, 1)
	})
}
