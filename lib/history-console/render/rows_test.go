package historyrender

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"personnel-admin/models"
	historyapimodels "personnel-admin/models/api/history"
)

func TestRows(t *testing.T) {
	t.Run(`transfer shows both sides`, func(t *testing.T) {
		rec := historyapimodels.NewAssignmentRecord(models.HistoryKindStation, "E1", historyapimodels.AssignmentChange{
			Action:   models.ActionTransferred,
			Current:  historyapimodels.Ref{ID: "S2", Name: "Пост 2"},
			Previous: historyapimodels.Ref{ID: "S1", Name: "Пост 1"},
			Remarks:  "перевод",
		})
		row := NewRow(rec)
		require.Equal(t, "Пост 1 → Пост 2", row.Change)
		require.Equal(t, BadgePurple, row.Color)
		require.Equal(t, "Переведен", row.Badge)
		require.Equal(t, "перевод", row.Note)
	})

	t.Run(`transfer with one side`, func(t *testing.T) {
		rec := historyapimodels.NewAssignmentRecord(models.HistoryKindAsset, "E1", historyapimodels.AssignmentChange{
			Action:   models.ActionTransferred,
			Previous: historyapimodels.Ref{ID: "A1", Name: "Ноутбук"},
		})
		require.Equal(t, "Ноутбук", ChangeLabel(rec))
	})

	t.Run(`non transfer shows current`, func(t *testing.T) {
		rec := historyapimodels.NewAssignmentRecord(models.HistoryKindAsset, "E1", historyapimodels.AssignmentChange{
			Action:   models.AssetActionReturned,
			Current:  historyapimodels.Ref{ID: "A2", Name: "Рация"},
			Previous: historyapimodels.Ref{ID: "A1", Name: "Ноутбук"},
		})
		require.Equal(t, "Рация", ChangeLabel(rec))
		require.Equal(t, BadgeBlue, NewRow(rec).Color)
	})

	t.Run(`status transition`, func(t *testing.T) {
		rec := historyapimodels.NewStatusRecord("E1", historyapimodels.StatusChange{
			Current:  models.EmployeeStatusRetired,
			Previous: models.EmployeeStatusActive,
		})
		require.Equal(t, "Работает → На пенсии", ChangeLabel(rec))

		rec.Status.Previous = ""
		require.Equal(t, "На пенсии", ChangeLabel(rec))
		require.Equal(t, BadgeBlue, NewRow(rec).Color)
	})

	t.Run(`unknown value is gray`, func(t *testing.T) {
		require.Equal(t, BadgeGray, BadgeColorOf("archived"))
	})

	t.Run(`bare id and populated refs`, func(t *testing.T) {
		raw := json.RawMessage(`{"_id":"h1","employee":"E1","action":"transferred","currentStation":{"_id":"S2","name":"Пост 2"},"lastStation":"S1","remarks":"x"}`)
		rec, err := historyapimodels.DecodeRecord(models.HistoryKindStation, raw)
		require.NoError(t, err)
		row := NewRow(rec)
		require.Equal(t, "E1", row.Employee)
		require.Equal(t, "S1 → Пост 2", row.Change)
	})

	t.Run(`rows skip other kinds`, func(t *testing.T) {
		records := []historyapimodels.Record{
			historyapimodels.NewStatusRecord("E1", historyapimodels.StatusChange{Current: models.EmployeeStatusActive}),
			historyapimodels.NewAssignmentRecord(models.HistoryKindAsset, "E1", historyapimodels.AssignmentChange{Action: models.AssetActionAllocated}),
		}
		require.Len(t, Rows(models.HistoryKindAsset, records), 1)
	})
}

func TestTable(t *testing.T) {
	t.Run(`table output`, func(t *testing.T) {
		rec := historyapimodels.NewStatusRecord("E1", historyapimodels.StatusChange{
			Current:     models.EmployeeStatusRetired,
			Previous:    models.EmployeeStatusActive,
			Description: "по выслуге лет",
		})
		rec.Employee = historyapimodels.Ref{ID: "E1", FirstName: "Иван", LastName: "Петров"}
		rec.FromDate = "2024-05-01"
		buf := bytes.Buffer{}
		require.NoError(t, Table(&buf, models.HistoryKindStatus, Rows(models.HistoryKindStatus, []historyapimodels.Record{rec})))
		out := buf.String()
		require.Contains(t, out, "История статусов")
		require.Contains(t, out, "Описание")
		require.Contains(t, out, "Петров Иван")
		require.Contains(t, out, "Работает → На пенсии")
		require.Contains(t, out, "2024-05-01")
	})

	t.Run(`empty table`, func(t *testing.T) {
		buf := bytes.Buffer{}
		require.NoError(t, Table(&buf, models.HistoryKindAsset, nil))
		require.Contains(t, buf.String(), "нет записей")
	})
}
