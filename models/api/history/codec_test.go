package historyapimodels

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"personnel-admin/models"
)

func TestCodec(t *testing.T) {
	t.Run(`asset payload without previous reference`, func(t *testing.T) {
		rec := NewAssignmentRecord(models.HistoryKindAsset, "E1", AssignmentChange{
			Action:   models.AssetActionAllocated,
			Current:  Ref{ID: "A1"},
			Previous: Ref{ID: "A0"},
			Remarks:  "выдан ноутбук",
		})
		payload, err := EncodePayload(rec, false)
		require.Nil(t, err)
		body, err := json.Marshal(payload)
		require.Nil(t, err)

		fields := map[string]interface{}{}
		require.Nil(t, json.Unmarshal(body, &fields))
		require.Equal(t, "E1", fields["employee"])
		require.Equal(t, "A1", fields["currentAsset"])
		require.Equal(t, "allocated", fields["action"])
		require.NotContains(t, fields, "lastAsset")
		require.NotContains(t, fields, "previousAssetRef")
	})

	t.Run(`station update payload skips employee`, func(t *testing.T) {
		rec := NewAssignmentRecord(models.HistoryKindStation, "E1", AssignmentChange{
			Action:  models.ActionTransferred,
			Current: Ref{ID: "S2"},
			Remarks: "перевод",
		})
		payload, err := EncodePayload(rec, true)
		require.Nil(t, err)
		body, err := json.Marshal(payload)
		require.Nil(t, err)

		fields := map[string]interface{}{}
		require.Nil(t, json.Unmarshal(body, &fields))
		require.NotContains(t, fields, "employee")
		require.NotContains(t, fields, "lastStation")
		require.Equal(t, "S2", fields["currentStation"])
	})

	t.Run(`status payload uses description`, func(t *testing.T) {
		rec := NewStatusRecord("E1", StatusChange{
			Current:     models.EmployeeStatusRetired,
			Previous:    models.EmployeeStatusActive,
			Description: "выход на пенсию",
		})
		payload, err := EncodePayload(rec, false)
		require.Nil(t, err)
		data, ok := payload.(StatusHistoryData)
		require.True(t, ok)
		require.Equal(t, "retired", data.CurrentStatus)
		require.Equal(t, "active", data.LastStatus)
		require.Equal(t, "выход на пенсию", data.Description)
	})

	t.Run(`decode populated and bare references`, func(t *testing.T) {
		raw := json.RawMessage(`{
			"_id": "h1",
			"employee": {"_id": "E1", "firstName": "Анна", "lastName": "Иванова", "personalNumber": "1024"},
			"action": "transferred",
			"currentAsset": "A2",
			"lastAsset": {"_id": "A1", "name": "Ноутбук"},
			"remarks": "передан"
		}`)
		rec, err := DecodeRecord(models.HistoryKindAsset, raw)
		require.Nil(t, err)
		require.Equal(t, "h1", rec.ID)
		require.Equal(t, "Иванова Анна", rec.Employee.Label())
		require.Equal(t, "A2", rec.Assignment.Current.ID)
		require.Equal(t, "A2", rec.Assignment.Current.Label())
		require.Equal(t, "Ноутбук", rec.Assignment.Previous.Label())
		require.Equal(t, "transferred", rec.Value())
		require.Equal(t, "передан", rec.Text())
	})

	t.Run(`view round trip keeps kind field names`, func(t *testing.T) {
		rec := NewAssignmentRecord(models.HistoryKindStation, "E1", AssignmentChange{
			Action:  models.StationActionAssigned,
			Current: Ref{ID: "S1", Name: "Пост 1"},
			Remarks: "назначен",
		})
		rec.ID = "h2"
		view, err := EncodeView(rec)
		require.Nil(t, err)
		body, err := json.Marshal(view)
		require.Nil(t, err)
		require.Contains(t, string(body), `"currentStation"`)
		require.NotContains(t, string(body), `"lastStation"`)

		decoded, err := DecodeRecord(models.HistoryKindStation, body)
		require.Nil(t, err)
		require.Equal(t, "Пост 1", decoded.Assignment.Current.Label())
		require.True(t, decoded.Assignment.Previous.IsEmpty())
	})
}

func TestRecordValidate(t *testing.T) {
	t.Run(`employee required`, func(t *testing.T) {
		rec := NewStatusRecord("", StatusChange{Current: models.EmployeeStatusActive, Description: "x"})
		require.EqualError(t, rec.Validate(), "не указан сотрудник")
	})

	t.Run(`action must belong to kind`, func(t *testing.T) {
		rec := NewAssignmentRecord(models.HistoryKindAsset, "E1", AssignmentChange{
			Action:  models.StationActionAssigned,
			Current: Ref{ID: "A1"},
			Remarks: "x",
		})
		require.NotNil(t, rec.Validate())
	})

	t.Run(`dates order`, func(t *testing.T) {
		rec := NewStatusRecord("E1", StatusChange{Current: models.EmployeeStatusActive, Description: "x"})
		rec.FromDate = "2024-05-01"
		rec.ToDate = "2024-04-01"
		require.EqualError(t, rec.Validate(), "дата окончания раньше даты начала")
		rec.ToDate = "2024-06-01"
		require.Nil(t, rec.Validate())
	})
}
