package historyapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
	"personnel-admin/models"
)

func TestEnvelope(t *testing.T) {
	t.Run(`bare array`, func(t *testing.T) {
		list, err := ParseListEnvelope([]byte(` [{"_id":"1"},{"_id":"2"}]`))
		require.Nil(t, err)
		require.Len(t, list, 2)
	})

	t.Run(`history has priority over data`, func(t *testing.T) {
		list, err := ParseListEnvelope([]byte(`{"data":[{"_id":"1"}],"history":[{"_id":"2"},{"_id":"3"}]}`))
		require.Nil(t, err)
		require.Len(t, list, 2)
	})

	t.Run(`data envelope`, func(t *testing.T) {
		list, err := ParseListEnvelope([]byte(`{"status":"success","data":[{"_id":"1"}],"row_count":1}`))
		require.Nil(t, err)
		require.Len(t, list, 1)
	})

	t.Run(`null list is empty`, func(t *testing.T) {
		list, err := ParseListEnvelope([]byte(`{"status":"success","data":null}`))
		require.Nil(t, err)
		require.Len(t, list, 0)
	})

	t.Run(`malformed shapes`, func(t *testing.T) {
		for _, body := range []string{``, `"text"`, `{"data":{"_id":"1"}}`, `{"items":[]}`, `[1,`} {
			_, err := ParseListEnvelope([]byte(body))
			require.ErrorIs(t, err, ErrMalformedEnvelope, body)
		}
	})

	t.Run(`object envelope`, func(t *testing.T) {
		raw, err := ParseObjectEnvelope([]byte(`{"status":"success","data":{"_id":"1"}}`))
		require.Nil(t, err)
		require.JSONEq(t, `{"_id":"1"}`, string(raw))

		raw, err = ParseObjectEnvelope([]byte(`{"_id":"2","remarks":"x"}`))
		require.Nil(t, err)
		require.JSONEq(t, `{"_id":"2","remarks":"x"}`, string(raw))

		_, err = ParseObjectEnvelope([]byte(`{"status":"success"}`))
		require.ErrorIs(t, err, ErrMalformedEnvelope)
	})

	t.Run(`error message`, func(t *testing.T) {
		require.Equal(t, "запись не найдена", ParseErrorMessage([]byte(`{"status":"fail","message":"запись не найдена"}`)))
		require.Equal(t, "RBAC_FORBIDDEN", ParseErrorMessage([]byte(`{"error":"RBAC_FORBIDDEN"}`)))
		require.Equal(t, "", ParseErrorMessage([]byte(`<html>`)))
	})
}

func TestCriteriaQuery(t *testing.T) {
	t.Run(`empty criteria sends nothing`, func(t *testing.T) {
		for _, kind := range models.HistoryKinds {
			query := Criteria{Employee: " ", TextSearch: ""}.Query(kind)
			require.Len(t, query, 0)
		}
	})

	t.Run(`field names follow kind`, func(t *testing.T) {
		c := Criteria{Employee: "E1", StatusOrAction: "retired", TextSearch: "пенсия", Page: 2}
		query := c.Query(models.HistoryKindStatus)
		require.Equal(t, "E1", query.Get("employee"))
		require.Equal(t, "retired", query.Get("status"))
		require.Equal(t, "пенсия", query.Get("description"))
		require.Equal(t, "2", query.Get("page"))
		require.NotContains(t, query, "remarks")
		require.NotContains(t, query, "limit")

		c = Criteria{StatusOrAction: "allocated", TextSearch: "ноутбук"}
		query = c.Query(models.HistoryKindAsset)
		require.Equal(t, "allocated", query.Get("action"))
		require.Equal(t, "ноутбук", query.Get("remarks"))
		require.NotContains(t, query, "status")
		require.NotContains(t, query, "description")
	})

	t.Run(`every sent key has a value`, func(t *testing.T) {
		c := Criteria{Employee: "E1", StatusOrAction: "", TextSearch: "  "}
		for _, kind := range models.HistoryKinds {
			for key, values := range c.Query(kind) {
				require.NotEmpty(t, values, key)
				require.NotEqual(t, "", values[0], key)
			}
		}
	})
}
