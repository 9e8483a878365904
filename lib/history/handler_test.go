package historyhandler

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	assetstore "personnel-admin/lib/dicts/asset/store"
	employeestore "personnel-admin/lib/dicts/employee/store"
	stationstore "personnel-admin/lib/dicts/station/store"
	historyrender "personnel-admin/lib/history-console/render"
	historydbstore "personnel-admin/lib/history/store"
	"personnel-admin/models"
	apimodels "personnel-admin/models/api"
	historyapimodels "personnel-admin/models/api/history"
	dbmodels "personnel-admin/models/db"
)

type fakeHistoryStore struct {
	historydbstore.Provider
	records   map[string]historyapimodels.Record
	created   []historyapimodels.Record
	count     int64
	createErr error
}

func (f *fakeHistoryStore) Create(rec historyapimodels.Record, userID *string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	rec.ID = "h1"
	f.records[rec.ID] = rec
	f.created = append(f.created, rec)
	return rec.ID, nil
}

func (f *fakeHistoryStore) Update(id string, rec historyapimodels.Record) (bool, error) {
	old, ok := f.records[id]
	if !ok {
		return false, nil
	}
	rec.ID = id
	rec.Employee = old.Employee
	f.records[id] = rec
	return true, nil
}

func (f *fakeHistoryStore) Delete(kind models.HistoryKind, id string) (bool, error) {
	_, ok := f.records[id]
	delete(f.records, id)
	return ok, nil
}

func (f *fakeHistoryStore) GetByID(kind models.HistoryKind, id string) (*historyapimodels.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeHistoryStore) ListCount(kind models.HistoryKind, filter historyapimodels.HistoryFilter) (int64, error) {
	return f.count, nil
}

func (f *fakeHistoryStore) List(kind models.HistoryKind, filter historyapimodels.HistoryFilter) ([]historyapimodels.Record, error) {
	result := []historyapimodels.Record{}
	for _, rec := range f.records {
		result = append(result, rec)
	}
	return result, nil
}

type fakeEmployeeStore struct {
	employeestore.Provider
}

func (fakeEmployeeStore) GetByID(id string) (*dbmodels.Employee, error) {
	if id != "E1" {
		return nil, nil
	}
	return &dbmodels.Employee{BaseModel: dbmodels.BaseModel{ID: id}, FirstName: "Иван", LastName: "Петров"}, nil
}

type fakeAssetStore struct {
	assetstore.Provider
}

func (fakeAssetStore) GetByID(id string) (*dbmodels.Asset, error) {
	if id != "A1" {
		return nil, nil
	}
	return &dbmodels.Asset{BaseModel: dbmodels.BaseModel{ID: id}, Name: "Ноутбук"}, nil
}

type fakeStationStore struct {
	stationstore.Provider
}

func (fakeStationStore) GetByID(id string) (*dbmodels.Station, error) {
	return nil, nil
}

type fakeXls struct{}

func (fakeXls) ExportHistory(kind models.HistoryKind, rows []historyrender.Row) (*bytes.Buffer, error) {
	return bytes.NewBufferString("xlsx"), nil
}

type fakeFiles struct {
	uploaded []dbmodels.HistoryExport
}

func (f *fakeFiles) UploadExport(ctx context.Context, rec dbmodels.HistoryExport, body []byte) (dbmodels.HistoryExport, error) {
	rec.ObjectKey = "asset/key.xlsx"
	rec.Size = int64(len(body))
	f.uploaded = append(f.uploaded, rec)
	return rec, nil
}

func (f *fakeFiles) GetExport(ctx context.Context, key string) (*dbmodels.HistoryExport, []byte, error) {
	return nil, nil, nil
}

func (f *fakeFiles) RemoveExpired(ctx context.Context, before time.Time) (int, error) {
	return 0, nil
}

func newTestHandler() (impl, *fakeHistoryStore, *fakeFiles) {
	store := &fakeHistoryStore{records: map[string]historyapimodels.Record{}}
	files := &fakeFiles{}
	return impl{
		store:         store,
		employeeStore: fakeEmployeeStore{},
		assetStore:    fakeAssetStore{},
		stationStore:  fakeStationStore{},
		xls:           fakeXls{},
		files:         files,
	}, store, files
}

func TestHistoryHandlerCreate(t *testing.T) {
	t.Run(`asset record`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		view, hMsg, err := h.Create(models.HistoryKindAsset, Author{UserID: "U1", UserName: "Админ"}, &historyapimodels.AssetHistoryData{
			Employee:     "E1",
			Action:       "allocated",
			CurrentAsset: "A1",
			Remarks:      "выдан",
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "h1", view.(historyapimodels.AssetHistoryView).ID)
		require.Equal(t, "Админ", store.created[0].Author)
	})

	t.Run(`anonymous author`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		_, hMsg, err := h.Create(models.HistoryKindStatus, Author{}, &historyapimodels.StatusHistoryData{
			Employee:      "E1",
			CurrentStatus: "retired",
			Description:   "по выслуге лет",
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "Система", store.created[0].Author)
	})

	t.Run(`validation messages`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		_, hMsg, err := h.Create(models.HistoryKindAsset, Author{}, &historyapimodels.AssetHistoryData{
			Employee: "E1",
			Action:   "allocated",
			Remarks:  "выдан",
		})
		require.NoError(t, err)
		require.Equal(t, "не указан актив", hMsg)

		_, hMsg, err = h.Create(models.HistoryKindAsset, Author{}, &historyapimodels.AssetHistoryData{
			Employee:     "E2",
			Action:       "allocated",
			CurrentAsset: "A1",
			Remarks:      "выдан",
		})
		require.NoError(t, err)
		require.Equal(t, "сотрудник не найден", hMsg)

		_, hMsg, err = h.Create(models.HistoryKindStation, Author{}, &historyapimodels.StationHistoryData{
			Employee:       "E1",
			Action:         "assigned",
			CurrentStation: "S1",
			Remarks:        "назначен",
		})
		require.NoError(t, err)
		require.Equal(t, "место службы не найдено", hMsg)

		_, hMsg, err = h.Create(models.HistoryKindStatus, Author{}, &historyapimodels.AssetHistoryData{})
		require.NoError(t, err)
		require.Equal(t, "запись не соответствует виду истории status", hMsg)
		require.Empty(t, store.created)
	})
}

func TestHistoryHandlerBackdated(t *testing.T) {
	t.Run(`backdated record is a user message`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		store.createErr = historydbstore.ErrBackdated
		view, hMsg, err := h.Create(models.HistoryKindAsset, Author{}, &historyapimodels.AssetHistoryData{
			Employee:     "E1",
			Action:       "returned",
			CurrentAsset: "A1",
			Remarks:      "возврат",
			FromDate:     "2024-01-01",
		})
		require.NoError(t, err)
		require.Nil(t, view)
		require.Equal(t, "дата начала раньше начала последней записи сотрудника", hMsg)
	})
}

func TestHistoryHandlerMutations(t *testing.T) {
	t.Run(`update missing record`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		_, hMsg, err := h.Update(models.HistoryKindStatus, "h9", &historyapimodels.StatusHistoryData{
			CurrentStatus: "active",
			Description:   "восстановлен",
		})
		require.Empty(t, hMsg)
		require.True(t, apimodels.IsNotFound(err))
	})

	t.Run(`update keeps employee`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		store.records["h1"] = historyapimodels.NewStatusRecord("E1", historyapimodels.StatusChange{Current: models.EmployeeStatusActive, Description: "принят"})
		view, hMsg, err := h.Update(models.HistoryKindStatus, "h1", &historyapimodels.StatusHistoryData{
			CurrentStatus: "dismissed",
			Description:   "отстранен",
		})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		status := view.(historyapimodels.StatusHistoryView)
		require.Equal(t, "E1", status.Employee.ID)
		require.Equal(t, "dismissed", status.CurrentStatus)
	})

	t.Run(`delete`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		store.records["h1"] = historyapimodels.NewStatusRecord("E1", historyapimodels.StatusChange{Current: models.EmployeeStatusActive})
		require.NoError(t, h.Delete(models.HistoryKindStatus, "h1"))
		require.True(t, apimodels.IsNotFound(h.Delete(models.HistoryKindStatus, "h1")))
	})
}

func TestHistoryHandlerList(t *testing.T) {
	t.Run(`page after the end`, func(t *testing.T) {
		h, store, _ := newTestHandler()
		store.count = 5
		list, count, err := h.List(models.HistoryKindStatus, historyapimodels.HistoryFilter{
			Pagination: apimodels.Pagination{Page: 3, Limit: 10},
		})
		require.NoError(t, err)
		require.Equal(t, int64(5), count)
		require.Empty(t, list)
	})
}

func TestHistoryHandlerExport(t *testing.T) {
	t.Run(`xlsx archived`, func(t *testing.T) {
		h, store, files := newTestHandler()
		store.records["h1"] = historyapimodels.NewAssignmentRecord(models.HistoryKindAsset, "E1", historyapimodels.AssignmentChange{
			Action:  models.AssetActionAllocated,
			Current: historyapimodels.Ref{ID: "A1", Name: "Ноутбук"},
			Remarks: "выдан",
		})
		store.count = 1
		view, hMsg, err := h.Export(context.Background(), models.HistoryKindAsset, Author{UserName: "Админ"}, historyapimodels.ExportRequest{})
		require.NoError(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "asset/key.xlsx", view.Key)
		require.Equal(t, 1, view.RowCount)
		require.Equal(t, int64(4), view.Size)
		require.Equal(t, dbmodels.ExportFormatXlsx, files.uploaded[0].Format)
	})

	t.Run(`unknown format`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		_, hMsg, err := h.Export(context.Background(), models.HistoryKindAsset, Author{}, historyapimodels.ExportRequest{Format: "csv"})
		require.NoError(t, err)
		require.Equal(t, "неизвестный формат выгрузки: csv", hMsg)
	})

	t.Run(`missing export`, func(t *testing.T) {
		h, _, _ := newTestHandler()
		_, _, err := h.GetExport(context.Background(), "nope")
		require.True(t, apimodels.IsNotFound(err))
	})
}
