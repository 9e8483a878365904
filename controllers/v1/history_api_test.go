package apiv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"personnel-admin/config"
	historyhandler "personnel-admin/lib/history"
	"personnel-admin/lib/rbac"
	authutils "personnel-admin/lib/utils/auth-utils"
	"personnel-admin/middleware"
	"personnel-admin/models"
	apimodels "personnel-admin/models/api"
	historyapimodels "personnel-admin/models/api/history"
	dbmodels "personnel-admin/models/db"
)

type fakeHistoryHandler struct {
	historyhandler.Provider
	kind    models.HistoryKind
	filter  historyapimodels.HistoryFilter
	author  historyhandler.Author
	created historyapimodels.Data
	export  historyapimodels.ExportRequest
}

func (f *fakeHistoryHandler) List(kind models.HistoryKind, filter historyapimodels.HistoryFilter) ([]interface{}, int64, error) {
	f.kind = kind
	f.filter = filter
	return []interface{}{historyapimodels.StatusHistoryView{ID: "h1"}}, 1, nil
}

func (f *fakeHistoryHandler) Get(kind models.HistoryKind, id string) (interface{}, error) {
	return nil, apimodels.NewNotFoundError("запись истории не найдена")
}

func (f *fakeHistoryHandler) Create(kind models.HistoryKind, author historyhandler.Author, data historyapimodels.Data) (interface{}, string, error) {
	f.kind = kind
	f.author = author
	f.created = data
	rec := data.ToRecord()
	if rec.Employee.ID == "" {
		return nil, "не указан сотрудник", nil
	}
	return historyapimodels.AssetHistoryView{ID: "h2"}, "", nil
}

func (f *fakeHistoryHandler) Export(ctx context.Context, kind models.HistoryKind, author historyhandler.Author, request historyapimodels.ExportRequest) (historyapimodels.ExportView, string, error) {
	f.export = request
	return historyapimodels.ExportView{Key: "station/2024-05-01/x.pdf", Format: request.Format}, "", nil
}

func (f *fakeHistoryHandler) GetExport(ctx context.Context, key string) (*dbmodels.HistoryExport, []byte, error) {
	if key != "asset/2024-05-01/x.xlsx" {
		return nil, nil, apimodels.NewNotFoundError("выгрузка не найдена")
	}
	return &dbmodels.HistoryExport{Name: "asset.xlsx", ContentType: dbmodels.ExportFormatXlsx.ContentType()}, []byte("data"), nil
}

func newHistoryApp(fake *fakeHistoryHandler) *fiber.App {
	historyhandler.Instance = fake
	app := fiber.New()
	InitHistoryApiRouters(app)
	return app
}

func readResponse(t *testing.T, resp *http.Response) apimodels.Response {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	result := apimodels.Response{}
	require.NoError(t, json.Unmarshal(body, &result))
	return result
}

func TestHistoryApi(t *testing.T) {
	t.Run(`list passes kind filters`, func(t *testing.T) {
		fake := &fakeHistoryHandler{}
		app := newHistoryApp(fake)
		req := httptest.NewRequest(fiber.MethodGet, "/asset-history?employee=E1&action=allocated&remarks=ноут&page=2", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, models.HistoryKindAsset, fake.kind)
		require.Equal(t, "E1", fake.filter.Employee)
		require.Equal(t, "allocated", fake.filter.Action)
		require.Equal(t, 2, fake.filter.Page)
	})

	t.Run(`create with handler message`, func(t *testing.T) {
		fake := &fakeHistoryHandler{}
		app := newHistoryApp(fake)
		req := httptest.NewRequest(fiber.MethodPost, "/asset-history", strings.NewReader(`{"action":"allocated"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "не указан сотрудник", readResponse(t, resp).Message)
	})

	t.Run(`create decodes kind payload`, func(t *testing.T) {
		fake := &fakeHistoryHandler{}
		app := newHistoryApp(fake)
		req := httptest.NewRequest(fiber.MethodPost, "/station-history", strings.NewReader(`{"employee":"E1","action":"assigned","currentStation":"S1"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, models.HistoryKindStation, fake.kind)
		require.IsType(t, &historyapimodels.StationHistoryData{}, fake.created)
	})

	t.Run(`missing record is 404`, func(t *testing.T) {
		app := newHistoryApp(&fakeHistoryHandler{})
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/status-history/h9", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		require.Equal(t, "запись истории не найдена", readResponse(t, resp).Message)
	})

	t.Run(`export route is not an id`, func(t *testing.T) {
		fake := &fakeHistoryHandler{}
		app := newHistoryApp(fake)
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/station-history/export?format=pdf&employee=E1", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, "pdf", fake.export.Format)
		require.Equal(t, "E1", fake.export.Employee)
	})

	t.Run(`download export by key`, func(t *testing.T) {
		app := newHistoryApp(&fakeHistoryHandler{})
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/history-export/asset/2024-05-01/x.xlsx", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "asset.xlsx")
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "data", string(body))

		resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/history-export/other.xlsx", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestHistoryApiAccess(t *testing.T) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "secret"
	rbac.NewHandler()
	historyhandler.Instance = &fakeHistoryHandler{}

	app := fiber.New()
	apiV1 := fiber.New()
	app.Mount("/api/v1", apiV1)
	apiV1.Use(middleware.AuthorizationRequired())
	apiV1.Use(middleware.RbacMiddleware())
	InitHistoryApiRouters(apiV1)

	request := func(method, path string, role models.UserRole) *http.Response {
		req := httptest.NewRequest(method, path, strings.NewReader(`{"employee":"E1"}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		if role != "" {
			token, err := authutils.GetToken("secret", time.Hour, "u1", "Иванов", role)
			require.NoError(t, err)
			req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run(`no token`, func(t *testing.T) {
		resp := request(fiber.MethodGet, "/api/v1/status-history", "")
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run(`viewer reads`, func(t *testing.T) {
		resp := request(fiber.MethodGet, "/api/v1/status-history", models.ViewerRole)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`viewer cannot create`, func(t *testing.T) {
		resp := request(fiber.MethodPost, "/api/v1/asset-history", models.ViewerRole)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run(`hr creates with author from token`, func(t *testing.T) {
		fake := &fakeHistoryHandler{}
		historyhandler.Instance = fake
		resp := request(fiber.MethodPost, "/api/v1/asset-history", models.HRRole)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, historyhandler.Author{UserID: "u1", UserName: "Иванов"}, fake.author)
	})
}
