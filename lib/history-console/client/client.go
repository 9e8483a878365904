package historyclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"personnel-admin/models"
	dictapimodels "personnel-admin/models/api/dict"
	historyapimodels "personnel-admin/models/api/history"
)

type Provider interface {
	List(ctx context.Context, kind models.HistoryKind, criteria historyapimodels.Criteria) ([]historyapimodels.Record, error)
	Create(ctx context.Context, rec historyapimodels.Record) (historyapimodels.Record, error)
	Update(ctx context.Context, id string, rec historyapimodels.Record) (historyapimodels.Record, error)
	Delete(ctx context.Context, kind models.HistoryKind, id string) error

	GetEmployee(ctx context.Context, id string) (dictapimodels.EmployeeView, error)
	ListEmployees(ctx context.Context, search string) ([]dictapimodels.EmployeeView, error)
	ListAssets(ctx context.Context) ([]dictapimodels.AssetView, error)
	ListStations(ctx context.Context) ([]dictapimodels.StationView, error)
}

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Credentials CredentialProvider
	HTTPClient  *http.Client
}

func NewInstance(cfg Config) Provider {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	credentials := cfg.Credentials
	if credentials == nil {
		credentials = StaticToken("")
	}
	return &impl{
		host:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  httpClient,
		credentials: credentials,
	}
}

type impl struct {
	host        string
	httpClient  *http.Client
	credentials CredentialProvider
}

const (
	historyPath   string = "%s/%s"
	historyIDPath string = "%s/%s/%s"
	employeesPath string = "%s/employees"
	employeePath  string = "%s/employees/%s"
	assetsPath    string = "%s/assets"
	stationsPath  string = "%s/stations"
	userAgent     string = "PersonnelAdmin/1.0"
)

func (i impl) List(ctx context.Context, kind models.HistoryKind, criteria historyapimodels.Criteria) ([]historyapimodels.Record, error) {
	uri := fmt.Sprintf(historyPath, i.host, kind.Spec().Resource)
	if query := criteria.Query(kind); len(query) != 0 {
		uri = uri + "?" + query.Encode()
	}
	body, err := i.sendRequest(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	rawList, err := historyapimodels.ParseListEnvelope(body)
	if err != nil {
		return nil, newShapeError(err)
	}
	result := make([]historyapimodels.Record, 0, len(rawList))
	for _, raw := range rawList {
		rec, err := historyapimodels.DecodeRecord(kind, raw)
		if err != nil {
			return nil, newShapeError(err)
		}
		result = append(result, rec)
	}
	return result, nil
}

func (i impl) Create(ctx context.Context, rec historyapimodels.Record) (historyapimodels.Record, error) {
	payload, err := historyapimodels.EncodePayload(rec, false)
	if err != nil {
		return historyapimodels.Record{}, NewInvalidError(err)
	}
	uri := fmt.Sprintf(historyPath, i.host, rec.Kind.Spec().Resource)
	body, err := i.sendRequest(ctx, http.MethodPost, uri, payload)
	if err != nil {
		return historyapimodels.Record{}, err
	}
	return decodeObject(rec.Kind, body)
}

func (i impl) Update(ctx context.Context, id string, rec historyapimodels.Record) (historyapimodels.Record, error) {
	payload, err := historyapimodels.EncodePayload(rec, true)
	if err != nil {
		return historyapimodels.Record{}, NewInvalidError(err)
	}
	uri := fmt.Sprintf(historyIDPath, i.host, rec.Kind.Spec().Resource, url.PathEscape(id))
	body, err := i.sendRequest(ctx, http.MethodPut, uri, payload)
	if err != nil {
		return historyapimodels.Record{}, err
	}
	return decodeObject(rec.Kind, body)
}

func (i impl) Delete(ctx context.Context, kind models.HistoryKind, id string) error {
	uri := fmt.Sprintf(historyIDPath, i.host, kind.Spec().Resource, url.PathEscape(id))
	_, err := i.sendRequest(ctx, http.MethodDelete, uri, nil)
	return err
}

func (i impl) GetEmployee(ctx context.Context, id string) (dictapimodels.EmployeeView, error) {
	uri := fmt.Sprintf(employeePath, i.host, url.PathEscape(id))
	body, err := i.sendRequest(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return dictapimodels.EmployeeView{}, err
	}
	raw, err := historyapimodels.ParseObjectEnvelope(body)
	if err != nil {
		return dictapimodels.EmployeeView{}, newShapeError(err)
	}
	view := dictapimodels.EmployeeView{}
	if err = json.Unmarshal(raw, &view); err != nil {
		return dictapimodels.EmployeeView{}, newShapeError(err)
	}
	return view, nil
}

func (i impl) ListEmployees(ctx context.Context, search string) ([]dictapimodels.EmployeeView, error) {
	uri := fmt.Sprintf(employeesPath, i.host)
	if search = strings.TrimSpace(search); search != "" {
		uri = uri + "?" + url.Values{"search": []string{search}}.Encode()
	}
	list := []dictapimodels.EmployeeView{}
	err := i.getList(ctx, uri, &list)
	return list, err
}

func (i impl) ListAssets(ctx context.Context) ([]dictapimodels.AssetView, error) {
	list := []dictapimodels.AssetView{}
	err := i.getList(ctx, fmt.Sprintf(assetsPath, i.host), &list)
	return list, err
}

func (i impl) ListStations(ctx context.Context) ([]dictapimodels.StationView, error) {
	list := []dictapimodels.StationView{}
	err := i.getList(ctx, fmt.Sprintf(stationsPath, i.host), &list)
	return list, err
}

func (i impl) getList(ctx context.Context, uri string, out interface{}) error {
	body, err := i.sendRequest(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return err
	}
	rawList, err := historyapimodels.ParseListEnvelope(body)
	if err != nil {
		return newShapeError(err)
	}
	listBody, err := json.Marshal(rawList)
	if err != nil {
		return newShapeError(err)
	}
	if err = json.Unmarshal(listBody, out); err != nil {
		return newShapeError(err)
	}
	return nil
}

func (i impl) sendRequest(ctx context.Context, method, uri string, payload interface{}) ([]byte, error) {
	logger := log.
		WithField("external_request", uri).
		WithField("method", method)

	var reqBody io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, NewInvalidError(errors.Wrap(err, "ошибка формирования запроса"))
		}
		logger = logger.WithField("request_body", string(body))
		reqBody = bytes.NewReader(body)
	}
	r, err := http.NewRequestWithContext(ctx, method, uri, reqBody)
	if err != nil {
		return nil, newTransportError(err)
	}
	r.Header.Set("User-Agent", userAgent)
	r.Header.Set("Accept", "application/json")
	r.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	token, err := i.credentials.Token(ctx)
	if err != nil {
		logger.WithError(err).Warn("не удалось получить токен, запрос без авторизации")
	}
	if token != "" {
		r.Header.Set("Authorization", fmt.Sprintf("Bearer %v", token))
	}

	response, err := i.httpClient.Do(r)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки запроса")
		return nil, newTransportError(err)
	}
	defer response.Body.Close()
	responseBody, err := io.ReadAll(response.Body)
	logger = logger.WithField("response_status_code", response.StatusCode)
	if err != nil {
		logger.WithError(err).Error("ошибка чтения ответа")
		return nil, newTransportError(err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		logger.WithField("response_body", string(responseBody)).Warn("сервер вернул ошибку")
		return nil, newServerError(response.StatusCode, historyapimodels.ParseErrorMessage(responseBody))
	}
	logger.Debug("запрос выполнен")
	return responseBody, nil
}

func decodeObject(kind models.HistoryKind, body []byte) (historyapimodels.Record, error) {
	raw, err := historyapimodels.ParseObjectEnvelope(body)
	if err != nil {
		return historyapimodels.Record{}, newShapeError(err)
	}
	rec, err := historyapimodels.DecodeRecord(kind, raw)
	if err != nil {
		return historyapimodels.Record{}, newShapeError(err)
	}
	return rec, nil
}
