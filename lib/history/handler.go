package historyhandler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"personnel-admin/config"
	"personnel-admin/db"
	assetstore "personnel-admin/lib/dicts/asset/store"
	employeestore "personnel-admin/lib/dicts/employee/store"
	stationstore "personnel-admin/lib/dicts/station/store"
	pdfexport "personnel-admin/lib/export/pdf"
	xlsexport "personnel-admin/lib/export/xls"
	filestorage "personnel-admin/lib/file-storage"
	historyrender "personnel-admin/lib/history-console/render"
	historydbstore "personnel-admin/lib/history/store"
	initchecker "personnel-admin/lib/utils/init-checker"
	"personnel-admin/models"
	apimodels "personnel-admin/models/api"
	historyapimodels "personnel-admin/models/api/history"
	dbmodels "personnel-admin/models/db"
)

// Author автор изменения из токена
type Author struct {
	UserID   string
	UserName string
}

type Provider interface {
	List(kind models.HistoryKind, filter historyapimodels.HistoryFilter) ([]interface{}, int64, error)
	Get(kind models.HistoryKind, id string) (interface{}, error)
	Create(kind models.HistoryKind, author Author, data historyapimodels.Data) (view interface{}, hMsg string, err error)
	Update(kind models.HistoryKind, id string, data historyapimodels.Data) (view interface{}, hMsg string, err error)
	Delete(kind models.HistoryKind, id string) error
	Export(ctx context.Context, kind models.HistoryKind, author Author, request historyapimodels.ExportRequest) (view historyapimodels.ExportView, hMsg string, err error)
	GetExport(ctx context.Context, key string) (*dbmodels.HistoryExport, []byte, error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         historydbstore.NewInstance(db.DB),
		employeeStore: employeestore.NewInstance(db.DB),
		assetStore:    assetstore.NewInstance(db.DB),
		stationStore:  stationstore.NewInstance(db.DB),
		xls:           xlsexport.Instance,
		files:         filestorage.Instance,
		fontDir:       config.Conf.Export.FontDir,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"xls", instance.xls,
	)
	Instance = instance
}

type impl struct {
	store         historydbstore.Provider
	employeeStore employeestore.Provider
	assetStore    assetstore.Provider
	stationStore  stationstore.Provider
	xls           xlsexport.Provider
	files         filestorage.Provider
	fontDir       string
}

// размер страницы при выборке записей для выгрузки
const exportPageSize = apimodels.MaxPageLimit

func (i impl) List(kind models.HistoryKind, filter historyapimodels.HistoryFilter) ([]interface{}, int64, error) {
	rowCount, err := i.store.ListCount(kind, filter)
	if err != nil {
		return nil, 0, err
	}

	if int64(filter.GetOffset()) > rowCount {
		return []interface{}{}, rowCount, nil
	}

	list, err := i.store.List(kind, filter)
	if err != nil {
		log.WithError(err).WithField("kind", kind).Error("ошибка получения списка истории")
		return nil, 0, errors.New("ошибка получения списка истории")
	}
	result, err := historyapimodels.EncodeViews(list)
	if err != nil {
		return nil, 0, err
	}
	return result, rowCount, nil
}

func (i impl) Get(kind models.HistoryKind, id string) (interface{}, error) {
	rec, err := i.store.GetByID(kind, id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения записи истории")
	}
	if rec == nil {
		return nil, apimodels.NewNotFoundError("запись истории не найдена")
	}
	return historyapimodels.EncodeView(*rec)
}

func (i impl) Create(kind models.HistoryKind, author Author, data historyapimodels.Data) (view interface{}, hMsg string, err error) {
	rec := data.ToRecord()
	if rec.Kind != kind {
		return nil, fmt.Sprintf("запись не соответствует виду истории %v", kind), nil
	}
	if err = rec.Validate(); err != nil {
		return nil, err.Error(), nil
	}
	logger := log.WithField("kind", kind).
		WithField("employee_id", rec.Employee.ID).
		WithField("user_id", author.UserID)

	employee, err := i.employeeStore.GetByID(rec.Employee.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "ошибка получения сотрудника")
	}
	if employee == nil {
		return nil, "сотрудник не найден", nil
	}
	hMsg, err = i.checkReference(rec)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}

	authorModel := dbmodels.NewAuthorModel(author.UserID, author.UserName)
	rec.Author = authorModel.UserName
	id, err := i.store.Create(rec, authorModel.UserID)
	if errors.Is(err, historydbstore.ErrBackdated) {
		return nil, err.Error(), nil
	}
	if err != nil {
		logger.WithError(err).Error("ошибка создания записи истории")
		return nil, "", errors.New("ошибка создания записи истории")
	}
	logger.WithField("rec_id", id).Info("создана запись истории")
	view, err = i.Get(kind, id)
	return view, "", err
}

func (i impl) Update(kind models.HistoryKind, id string, data historyapimodels.Data) (view interface{}, hMsg string, err error) {
	rec := data.ToRecord()
	if rec.Kind != kind {
		return nil, fmt.Sprintf("запись не соответствует виду истории %v", kind), nil
	}
	if err = rec.ValidateChange(); err != nil {
		return nil, err.Error(), nil
	}
	hMsg, err = i.checkReference(rec)
	if err != nil || hMsg != "" {
		return nil, hMsg, err
	}
	found, err := i.store.Update(id, rec)
	if err != nil {
		log.WithError(err).WithField("kind", kind).WithField("rec_id", id).Error("ошибка изменения записи истории")
		return nil, "", errors.New("ошибка изменения записи истории")
	}
	if !found {
		return nil, "", apimodels.NewNotFoundError("запись истории не найдена")
	}
	log.WithField("kind", kind).WithField("rec_id", id).Info("изменена запись истории")
	view, err = i.Get(kind, id)
	return view, "", err
}

func (i impl) Delete(kind models.HistoryKind, id string) error {
	found, err := i.store.Delete(kind, id)
	if err != nil {
		log.WithError(err).WithField("kind", kind).WithField("rec_id", id).Error("ошибка удаления записи истории")
		return errors.New("ошибка удаления записи истории")
	}
	if !found {
		return apimodels.NewNotFoundError("запись истории не найдена")
	}
	log.WithField("kind", kind).WithField("rec_id", id).Info("удалена запись истории")
	return nil
}

// checkReference текущий актив/место службы должны быть в справочнике
func (i impl) checkReference(rec historyapimodels.Record) (hMsg string, err error) {
	if rec.Assignment == nil {
		return "", nil
	}
	refID := rec.Assignment.Current.ID
	switch rec.Kind {
	case models.HistoryKindAsset:
		asset, err := i.assetStore.GetByID(refID)
		if err != nil {
			return "", errors.Wrap(err, "ошибка получения актива")
		}
		if asset == nil {
			return "актив не найден", nil
		}
	case models.HistoryKindStation:
		station, err := i.stationStore.GetByID(refID)
		if err != nil {
			return "", errors.Wrap(err, "ошибка получения места службы")
		}
		if station == nil {
			return "место службы не найдено", nil
		}
	}
	return "", nil
}

func (i impl) Export(ctx context.Context, kind models.HistoryKind, author Author, request historyapimodels.ExportRequest) (view historyapimodels.ExportView, hMsg string, err error) {
	format := dbmodels.ExportFormat(request.Format)
	if format == "" {
		format = dbmodels.ExportFormatXlsx
	}
	if !format.IsValid() {
		return historyapimodels.ExportView{}, fmt.Sprintf("неизвестный формат выгрузки: %v", request.Format), nil
	}
	if i.files == nil {
		return historyapimodels.ExportView{}, "", errors.New("архив выгрузок недоступен")
	}
	records, err := i.exportRecords(kind, request.HistoryFilter)
	if err != nil {
		return historyapimodels.ExportView{}, "", err
	}
	rows := historyrender.Rows(kind, records)

	var body []byte
	switch format {
	case dbmodels.ExportFormatPdf:
		body, err = pdfexport.HistoryReport(kind, rows, i.fontDir)
	default:
		buf, xlsErr := i.xls.ExportHistory(kind, rows)
		if xlsErr == nil {
			body = buf.Bytes()
		}
		err = xlsErr
	}
	if err != nil {
		log.WithError(err).WithField("kind", kind).WithField("format", format).Error("ошибка формирования выгрузки истории")
		return historyapimodels.ExportView{}, "", errors.New("ошибка формирования выгрузки истории")
	}

	rec := dbmodels.HistoryExport{
		Kind:        kind,
		Name:        exportName(kind, format, time.Now()),
		Format:      format,
		RowCount:    len(rows),
		AuthorModel: dbmodels.NewAuthorModel(author.UserID, author.UserName),
	}
	rec, err = i.files.UploadExport(ctx, rec, body)
	if err != nil {
		return historyapimodels.ExportView{}, "", err
	}
	log.WithField("kind", kind).
		WithField("object_key", rec.ObjectKey).
		WithField("row_count", rec.RowCount).
		Info("сохранена выгрузка истории")
	return exportView(rec), "", nil
}

func (i impl) GetExport(ctx context.Context, key string) (*dbmodels.HistoryExport, []byte, error) {
	if i.files == nil {
		return nil, nil, errors.New("архив выгрузок недоступен")
	}
	rec, body, err := i.files.GetExport(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, apimodels.NewNotFoundError("выгрузка не найдена")
	}
	return rec, body, nil
}

// exportRecords все записи по фильтру, постранично
func (i impl) exportRecords(kind models.HistoryKind, filter historyapimodels.HistoryFilter) ([]historyapimodels.Record, error) {
	rowCount, err := i.store.ListCount(kind, filter)
	if err != nil {
		return nil, err
	}
	result := make([]historyapimodels.Record, 0, rowCount)
	filter.Limit = exportPageSize
	for page := 1; int64((page-1)*exportPageSize) < rowCount; page++ {
		filter.Page = page
		list, err := i.store.List(kind, filter)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения записей для выгрузки")
		}
		result = append(result, list...)
		if len(list) < exportPageSize {
			break
		}
	}
	return result, nil
}

func exportName(kind models.HistoryKind, format dbmodels.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s-history-%s.%s", kind, now.Format("20060102-150405"), format)
}

func exportView(rec dbmodels.HistoryExport) historyapimodels.ExportView {
	return historyapimodels.ExportView{
		Key:         rec.ObjectKey,
		Name:        rec.Name,
		Format:      string(rec.Format),
		ContentType: rec.ContentType,
		Size:        rec.Size,
		RowCount:    rec.RowCount,
		CreatedBy:   rec.UserName,
	}
}
