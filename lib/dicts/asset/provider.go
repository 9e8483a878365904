package assetprovider

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"personnel-admin/db"
	assetstore "personnel-admin/lib/dicts/asset/store"
	initchecker "personnel-admin/lib/utils/init-checker"
	apimodels "personnel-admin/models/api"
	dictapimodels "personnel-admin/models/api/dict"
	dbmodels "personnel-admin/models/db"
)

type Provider interface {
	Create(request dictapimodels.AssetData) (id string, hMsg string, err error)
	Get(id string) (item dictapimodels.AssetView, err error)
	List(filter dictapimodels.CatalogFind) (list []dictapimodels.AssetView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: assetstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store assetstore.Provider
}

func (i impl) Create(request dictapimodels.AssetData) (id string, hMsg string, err error) {
	unique, err := i.store.IsUnique(request.Name, request.SerialNumber)
	if err != nil {
		return "", "", err
	}
	if !unique {
		return "", "актив уже существует", nil
	}
	rec := dbmodels.Asset{
		Name:         strings.TrimSpace(request.Name),
		SerialNumber: strings.TrimSpace(request.SerialNumber),
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	log.WithField("asset_id", id).
		WithField("asset_name", rec.Name).
		Info("добавлен актив")
	return id, "", nil
}

func (i impl) Get(id string) (item dictapimodels.AssetView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.AssetView{}, err
	}
	if rec == nil {
		return dictapimodels.AssetView{}, apimodels.NewNotFoundError("актив не найден")
	}
	return rec.ToModel(), nil
}

func (i impl) List(filter dictapimodels.CatalogFind) (list []dictapimodels.AssetView, err error) {
	recList, err := i.store.List(filter.Search)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.AssetView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, rec.ToModel())
	}
	return result, nil
}
