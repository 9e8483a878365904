package stationprovider

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"personnel-admin/db"
	stationstore "personnel-admin/lib/dicts/station/store"
	initchecker "personnel-admin/lib/utils/init-checker"
	apimodels "personnel-admin/models/api"
	dictapimodels "personnel-admin/models/api/dict"
	dbmodels "personnel-admin/models/db"
)

type Provider interface {
	Create(request dictapimodels.StationData) (id string, hMsg string, err error)
	Get(id string) (item dictapimodels.StationView, err error)
	List(filter dictapimodels.CatalogFind) (list []dictapimodels.StationView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: stationstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store stationstore.Provider
}

func (i impl) Create(request dictapimodels.StationData) (id string, hMsg string, err error) {
	unique, err := i.store.IsUnique(request.Name)
	if err != nil {
		return "", "", err
	}
	if !unique {
		return "", "место службы уже существует", nil
	}
	rec := dbmodels.Station{
		Name:    strings.TrimSpace(request.Name),
		Address: strings.TrimSpace(request.Address),
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", "", err
	}
	log.WithField("station_id", id).
		WithField("station_name", rec.Name).
		Info("добавлено место службы")
	return id, "", nil
}

func (i impl) Get(id string) (item dictapimodels.StationView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.StationView{}, err
	}
	if rec == nil {
		return dictapimodels.StationView{}, apimodels.NewNotFoundError("место службы не найдено")
	}
	return rec.ToModel(), nil
}

func (i impl) List(filter dictapimodels.CatalogFind) (list []dictapimodels.StationView, err error) {
	recList, err := i.store.List(filter.Search)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.StationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, rec.ToModel())
	}
	return result, nil
}
