package dictapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type AssetData struct {
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber"`
}

type AssetView struct {
	AssetData
	ID string `json:"_id"`
}

func (c AssetData) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("не указано название актива")
	}
	return nil
}

func (v AssetView) Option() ReferenceOption {
	return ReferenceOption{
		ID:       v.ID,
		Label:    v.Name,
		Subtitle: v.SerialNumber,
	}
}
