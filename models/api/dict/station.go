package dictapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type StationData struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type StationView struct {
	StationData
	ID string `json:"_id"`
}

func (c StationData) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("не указано название места службы")
	}
	return nil
}

func (v StationView) Option() ReferenceOption {
	return ReferenceOption{
		ID:       v.ID,
		Label:    v.Name,
		Subtitle: v.Address,
	}
}
