package historyapimodels

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Ref ссылка на сотрудника, актив или место службы.
// Бэкенд отдает ее либо объектом, либо строкой с идентификатором.
type Ref struct {
	ID             string `json:"_id"`
	Name           string `json:"name,omitempty"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	PersonalNumber string `json:"personalNumber,omitempty"`
	Status         string `json:"status,omitempty"`
}

type refObject struct {
	ID             string `json:"_id"`
	AltID          string `json:"id"`
	Name           string `json:"name"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PersonalNumber string `json:"personalNumber"`
	Status         string `json:"status"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if trimmed[0] == '"' {
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	obj := refObject{}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	if obj.ID == "" {
		obj.ID = obj.AltID
	}
	*r = Ref{
		ID:             obj.ID,
		Name:           obj.Name,
		FirstName:      obj.FirstName,
		LastName:       obj.LastName,
		PersonalNumber: obj.PersonalNumber,
		Status:         obj.Status,
	}
	return nil
}

func (r Ref) IsEmpty() bool {
	return r.ID == "" && r.Label() == ""
}

// Label подпись для отображения: название, ФИО или идентификатор
func (r Ref) Label() string {
	if r.Name != "" {
		return r.Name
	}
	fio := strings.TrimSpace(r.LastName + " " + r.FirstName)
	if fio != "" {
		return fio
	}
	return r.ID
}

func refValue(ref *Ref) Ref {
	if ref == nil {
		return Ref{}
	}
	return *ref
}

func refPtr(ref Ref) *Ref {
	if ref.IsEmpty() {
		return nil
	}
	return &ref
}
