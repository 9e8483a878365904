package historyapimodels

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrMalformedEnvelope ответ бэкенда не содержит ожидаемого списка/объекта
var ErrMalformedEnvelope = errors.New("некорректный формат ответа сервера")

// Ключи обертки ответа в порядке приоритета
var envelopeKeys = []string{"history", "data"}

// ParseListEnvelope достает список записей из ответа.
// Порядок: массив без обертки, затем поле history, затем поле data.
func ParseListEnvelope(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrMalformedEnvelope
	}
	if trimmed[0] == '[' {
		return decodeList(trimmed)
	}
	if trimmed[0] != '{' {
		return nil, ErrMalformedEnvelope
	}
	obj := map[string]json.RawMessage{}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, ErrMalformedEnvelope
	}
	for _, key := range envelopeKeys {
		value, ok := obj[key]
		if !ok {
			continue
		}
		value = bytes.TrimSpace(value)
		if bytes.Equal(value, []byte("null")) {
			// пустой список сервер может отдать как null
			return []json.RawMessage{}, nil
		}
		if len(value) == 0 || value[0] != '[' {
			return nil, ErrMalformedEnvelope
		}
		return decodeList(value)
	}
	return nil, ErrMalformedEnvelope
}

// ParseObjectEnvelope достает одну запись из ответа на создание/изменение.
// Порядок: поле history, затем поле data, затем сам объект, если в нем есть _id.
func ParseObjectEnvelope(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrMalformedEnvelope
	}
	obj := map[string]json.RawMessage{}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, ErrMalformedEnvelope
	}
	for _, key := range envelopeKeys {
		value, ok := obj[key]
		if !ok {
			continue
		}
		value = bytes.TrimSpace(value)
		if len(value) == 0 || value[0] != '{' {
			return nil, ErrMalformedEnvelope
		}
		return value, nil
	}
	if _, ok := obj["_id"]; ok {
		return trimmed, nil
	}
	return nil, ErrMalformedEnvelope
}

// ParseErrorMessage текст ошибки из ответа бэкенда (поле message или error)
func ParseErrorMessage(body []byte) string {
	data := struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}{}
	if err := json.Unmarshal(body, &data); err != nil {
		return ""
	}
	if data.Message != "" {
		return data.Message
	}
	return data.Error
}

func decodeList(raw []byte) ([]json.RawMessage, error) {
	list := []json.RawMessage{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, ErrMalformedEnvelope
	}
	return list, nil
}
