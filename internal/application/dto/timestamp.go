package dto

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"
)

// timestampLayouts formatos ISO 8601 aceptados; sin zona horaria se interpretan en UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Timestamp instante de la solicitud. Acepta RFC 3339, ISO sin offset y solo fecha.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON prueba cada layout. Un valor inválido se reporta como *json.UnmarshalTypeError
// para que el decodificador complete el nombre del campo.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(ts)}
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts.Time = t
			return nil
		}
	}
	return &json.UnmarshalTypeError{Value: "string " + raw, Type: reflect.TypeOf(ts)}
}
