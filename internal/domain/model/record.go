package model

import (
	"time"
)

// Record is one inventory item. JSON field names follow the form the frontend
// submits: nombre, cantidad, ubicacion, tipo, observaciones, serial, estado.
// Usuario and Fecha are always stamped server-side from the verified token.
type Record struct {
	ID            string    `json:"id"`
	Nombre        string    `json:"nombre"`
	Imagen        *string   `json:"imagen,omitempty"`
	Cantidad      int       `json:"cantidad"`
	Ubicacion     string    `json:"ubicacion"`
	Tipo          string    `json:"tipo"`
	Observaciones *string   `json:"observaciones,omitempty"`
	Serial        string    `json:"serial"`
	Estado        string    `json:"estado"`
	Usuario       string    `json:"usuario"`
	Fecha         time.Time `json:"fecha"`
}

var RecordTipos = []string{
	"Papelería y materiales",
	"Protección personal",
	"Mantenimiento",
	"Herramientas",
	"Consumibles equipos",
	"Componentes electrónicos",
	"Souvenirs",
}

var RecordEstados = []string{
	"nuevo",
	"actualizado",
	"robado",
	"guardado",
}

func ValidTipo(tipo string) bool {
	for _, t := range RecordTipos {
		if t == tipo {
			return true
		}
	}
	return false
}

func ValidEstado(estado string) bool {
	for _, e := range RecordEstados {
		if e == estado {
			return true
		}
	}
	return false
}
