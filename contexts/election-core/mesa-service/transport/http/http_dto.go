package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CloseMesaRequest struct {
	OfficialID string `json:"official_id"`
}

type MesaStateResponse struct {
	CircuitID         int64      `json:"circuit_id"`
	IsOpen            bool       `json:"is_open"`
	OpenedAt          *time.Time `json:"opened_at,omitempty"`
	ClosedAt          *time.Time `json:"closed_at,omitempty"`
	ClosingOfficialID string     `json:"closing_official_id,omitempty"`
}

type OpenMesaItem struct {
	CircuitID    int64     `json:"circuit_id"`
	OpenedAt     time.Time `json:"opened_at"`
	City         string    `json:"city"`
	Neighborhood string    `json:"neighborhood,omitempty"`
}

type OpenMesasResponse struct {
	Items []OpenMesaItem `json:"items"`
}
