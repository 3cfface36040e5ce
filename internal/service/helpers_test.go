package service_test

import (
	"portfolio-engine/internal/api/request"
)

func sectorReq(symbol, sector string) request.SetSectorMappingRequest {
	return request.SetSectorMappingRequest{Symbol: symbol, Sector: sector}
}

func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }
