package service

import (
	"strings"

	"portfolio-engine/internal/api/request"
	"portfolio-engine/internal/model"
	"portfolio-engine/internal/repository"
	"portfolio-engine/internal/validation"
)

// MappingService handles sector and industry classification of symbols.
// Mappings outlive positions; classifying a symbol that is no longer held
// is allowed.
type MappingService struct {
	mappingRepo *repository.MappingRepository
}

// NewMappingService creates a new MappingService with the provided repository.
func NewMappingService(mappingRepo *repository.MappingRepository) *MappingService {
	return &MappingService{mappingRepo: mappingRepo}
}

// GetSectorMappings returns all sector mappings as a symbol -> sector map.
func (s *MappingService) GetSectorMappings() (map[string]string, error) {
	return s.mappingRepo.GetSectorMappings()
}

// GetIndustryMappings returns all industry mappings as a symbol -> industry map.
func (s *MappingService) GetIndustryMappings() (map[string]string, error) {
	return s.mappingRepo.GetIndustryMappings()
}

// SetMapping upserts the sector, and optionally the industry, for a symbol.
func (s *MappingService) SetMapping(req request.SetSectorMappingRequest) error {
	errors := make(map[string]string)
	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}
	if strings.TrimSpace(req.Sector) == "" {
		errors["sector"] = "sector is required"
	}
	if len(errors) > 0 {
		return &validation.Error{Fields: errors}
	}

	symbol := strings.TrimSpace(req.Symbol)
	if err := s.mappingRepo.SetSectorMapping(model.SectorMapping{
		Symbol: symbol,
		Sector: strings.TrimSpace(req.Sector),
	}); err != nil {
		return err
	}

	if industry := strings.TrimSpace(req.Industry); industry != "" {
		return s.mappingRepo.SetIndustryMapping(model.IndustryMapping{
			Symbol:   symbol,
			Industry: industry,
		})
	}
	return nil
}

// DeleteSectorMapping removes the sector mapping for a symbol; the symbol
// falls back to the Unspecified sector.
func (s *MappingService) DeleteSectorMapping(symbol string) error {
	return s.mappingRepo.DeleteSectorMapping(symbol)
}
