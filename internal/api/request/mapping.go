package request

// SetSectorMappingRequest represents the request body for assigning a
// sector (and optionally an industry) to a symbol.
type SetSectorMappingRequest struct {
	Symbol   string `json:"symbol"`
	Sector   string `json:"sector"`
	Industry string `json:"industry,omitempty"`
}

// SetSettingRequest represents the request body for storing a setting value.
type SetSettingRequest struct {
	Value string `json:"value"`
}
