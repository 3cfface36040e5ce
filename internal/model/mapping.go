package model

// UnspecifiedSector is the default classification for symbols without a
// stored sector or industry mapping.
const UnspecifiedSector = "Unspecified"

// SectorMapping assigns a free-text sector to a symbol. Mappings have a
// lifecycle independent from positions: a mapping may exist for a symbol
// that is no longer held.
type SectorMapping struct {
	Symbol string `json:"symbol"`
	Sector string `json:"sector"`
}

// IndustryMapping assigns a free-text industry to a symbol.
type IndustryMapping struct {
	Symbol   string `json:"symbol"`
	Industry string `json:"industry"`
}

// Setting is a key/value configuration row. Values for secret keys are
// stored fernet-encrypted.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
