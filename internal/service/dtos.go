package service

// ReportBlock is one rendered report, covering one top-level grouping key.
// Each block is an independent message for the delivery side.
type ReportBlock struct {
	MacroRegion string `json:"macro_region,omitempty"`
	Text        string `json:"text"`
}
