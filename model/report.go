package model

// Range is a JSON projection of stego.Range. Units are named by the
// enclosing ScanReport.
type Range struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// MessageReport is one decoded hidden message and the range of the carrier
// run it was read from.
type MessageReport struct {
	Message string `json:"message"`
	Range   Range  `json:"range"`
}

// AnnotationReport is one recovered localization annotation. Range spans
// both markers and the UI string between them.
type AnnotationReport struct {
	Key      string `json:"key"`
	Table    string `json:"table"`
	UIString string `json:"uiString"`
	Range    Range  `json:"range"`
}

// LineReport describes one scanned string.
type LineReport struct {
	Line         int                `json:"line"`
	Visible      string             `json:"visible"`
	VisibleCID   string             `json:"visibleCID"`
	CompositeCID string             `json:"compositeCID"`
	Messages     []MessageReport    `json:"messages"`
	Annotations  []AnnotationReport `json:"annotations,omitempty"`
	Errors       []CodedError       `json:"errors,omitempty"`
}

// ScanReport is the JSON document printed by "stegtext scan".
type ScanReport struct {
	Units string       `json:"units"`
	Lines []LineReport `json:"lines"`
}
