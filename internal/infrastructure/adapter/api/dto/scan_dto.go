package dto

// ScanRequest represents one barcode scan by a logged-in staff member
type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// ScanResponse represents the outcome of a scan. Optional fields are only
// present for the matching barcode type.
type ScanResponse struct {
	Success     bool   `json:"success"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Apples      int64  `json:"apples"`
	StudentID   uint64 `json:"studentId,omitempty"`
	AssistantID uint64 `json:"assistantId,omitempty"`
	ApplesAdded int64  `json:"applesAdded,omitempty"`
	Sessions    int64  `json:"sessions,omitempty"`
	LoyaltyAdded int64 `json:"loyaltyAdded,omitempty"`
	Message     string `json:"message"`
}
