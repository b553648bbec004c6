package dto

// AddApplesRequest represents a manual balance adjustment. Apples is a
// pointer so a missing field is rejected instead of read as zero.
type AddApplesRequest struct {
	Apples              *int64 `json:"apples"`
	IsSessionAttendance bool   `json:"isSessionAttendance"`
}

// AddApplesResponse represents the outcome of a balance adjustment
type AddApplesResponse struct {
	Success             bool   `json:"success"`
	Name                string `json:"name"`
	Apples              int64  `json:"apples"`
	ApplesAdded         int64  `json:"applesAdded"`
	SessionsAttended    int64  `json:"sessionsAttended,omitempty"`
	CurrentSessionValue int64  `json:"currentSessionValue,omitempty"`
	Message             string `json:"message"`
}

// PayRewardsResponse represents the outcome of the bulk assistant reset
type PayRewardsResponse struct {
	Success         bool   `json:"success"`
	AssistantsReset int64  `json:"assistantsReset"`
	Message         string `json:"message"`
}
