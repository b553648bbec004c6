package dto

// LoyaltyBonusDTO is one entry of a user's bonus history
type LoyaltyBonusDTO struct {
	BonusType   string `json:"bonusType"`
	BonusApples int64  `json:"bonusApples"`
	CreatedAt   string `json:"createdAt"`
}

// UserDashboardResponse is the per-user dashboard projection
type UserDashboardResponse struct {
	ID                  uint64            `json:"id"`
	Name                string            `json:"name"`
	Barcode             string            `json:"barcode"`
	Apples              int64             `json:"apples"`
	Role                string            `json:"role"`
	Sessions            int64             `json:"sessions"`
	CurrentSessionValue int64             `json:"currentSessionValue"`
	MilestonesReached   int64             `json:"milestonesReached"`
	BonusCount          int               `json:"bonusCount"`
	LoyaltyHistory      []LoyaltyBonusDTO `json:"loyaltyHistory"`
}

// StudentRowResponse is one student row of the admin roster
type StudentRowResponse struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Barcode string `json:"barcode"`
	Apples  int64  `json:"apples"`
}

// RosterResponse is the admin roster projection, sorted by balance
// descending
type RosterResponse struct {
	ViewType    string                  `json:"viewType"`
	Assistants  []UserDashboardResponse `json:"assistants,omitempty"`
	Students    []StudentRowResponse    `json:"students,omitempty"`
	TotalApples int64                   `json:"totalApples"`
}
