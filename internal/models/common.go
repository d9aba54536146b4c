package models

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// DeleteAck is the minimal acknowledgment returned by delete operations.
// Label carries a human-readable identifier of the removed row.
type DeleteAck struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
