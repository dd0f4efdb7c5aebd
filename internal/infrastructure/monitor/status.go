package monitor

import "time"

// StageStatus is the latest sample of one stage column.
type StageStatus struct {
	StageID    string  `json:"stage_id"`
	Title      string  `json:"title"`
	Leads      int     `json:"leads"`
	TotalValue float64 `json:"total_value"`
}

type Status struct {
	Healthy    bool          `json:"healthy"`
	Stages     []StageStatus `json:"stages"`
	Leads      int           `json:"leads"`
	TotalValue float64       `json:"total_value"`
	LastCheck  time.Time     `json:"last_check"`
	LastError  string        `json:"last_error,omitempty"`
}
