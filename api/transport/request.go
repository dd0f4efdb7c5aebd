package transport

type StageCreateRequest struct {
	Title string `json:"title"`
}

type StageUpdateRequest struct {
	Title *string `json:"title"`
	Color *string `json:"color"`
}

type StageReorderRequest struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"`
}

type LeadCreateRequest struct {
	Name    string  `json:"name"`
	Company string  `json:"company"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Value   float64 `json:"value"`
	StageID string  `json:"stage_id"`
	ListID  string  `json:"list_id"`
}

type LeadUpdateRequest struct {
	Name    *string  `json:"name"`
	Company *string  `json:"company"`
	Email   *string  `json:"email"`
	Phone   *string  `json:"phone"`
	Value   *float64 `json:"value"`
	StageID *string  `json:"stage_id"`
	ListID  *string  `json:"list_id"`
}

type DragStartRequest struct {
	LeadID string `json:"lead_id"`
}

type DragStageRequest struct {
	StageID string `json:"stage_id"`
}
