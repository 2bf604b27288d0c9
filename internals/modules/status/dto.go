package status

type CurrentStatusResponse struct {
	Page   string         `json:"page"`
	Status ResolvedStatus `json:"status"`
}
