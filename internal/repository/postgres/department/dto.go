package department

type Filter struct {
	Search *string
}

type GetListResponse struct {
	Name       string `json:"name"       bun:"department"`
	StaffCount int    `json:"staff_count" bun:"staff_count"`
}
