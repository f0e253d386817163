package position

type Filter struct {
	Search     *string
	Department *string
}

type GetListResponse struct {
	Name       string `json:"name"        bun:"position"`
	StaffCount int    `json:"staff_count" bun:"staff_count"`
}
