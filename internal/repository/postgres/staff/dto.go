package staff

import "staffattendance/backend/internal/entity"

type Filter struct {
	Search     *string
	Department *string
}

type CreateRequest struct {
	ID         *string `json:"id"         form:"id"`
	Name       *string `json:"name"       form:"name"`
	Department *string `json:"department" form:"department"`
	Position   *string `json:"position"   form:"position"`
}

type CreateResponse struct {
	entity.Staff
	Username string `json:"username"`
}

type UpdateRequest struct {
	ID         string  `json:"-"`
	Name       *string `json:"name"       form:"name"`
	Department *string `json:"department" form:"department"`
	Position   *string `json:"position"   form:"position"`
}

type DeleteResponse struct {
	StaffID string  `json:"staff_id"`
	UserIDs []int64 `json:"-"`
}

type ImportResponse struct {
	Created  []string `json:"created"`
	Existing []string `json:"existing"`
	Rejected []int    `json:"rejected_rows"`
}
