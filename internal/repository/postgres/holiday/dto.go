package holiday

import "staffattendance/backend/internal/entity"

type CreateRequest struct {
	Date *string `json:"date" form:"date"`
	Name *string `json:"name" form:"name"`
}

type CreateResponse struct {
	entity.Holiday
	Marked int64 `json:"marked"`
}

type DeleteRequest struct {
	Date *string `json:"date" form:"date"`
}
