package entity

import (
	"github.com/uptrace/bun"
)

type Holiday struct {
	bun.BaseModel `bun:"table:holidays"`

	Date string `json:"date" bun:"holiday_date,pk"`
	Name string `json:"name" bun:"name,notnull,default:''"`
}
