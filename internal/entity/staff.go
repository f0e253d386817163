package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type Staff struct {
	bun.BaseModel `bun:"table:staff"`

	ID         string    `json:"id"         bun:"id,pk"`
	Name       string    `json:"name"       bun:"name,notnull"`
	Department string    `json:"department" bun:"department,notnull,default:''"`
	Position   string    `json:"position"   bun:"position,notnull,default:''"`
	CreatedAt  time.Time `json:"created_at" bun:"created_at,notnull,default:current_timestamp"`
}
