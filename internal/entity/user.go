package entity

import (
	"github.com/uptrace/bun"
)

// User is a login account. Employee accounts are linked to one staff record.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID       int64   `json:"id"       bun:"id,pk,autoincrement"`
	Username string  `json:"username" bun:"username,notnull,unique"`
	Password string  `json:"-"        bun:"password,notnull"`
	Role     string  `json:"role"     bun:"role,notnull"`
	StaffID  *string `json:"staff_id" bun:"staff_id"`
}
