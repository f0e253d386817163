package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance is one ledger row. (staff_id, work_day) is unique.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	ID        int64     `json:"-"          bun:"id,pk,autoincrement"`
	StaffID   string    `json:"staff_id"   bun:"staff_id,notnull,unique:attendance_staff_day"`
	WorkDay   string    `json:"date"       bun:"work_day,notnull,unique:attendance_staff_day"`
	Status    Status    `json:"status"     bun:"status,notnull"`
	UpdatedAt time.Time `json:"updated_at" bun:"updated_at,notnull,default:current_timestamp"`
}
