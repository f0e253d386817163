package postgres

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"staffattendance/backend/internal/entity"
)

// FillDay writes status for every staff member on day in a single
// INSERT ... SELECT, so there is no window between checking for a row and
// inserting it. With overwrite false existing rows are left alone (auto-fill);
// with overwrite true they are replaced (holiday declaration, bulk marks).
// department, when set, limits the rows to one department.
func FillDay(ctx context.Context, db bun.IDB, day string, status entity.Status, overwrite bool, department *string) (int64, error) {
	conflict := "ON CONFLICT (staff_id, work_day) DO NOTHING"
	if overwrite {
		conflict = "ON CONFLICT (staff_id, work_day) DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at"
	}

	where := "1 = 1"
	args := []interface{}{day, status, time.Now()}
	if department != nil {
		where = "s.department = ?"
		args = append(args, *department)
	}

	res, err := db.NewRaw(`
		INSERT INTO attendance (staff_id, work_day, status, updated_at)
		SELECT s.id, ?, ?, ?
		FROM staff AS s
		WHERE `+where+`
		`+conflict, args...).Exec(ctx)
	if err != nil {
		// A concurrent writer already produced the row, which is what we wanted.
		if !overwrite && IsUniqueViolation(err) {
			return 0, nil
		}
		return 0, err
	}

	n, _ := res.RowsAffected()
	return n, nil
}
