package attendance

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/pkg/repository/postgresql"
	"staffattendance/backend/internal/repository/postgres"
	"staffattendance/backend/internal/repository/postgres/holiday"
	"staffattendance/backend/internal/service/calendar"
	"staffattendance/backend/internal/service/report"
)

// Repository is the attendance ledger. Reads materialize holiday and weekend
// rows before answering, inside the same transaction.
type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetByDate returns the statuses recorded for day, after filling holiday or
// weekend rows for staff that have none.
func (r Repository) GetByDate(ctx context.Context, date string) (DayResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	day, err := calendar.Parse(date)
	if err != nil {
		return nil, web.NewRequestError(err, http.StatusBadRequest)
	}

	response := make(DayResponse)

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := materializeDay(ctx, tx, day); err != nil {
			return err
		}

		var rows []entity.Attendance
		q := tx.NewSelect().Model(&rows).Where("work_day = ?", day).OrderExpr("staff_id ASC")
		if staffID, scoped := claims.Scope(); scoped {
			q.Where("staff_id = ?", staffID)
		}
		if err := q.Scan(ctx); err != nil {
			return web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
		}

		for _, row := range rows {
			response[row.StaffID] = row.Status
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// GetByRange returns the ledger rows for from..to ordered by date then staff,
// after filling every Sunday and declared holiday in range.
func (r Repository) GetByRange(ctx context.Context, from, to string) ([]entity.Attendance, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	if from, err = calendar.Parse(from); err != nil {
		return nil, web.NewRequestError(err, http.StatusBadRequest)
	}
	if to, err = calendar.Parse(to); err != nil {
		return nil, web.NewRequestError(err, http.StatusBadRequest)
	}
	if to < from {
		return nil, web.NewRequestError(errors.New("from must not be after to"), http.StatusBadRequest)
	}

	staffID, scoped := claims.Scope()

	var rows []entity.Attendance
	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := materializeRange(ctx, tx, from, to); err != nil {
			return err
		}

		rows, err = selectRange(ctx, tx, from, to, staffID, scoped)
		return err
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// GetMonth groups a month of rows by day. month is zero based.
func (r Repository) GetMonth(ctx context.Context, year, month int) (MonthResponse, error) {
	from, to, err := calendar.MonthRange(year, month)
	if err != nil {
		return nil, web.NewRequestError(err, http.StatusBadRequest)
	}

	rows, err := r.GetByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	response := make(MonthResponse)
	for _, row := range rows {
		day, ok := response[row.WorkDay]
		if !ok {
			day = make(DayResponse)
			response[row.WorkDay] = day
		}
		day[row.StaffID] = row.Status
	}

	return response, nil
}

// Upsert stores status for the pair, replacing what was there.
func (r Repository) Upsert(ctx context.Context, staffID, date string, status entity.Status) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return err
	}

	day, err := calendar.Parse(date)
	if err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}
	st, ok := entity.ParseStatus(string(status))
	if !ok {
		return web.NewRequestError(errors.Errorf("invalid status %q", status), http.StatusBadRequest)
	}

	return upsert(ctx, r.DB, staffID, day, st)
}

// Mark is the toggle used by the attendance screen. Sending the status that is
// already stored removes the mark. Otherwise the status is stored, except
// that holidays and Sundays always store holiday or weekend.
func (r Repository) Mark(ctx context.Context, request MarkRequest) (MarkResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return MarkResponse{}, err
	}

	if err := r.ValidateStruct(&request, "StaffID", "Date", "Status"); err != nil {
		return MarkResponse{}, err
	}

	day, err := calendar.Parse(*request.Date)
	if err != nil {
		return MarkResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}
	requested, ok := entity.ParseStatus(*request.Status)
	if !ok {
		return MarkResponse{}, web.NewRequestError(errors.Errorf("invalid status %q", *request.Status), http.StatusBadRequest)
	}

	response := MarkResponse{StaffID: strings.TrimSpace(*request.StaffID), Date: day}

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewSelect().
			Model((*entity.Attendance)(nil)).
			Column("status").
			Where("staff_id = ?", response.StaffID).
			Where("work_day = ?", day)
		if r.IsPostgres() {
			q.For("UPDATE")
		}

		var current string
		err := q.Scan(ctx, &current)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
		}

		if entity.Status(current) == requested {
			if _, err := tx.NewDelete().
				Model((*entity.Attendance)(nil)).
				Where("staff_id = ?", response.StaffID).
				Where("work_day = ?", day).
				Exec(ctx); err != nil {
				return web.NewRequestError(errors.Wrap(err, "deleting attendance"), http.StatusInternalServerError)
			}
			response.Status = entity.StatusUnmarked
			response.Removed = true
			return nil
		}

		stored, err := forcedStatus(ctx, tx, day, requested)
		if err != nil {
			return err
		}
		response.Status = stored
		response.Forced = stored != requested

		return upsert(ctx, tx, response.StaffID, day, stored)
	})
	if err != nil {
		return MarkResponse{}, err
	}

	return response, nil
}

// Bulk stores one status for every staff member, or every member of one
// department, on a day. It never toggles.
func (r Repository) Bulk(ctx context.Context, request BulkRequest) (BulkResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return BulkResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Date", "Status"); err != nil {
		return BulkResponse{}, err
	}

	day, err := calendar.Parse(*request.Date)
	if err != nil {
		return BulkResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}
	requested, ok := entity.ParseStatus(*request.Status)
	if !ok {
		return BulkResponse{}, web.NewRequestError(errors.Errorf("invalid status %q", *request.Status), http.StatusBadRequest)
	}

	var department *string
	if request.Department != nil && strings.TrimSpace(*request.Department) != "" {
		d := strings.TrimSpace(*request.Department)
		department = &d
	}

	response := BulkResponse{Date: day}

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		stored, err := forcedStatus(ctx, tx, day, requested)
		if err != nil {
			return err
		}
		response.Status = stored

		response.Marked, err = postgres.FillDay(ctx, tx, day, stored, true, department)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "marking attendance"), http.StatusInternalServerError)
		}
		return nil
	})
	if err != nil {
		return BulkResponse{}, err
	}

	return response, nil
}

// Delete unmarks the pair. Deleting a missing mark is not an error.
func (r Repository) Delete(ctx context.Context, request DeleteRequest) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin, auth.RoleManager); err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "StaffID", "Date"); err != nil {
		return err
	}

	day, err := calendar.Parse(*request.Date)
	if err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	_, err = r.NewDelete().
		Model((*entity.Attendance)(nil)).
		Where("staff_id = ?", strings.TrimSpace(*request.StaffID)).
		Where("work_day = ?", day).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "deleting attendance"), http.StatusInternalServerError)
	}

	return nil
}

// MyReport is the caller's own month, for employee logins.
func (r Repository) MyReport(ctx context.Context, year, month int) (MyReportResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleEmployee)
	if err != nil {
		return MyReportResponse{}, err
	}
	staffID, _ := claims.Scope()

	from, to, err := calendar.MonthRange(year, month)
	if err != nil {
		return MyReportResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}
	days, err := calendar.Days(from, to)
	if err != nil {
		return MyReportResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	response := MyReportResponse{Year: year, Month: month, Days: make([]DayStatus, 0, len(days))}

	var (
		rows     []entity.Attendance
		holidays []entity.Holiday
	)
	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(&response.Staff).Where("id = ?", staffID).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return web.NewRequestError(errors.Wrap(postgres.ErrNotFound, "no staff record linked to this login"), http.StatusNotFound)
		}
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "selecting staff"), http.StatusInternalServerError)
		}

		if err = materializeRange(ctx, tx, from, to); err != nil {
			return err
		}
		if rows, err = selectRange(ctx, tx, from, to, staffID, true); err != nil {
			return err
		}
		holidays, err = holiday.ListRange(ctx, tx, from, to)
		return err
	})
	if err != nil {
		return MyReportResponse{}, err
	}

	resolver := report.NewResolver(rows, holidays)
	for _, day := range days {
		response.Days = append(response.Days, DayStatus{Date: day, Status: resolver.Status(staffID, day)})
	}
	response.Summary = report.Aggregate([]entity.Staff{response.Staff}, days, resolver, report.MonthlyView)[0]

	return response, nil
}

// =============================================================================

func upsert(ctx context.Context, db bun.IDB, staffID, day string, status entity.Status) error {
	_, err := db.NewInsert().
		Model(&entity.Attendance{StaffID: staffID, WorkDay: day, Status: status, UpdatedAt: time.Now()}).
		On("CONFLICT (staff_id, work_day) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if postgres.IsForeignKeyViolation(err) {
		return web.NewRequestError(errors.Wrapf(postgres.ErrNotFound, "staff %s", staffID), http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "upserting attendance"), http.StatusInternalServerError)
	}
	return nil
}

// forcedStatus returns the status a write on day actually stores.
func forcedStatus(ctx context.Context, db bun.IDB, day string, requested entity.Status) (entity.Status, error) {
	isHoliday, err := holiday.IsHoliday(ctx, db, day)
	if err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "checking holiday"), http.StatusInternalServerError)
	}
	return report.Resolve(entity.StatusUnmarked, isHoliday, calendar.IsWeekend(day)).Or(requested), nil
}

func materializeDay(ctx context.Context, db bun.IDB, day string) error {
	isHoliday, err := holiday.IsHoliday(ctx, db, day)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking holiday"), http.StatusInternalServerError)
	}

	status := report.Resolve(entity.StatusUnmarked, isHoliday, calendar.IsWeekend(day))
	if status == entity.StatusUnmarked {
		return nil
	}

	if _, err := postgres.FillDay(ctx, db, day, status, false, nil); err != nil {
		return web.NewRequestError(errors.Wrapf(err, "filling %s", day), http.StatusInternalServerError)
	}
	return nil
}

// materializeRange fills holidays first so a Sunday holiday is stored as
// holiday.
func materializeRange(ctx context.Context, db bun.IDB, from, to string) error {
	holidays, err := holiday.ListRange(ctx, db, from, to)
	if err != nil {
		return err
	}

	filled := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		if _, err := postgres.FillDay(ctx, db, h.Date, entity.StatusHoliday, false, nil); err != nil {
			return web.NewRequestError(errors.Wrapf(err, "filling holiday %s", h.Date), http.StatusInternalServerError)
		}
		filled[h.Date] = true
	}

	sundays, err := calendar.Sundays(from, to)
	if err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}
	for _, day := range sundays {
		if filled[day] {
			continue
		}
		if _, err := postgres.FillDay(ctx, db, day, entity.StatusWeekend, false, nil); err != nil {
			return web.NewRequestError(errors.Wrapf(err, "filling weekend %s", day), http.StatusInternalServerError)
		}
	}

	return nil
}

func selectRange(ctx context.Context, db bun.IDB, from, to, staffID string, scoped bool) ([]entity.Attendance, error) {
	rows := make([]entity.Attendance, 0)
	q := db.NewSelect().
		Model(&rows).
		Where("work_day >= ?", from).
		Where("work_day <= ?", to).
		OrderExpr("work_day ASC, staff_id ASC")
	if scoped {
		q.Where("staff_id = ?", staffID)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance range"), http.StatusInternalServerError)
	}
	return rows, nil
}
