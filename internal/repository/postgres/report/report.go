package report

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/pkg/repository/postgresql"
	"staffattendance/backend/internal/repository/postgres/holiday"
	"staffattendance/backend/internal/service/calendar"
	"staffattendance/backend/internal/service/report"
)

// Repository feeds the report views. It reads without materializing; the
// resolver fills in holidays and Sundays that were never stored.
type Repository struct {
	*postgresql.Database
	now func() time.Time
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database, now: time.Now}
}

// Dashboard summarizes one day, today when date is nil.
func (r Repository) Dashboard(ctx context.Context, date *string) (DashboardResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}

	day := calendar.Format(r.now())
	if date != nil {
		if day, err = calendar.Parse(*date); err != nil {
			return DashboardResponse{}, web.NewRequestError(err, http.StatusBadRequest)
		}
	}

	staff, resolver, err := r.load(ctx, claims, day, day, Filter{})
	if err != nil {
		return DashboardResponse{}, err
	}

	list := report.Aggregate(staff, []string{day}, resolver, report.DashboardView)

	return DashboardResponse{
		Date:       day,
		Holiday:    resolver.HolidayName(day),
		Weekend:    calendar.IsWeekend(day),
		StaffCount: len(staff),
		Totals:     report.Totals(list, report.DashboardView),
		Staff:      list,
	}, nil
}

// Monthly builds the grid for a zero based month.
func (r Repository) Monthly(ctx context.Context, year, month int, filter Filter) (report.Monthly, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return report.Monthly{}, err
	}

	from, to, err := calendar.MonthRange(year, month)
	if err != nil {
		return report.Monthly{}, web.NewRequestError(err, http.StatusBadRequest)
	}
	days, err := calendar.Days(from, to)
	if err != nil {
		return report.Monthly{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	staff, resolver, err := r.load(ctx, claims, from, to, filter)
	if err != nil {
		return report.Monthly{}, err
	}

	return report.BuildMonthly(year, month, staff, days, resolver), nil
}

// Overview ranks staff over an arbitrary range by calendar days.
func (r Repository) Overview(ctx context.Context, from, to string, filter Filter) (OverviewResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return OverviewResponse{}, err
	}

	if from, err = calendar.Parse(from); err != nil {
		return OverviewResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}
	if to, err = calendar.Parse(to); err != nil {
		return OverviewResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}
	days, err := calendar.Days(from, to)
	if err != nil {
		return OverviewResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}
	if len(days) == 0 {
		return OverviewResponse{}, web.NewRequestError(errors.New("from must not be after to"), http.StatusBadRequest)
	}
	if len(days) > 366 {
		return OverviewResponse{}, web.NewRequestError(errors.New("range must not exceed one year"), http.StatusBadRequest)
	}

	staff, resolver, err := r.load(ctx, claims, from, to, filter)
	if err != nil {
		return OverviewResponse{}, err
	}

	list := report.Aggregate(staff, days, resolver, report.OverviewView)
	report.Rank(list)

	return OverviewResponse{
		From:    from,
		To:      to,
		Totals:  report.Totals(list, report.OverviewView),
		Ranking: list,
	}, nil
}

// load reads the roster visible to claims and a resolver for from..to.
func (r Repository) load(ctx context.Context, claims auth.Claims, from, to string, filter Filter) ([]entity.Staff, *report.Resolver, error) {
	staffID, scoped := claims.Scope()

	staff := make([]entity.Staff, 0)
	q := r.NewSelect().Model(&staff).OrderExpr("id ASC")
	if scoped {
		q.Where("id = ?", staffID)
	}
	if filter.Department != nil && *filter.Department != "" {
		q.Where("department = ?", *filter.Department)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, nil, web.NewRequestError(errors.Wrap(err, "selecting staff"), http.StatusInternalServerError)
	}

	var rows []entity.Attendance
	rq := r.NewSelect().
		Model(&rows).
		Where("work_day >= ?", from).
		Where("work_day <= ?", to)
	if scoped {
		rq.Where("staff_id = ?", staffID)
	}
	if err := rq.Scan(ctx); err != nil {
		return nil, nil, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}

	holidays, err := holiday.ListRange(ctx, r.DB, from, to)
	if err != nil {
		return nil, nil, err
	}

	return staff, report.NewResolver(rows, holidays), nil
}
