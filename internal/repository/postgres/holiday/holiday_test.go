package holiday

import (
	"context"
	"net/http"
	"testing"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/auth"
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/pkg/repository/postgresql/dbtest"
)

func strptr(s string) *string { return &s }

func TestCreateMarksCurrentStaff(t *testing.T) {
	db := dbtest.NewDatabase(t)
	ctx := context.Background()
	admin := dbtest.Admin()
	repo := NewRepository(db)

	staff := []entity.Staff{{ID: "E1", Name: "Ann"}, {ID: "E2", Name: "Bob"}}
	if _, err := db.NewInsert().Model(&staff).Exec(ctx); err != nil {
		t.Fatalf("insert staff: %v", err)
	}
	// A manual mark is replaced by the declaration.
	if _, err := db.NewInsert().Model(&entity.Attendance{StaffID: "E1", WorkDay: "2024-01-26", Status: entity.StatusPresent}).Exec(ctx); err != nil {
		t.Fatalf("insert attendance: %v", err)
	}

	res, err := repo.Create(admin, CreateRequest{Date: strptr("2024-01-26"), Name: strptr("Republic Day")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Marked != 2 {
		t.Fatalf("expected 2 staff marked, got %d", res.Marked)
	}

	// Staff added afterwards are not marked by the declaration.
	if _, err := db.NewInsert().Model(&entity.Staff{ID: "E3", Name: "Cy"}).Exec(ctx); err != nil {
		t.Fatalf("insert E3: %v", err)
	}

	var rows []entity.Attendance
	if err := db.NewSelect().Model(&rows).Where("work_day = ?", "2024-01-26").OrderExpr("staff_id").Scan(ctx); err != nil {
		t.Fatalf("select attendance: %v", err)
	}
	if len(rows) != 2 || rows[0].StaffID != "E1" || rows[1].StaffID != "E2" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	for _, row := range rows {
		if row.Status != entity.StatusHoliday {
			t.Fatalf("expected holiday for %s, got %s", row.StaffID, row.Status)
		}
	}

	// Re-declaring renames.
	if _, err := repo.Create(admin, CreateRequest{Date: strptr("2024-01-26"), Name: strptr("National Day")}); err != nil {
		t.Fatalf("re-create: %v", err)
	}
	list, err := repo.GetList(admin)
	if err != nil || len(list) != 1 || list[0].Name != "National Day" {
		t.Fatalf("unexpected holidays %+v %v", list, err)
	}
}

func TestDeleteKeepsMarks(t *testing.T) {
	db := dbtest.NewDatabase(t)
	ctx := context.Background()
	admin := dbtest.Admin()
	repo := NewRepository(db)

	if _, err := db.NewInsert().Model(&entity.Staff{ID: "E1", Name: "Ann"}).Exec(ctx); err != nil {
		t.Fatalf("insert staff: %v", err)
	}
	if _, err := repo.Create(admin, CreateRequest{Date: strptr("2024-05-01"), Name: strptr("Labour Day")}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(admin, DeleteRequest{Date: strptr("2024-05-01")}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, err := IsHoliday(ctx, db.DB, "2024-05-01"); err != nil || ok {
		t.Fatalf("expected holiday removed, got %v %v", ok, err)
	}

	n, err := db.NewSelect().Model((*entity.Attendance)(nil)).Where("work_day = ?", "2024-05-01").Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected the holiday mark to stay, got %d %v", n, err)
	}

	if err := repo.Delete(admin, DeleteRequest{Date: strptr("2024-05-01")}); web.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404 removing an unknown holiday, got %v", err)
	}
}

func TestValidationAndRoles(t *testing.T) {
	repo := NewRepository(dbtest.NewDatabase(t))

	tests := []struct {
		name   string
		ctx    context.Context
		req    CreateRequest
		status int
	}{
		{"bad date", dbtest.Admin(), CreateRequest{Date: strptr("26/01/2024"), Name: strptr("X")}, http.StatusBadRequest},
		{"missing date", dbtest.Admin(), CreateRequest{Name: strptr("X")}, http.StatusBadRequest},
		{"manager", dbtest.As(auth.RoleManager, ""), CreateRequest{Date: strptr("2024-01-26"), Name: strptr("X")}, http.StatusForbidden},
		{"anonymous", context.Background(), CreateRequest{Date: strptr("2024-01-26"), Name: strptr("X")}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Create(tt.ctx, tt.req); web.StatusOf(err) != tt.status || err == nil {
				t.Fatalf("expected %d, got %v", tt.status, err)
			}
		})
	}

	unnamed, err := repo.Create(dbtest.Admin(), CreateRequest{Date: strptr("2024-08-15")})
	if err != nil || unnamed.Name != "" || unnamed.Date != "2024-08-15" {
		t.Fatalf("a holiday without a name must be stored with an empty name: %+v %v", unnamed, err)
	}

	ranged, err := repo.GetRange(dbtest.As(auth.RoleEmployee, "E1"), "2024-01-01", "2024-12-31")
	if err != nil || len(ranged) != 1 {
		t.Fatalf("employees may read the calendar: %v %v", ranged, err)
	}
}
