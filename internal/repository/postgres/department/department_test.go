package department

import (
	"context"
	"net/http"
	"testing"

	"staffattendance/backend/foundation/web"
	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/pkg/repository/postgresql/dbtest"
)

func TestGetList(t *testing.T) {
	db := dbtest.NewDatabase(t)
	ctx := context.Background()

	roster := []entity.Staff{
		{ID: "E1", Name: "Ann", Department: "Ops"},
		{ID: "E2", Name: "Bob", Department: "Ops"},
		{ID: "E3", Name: "Cy", Department: "Sales"},
		{ID: "E4", Name: "Di"},
	}
	if _, err := db.NewInsert().Model(&roster).Exec(ctx); err != nil {
		t.Fatalf("insert staff: %v", err)
	}

	repo := NewRepository(db)

	list, err := repo.GetList(dbtest.Admin(), Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Ops" || list[0].StaffCount != 2 || list[1].Name != "Sales" {
		t.Fatalf("unexpected departments %+v", list)
	}

	search := "sal"
	list, err = repo.GetList(dbtest.Admin(), Filter{Search: &search})
	if err != nil || len(list) != 1 || list[0].Name != "Sales" {
		t.Fatalf("search: %+v %v", list, err)
	}

	if _, err := repo.GetList(ctx, Filter{}); web.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %v", err)
	}
}
