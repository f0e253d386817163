package position

import (
	"context"
	"testing"

	"staffattendance/backend/internal/entity"
	"staffattendance/backend/internal/pkg/repository/postgresql/dbtest"
)

func TestGetList(t *testing.T) {
	db := dbtest.NewDatabase(t)

	roster := []entity.Staff{
		{ID: "E1", Name: "Ann", Department: "Ops", Position: "Driver"},
		{ID: "E2", Name: "Bob", Department: "Ops", Position: "Driver"},
		{ID: "E3", Name: "Cy", Department: "Sales", Position: "Clerk"},
		{ID: "E4", Name: "Di", Department: "Ops"},
	}
	if _, err := db.NewInsert().Model(&roster).Exec(context.Background()); err != nil {
		t.Fatalf("insert staff: %v", err)
	}

	repo := NewRepository(db)

	list, err := repo.GetList(dbtest.Admin(), Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Clerk" || list[1].Name != "Driver" || list[1].StaffCount != 2 {
		t.Fatalf("unexpected positions %+v", list)
	}

	ops := "Ops"
	list, err = repo.GetList(dbtest.As("employee", "E1"), Filter{Department: &ops})
	if err != nil || len(list) != 1 || list[0].Name != "Driver" {
		t.Fatalf("department filter: %+v %v", list, err)
	}
}
