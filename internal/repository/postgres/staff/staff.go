package staff

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
)

type Repository struct {
	*postgresql.Database
	defaultPassword string
}

// NewRepository returns the roster store. defaultPassword is given to the
// employee login created with every staff member.
func NewRepository(database *postgresql.Database, defaultPassword string) *Repository {
	return &Repository{Database: database, defaultPassword: defaultPassword}
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]entity.Staff, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]entity.Staff, 0)
	q := r.NewSelect().Model(&list).OrderExpr("id ASC")

	if staffID, scoped := claims.Scope(); scoped {
		q.Where("id = ?", staffID)
	}
	if filter.Department != nil {
		q.Where("department = ?", *filter.Department)
	}
	if filter.Search != nil {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(id) LIKE ?", search).WhereOr("LOWER(name) LIKE ?", search)
		})
	}

	if err = q.Scan(ctx); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting staff"), http.StatusInternalServerError)
	}

	return list, nil
}

func (r Repository) GetDetailById(ctx context.Context, id string) (entity.Staff, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.Staff{}, err
	}

	if staffID, scoped := claims.Scope(); scoped && staffID != id {
		return entity.Staff{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	var detail entity.Staff
	err = r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Staff{}, web.NewRequestError(errors.Wrapf(postgres.ErrNotFound, "staff %s", id), http.StatusNotFound)
	}
	if err != nil {
		return entity.Staff{}, web.NewRequestError(errors.Wrap(err, "selecting staff detail"), http.StatusInternalServerError)
	}

	return detail, nil
}

// Create adds a staff member and the linked employee login in one
// transaction. The login's username is the lower cased staff id.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "ID", "Name"); err != nil {
		return CreateResponse{}, err
	}

	return r.create(ctx, request)
}

func (r Repository) create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	detail := entity.Staff{
		ID:        strings.TrimSpace(*request.ID),
		Name:      strings.TrimSpace(*request.Name),
		CreatedAt: time.Now(),
	}
	if request.Department != nil {
		detail.Department = strings.TrimSpace(*request.Department)
	}
	if request.Position != nil {
		detail.Position = strings.TrimSpace(*request.Position)
	}
	if strings.ContainsAny(detail.ID, " \t/") {
		return CreateResponse{}, web.NewRequestError(errors.New("id must not contain spaces or slashes"), http.StatusBadRequest)
	}

	hash, err := auth.HashPassword(r.defaultPassword)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	login := entity.User{
		Username: strings.ToLower(detail.ID),
		Password: hash,
		Role:     auth.RoleEmployee,
		StaffID:  &detail.ID,
	}

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&detail).Exec(ctx); err != nil {
			if postgres.IsUniqueViolation(err) {
				return web.NewRequestError(errors.Wrapf(postgres.ErrDuplicate, "staff id %s", detail.ID), http.StatusConflict)
			}
			return web.NewRequestError(errors.Wrap(err, "creating staff"), http.StatusInternalServerError)
		}

		if _, err := tx.NewInsert().Model(&login).Exec(ctx); err != nil {
			if postgres.IsUniqueViolation(err) {
				return web.NewRequestError(errors.Wrapf(postgres.ErrDuplicate, "username %s", login.Username), http.StatusConflict)
			}
			return web.NewRequestError(errors.Wrap(err, "creating staff login"), http.StatusInternalServerError)
		}

		return nil
	})
	if err != nil {
		return CreateResponse{}, err
	}

	return CreateResponse{Staff: detail, Username: login.Username}, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) (entity.Staff, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return entity.Staff{}, err
	}

	q := r.NewUpdate().Model((*entity.Staff)(nil)).Where("id = ?", request.ID)

	var changed bool
	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		if name == "" {
			return entity.Staff{}, web.NewRequestError(errors.New("name must not be empty"), http.StatusBadRequest)
		}
		q.Set("name = ?", name)
		changed = true
	}
	if request.Department != nil {
		q.Set("department = ?", strings.TrimSpace(*request.Department))
		changed = true
	}
	if request.Position != nil {
		q.Set("position = ?", strings.TrimSpace(*request.Position))
		changed = true
	}
	if !changed {
		return entity.Staff{}, web.NewRequestError(errors.New("nothing to update"), http.StatusBadRequest)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return entity.Staff{}, web.NewRequestError(errors.Wrap(err, "updating staff"), http.StatusInternalServerError)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.Staff{}, web.NewRequestError(errors.Wrapf(postgres.ErrNotFound, "staff %s", request.ID), http.StatusNotFound)
	}

	return r.GetDetailById(ctx, request.ID)
}

// Delete removes the staff member together with their attendance rows and
// login in one transaction. The removed login ids are returned so their
// sessions can be revoked.
func (r Repository) Delete(ctx context.Context, id string) (DeleteResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return DeleteResponse{}, err
	}

	response := DeleteResponse{StaffID: id}

	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model((*entity.User)(nil)).Column("id").Where("staff_id = ?", id).Scan(ctx, &response.UserIDs)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return web.NewRequestError(errors.Wrap(err, "selecting staff logins"), http.StatusInternalServerError)
		}

		if _, err = tx.NewDelete().Model((*entity.User)(nil)).Where("staff_id = ?", id).Exec(ctx); err != nil {
			return web.NewRequestError(errors.Wrap(err, "deleting staff logins"), http.StatusInternalServerError)
		}
		if _, err = tx.NewDelete().Model((*entity.Attendance)(nil)).Where("staff_id = ?", id).Exec(ctx); err != nil {
			return web.NewRequestError(errors.Wrap(err, "deleting staff attendance"), http.StatusInternalServerError)
		}

		res, err := tx.NewDelete().Model((*entity.Staff)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "deleting staff"), http.StatusInternalServerError)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return web.NewRequestError(errors.Wrapf(postgres.ErrNotFound, "staff %s", id), http.StatusNotFound)
		}

		return nil
	})
	if err != nil {
		return DeleteResponse{}, err
	}

	return response, nil
}

// Import creates every row that is not already on the roster. Existing ids
// are reported, not updated.
func (r Repository) Import(ctx context.Context, rows []CreateRequest) (ImportResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return ImportResponse{}, err
	}

	response := ImportResponse{Created: []string{}, Existing: []string{}, Rejected: []int{}}

	for _, row := range rows {
		if err := r.ValidateStruct(&row, "ID", "Name"); err != nil {
			return ImportResponse{}, err
		}

		created, err := r.create(ctx, row)
		if web.StatusOf(err) == http.StatusConflict {
			response.Existing = append(response.Existing, strings.TrimSpace(*row.ID))
			continue
		}
		if err != nil {
			return response, err
		}
		response.Created = append(response.Created, created.ID)
	}

	return response, nil
}

// Badges returns the staff to print QR badges for: one member when id is
// given, everyone otherwise.
func (r Repository) Badges(ctx context.Context, id *string) ([]entity.Staff, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}

	if id != nil {
		detail, err := r.GetDetailById(ctx, *id)
		if err != nil {
			return nil, err
		}
		return []entity.Staff{detail}, nil
	}

	return r.GetList(ctx, Filter{})
}
