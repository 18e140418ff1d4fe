package sqlite

import (
	"context"
	"strings"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    toMillis(u.CreatedAt),
		UpdatedAt:    toMillis(u.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdateName(ctx context.Context, userID, name string) error {
	return mapAffected(r.q.UpdateUserName(ctx, gen.UpdateUserNameParams{
		Name:      name,
		UpdatedAt: nowMillis(),
		ID:        userID,
	}))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return mapAffected(r.q.UpdateUserPasswordHash(ctx, gen.UpdateUserPasswordHashParams{
		PasswordHash: newHash,
		UpdatedAt:    nowMillis(),
		ID:           userID,
	}))
}

func (r *usersRepo) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	return mapAffected(r.q.UpdateUserRole(ctx, gen.UpdateUserRoleParams{
		Role:      string(role),
		UpdatedAt: nowMillis(),
		ID:        userID,
	}))
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUser(row))
	}
	return users, nil
}

func (r *usersRepo) SearchNotInProject(
	ctx context.Context,
	projectID, requesterID, query string,
	limit int,
) ([]domain.UserSummary, error) {
	rows, err := r.q.SearchUsersNotInProject(ctx, gen.SearchUsersNotInProjectParams{
		RequesterID: requesterID,
		ProjectID:   projectID,
		Query:       strings.ToLower(strings.TrimSpace(query)),
		MaxResults:  int64(limit),
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapUser(row).Summary())
	}
	return out, nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	count, err := r.q.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
