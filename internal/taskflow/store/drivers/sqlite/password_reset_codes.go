package sqlite

import (
	"context"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store/drivers/sqlite/gen"
)

type resetCodesRepo struct {
	q *gen.Queries
}

func (r *resetCodesRepo) UpsertCode(ctx context.Context, c domain.PasswordResetCode) error {
	return r.q.UpsertPasswordResetCode(ctx, gen.UpsertPasswordResetCodeParams{
		ID:        c.ID,
		Email:     c.Email,
		CodeHash:  c.CodeHash,
		ExpiresAt: toMillis(c.ExpiresAt),
		CreatedAt: toMillis(c.CreatedAt),
	})
}

func (r *resetCodesRepo) GetCodeByEmail(ctx context.Context, email string) (domain.PasswordResetCode, error) {
	row, err := r.q.GetPasswordResetCodeByEmail(ctx, email)
	if err != nil {
		return domain.PasswordResetCode{}, mapNotFound(err)
	}
	return mapResetCode(row), nil
}

func (r *resetCodesRepo) DeleteCodesByEmail(ctx context.Context, email string) error {
	return r.q.DeletePasswordResetCodesByEmail(ctx, email)
}

func (r *resetCodesRepo) DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredPasswordResetCodes(ctx, toMillis(now))
}
