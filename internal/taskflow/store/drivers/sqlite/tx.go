package sqlite

import (
	"context"
	"database/sql"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store/drivers/sqlite/gen"
)

type txStore struct {
	tx *sql.Tx
	q  *gen.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{
		tx: tx,
		q:  gen.New(tx),
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits or rolls back; the DB stays open

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                           { return &usersRepo{q: t.q} }
func (t *txStore) RefreshTokens() store.RefreshTokens           { return &refreshTokensRepo{q: t.q} }
func (t *txStore) PasswordResetCodes() store.PasswordResetCodes { return &resetCodesRepo{q: t.q} }
func (t *txStore) Projects() store.Projects                     { return &projectsRepo{q: t.q} }
func (t *txStore) Invitations() store.Invitations               { return &invitationsRepo{q: t.q} }
func (t *txStore) Tasks() store.Tasks                           { return &tasksRepo{q: t.q} }
func (t *txStore) Comments() store.Comments                     { return &commentsRepo{q: t.q} }
func (t *txStore) Activities() store.Activities                 { return &activitiesRepo{q: t.q} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx is opened
