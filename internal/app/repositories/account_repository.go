package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/wirahusada/portal-backend/internal/app/models"
	"github.com/wirahusada/portal-backend/internal/app/models/dto/enums"
	"github.com/wirahusada/portal-backend/internal/db"
	"github.com/wirahusada/portal-backend/internal/pkg/dberrors"
	"github.com/wirahusada/portal-backend/internal/pkg/logger"
)

// Account error types
var (
	ErrUsernameTaken = errors.New("username already taken")
)

// AccountRepository manages student logins, which span the academic
// user_mahasiswa table and the identity store's user and user_role tables.
type AccountRepository struct {
	wis   db.DBTX
	sso   db.DBTX
	wisTx db.Transactor
	ssoTx db.Transactor
	sb    squirrel.StatementBuilderType
}

// NewAccountRepository creates a new AccountRepository over the academic and identity pools
func NewAccountRepository(wis, sso *db.PostgresDB) *AccountRepository {
	return newAccountRepository(wis.Pool, sso.Pool, wis, sso)
}

func newAccountRepository(wis, sso db.DBTX, wisTx, ssoTx db.Transactor) *AccountRepository {
	return &AccountRepository{
		wis:   wis,
		sso:   sso,
		wisTx: wisTx,
		ssoTx: ssoTx,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *AccountRepository) exists(ctx context.Context, conn db.DBTX, from string, where squirrel.Sqlizer) (bool, error) {
	sub, args, err := r.sb.Select("1").From(from).Where(where).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var found bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&found); err != nil {
		return false, fmt.Errorf("error checking %s: %w", from, err)
	}
	return found, nil
}

// StudentAccountExists reports whether the NIM already has a login
func (r *AccountRepository) StudentAccountExists(ctx context.Context, nim string) (bool, error) {
	return r.exists(ctx, r.wis, "user_mahasiswa", squirrel.Eq{"nim": nim})
}

// IdentityNameExists reports whether an identity account carries the name
func (r *AccountRepository) IdentityNameExists(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, r.sso, `"user"`, squirrel.Eq{"name": name})
}

// UsernameExists reports whether the username is used in either store
func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	found, err := r.exists(ctx, r.wis, "user_mahasiswa", squirrel.Eq{"username": username})
	if err != nil || found {
		return found, err
	}
	return r.exists(ctx, r.sso, `"user"`, squirrel.Eq{"username": username})
}

func execBuilt(ctx context.Context, conn db.DBTX, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build statement: %w", err)
	}
	_, err = conn.Exec(ctx, query, args...)
	return err
}

// CreateAccount inserts the academic link, the identity user and its student
// role. The identity transaction runs inside the academic one so a failure in
// any insert leaves both stores untouched. If the academic commit fails after
// the identity commit succeeded, the identity rows are deleted again.
func (r *AccountRepository) CreateAccount(ctx context.Context, acc models.NewAccount) error {
	identityCommitted := false

	err := r.wisTx.WithTransaction(ctx, func(ctx context.Context, wisTx pgx.Tx) error {
		if err := execBuilt(ctx, wisTx, r.sb.Insert("user_mahasiswa").
			Columns("username", "nim").
			Values(acc.Username, acc.NIM)); err != nil {
			return wrapInsertError("user_mahasiswa", err)
		}

		err := r.ssoTx.WithTransaction(ctx, func(ctx context.Context, ssoTx pgx.Tx) error {
			if err := execBuilt(ctx, ssoTx, r.sb.Insert(`"user"`).
				Columns("username", "password", "name", "email", "enabled").
				Values(acc.Username, acc.PasswordHash, acc.Name, acc.Email, true)); err != nil {
				return wrapInsertError("user", err)
			}
			if err := execBuilt(ctx, ssoTx, r.sb.Insert("user_role").
				Columns("username", "app", "rid").
				Values(acc.Username, string(enums.AppWismon), string(enums.RoleStudent))); err != nil {
				return wrapInsertError("user_role", err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		identityCommitted = true
		return nil
	})

	if err != nil && identityCommitted {
		logger.Warn().Err(err).Str("username", acc.Username).Msg("Academic commit failed after identity commit, removing identity rows")
		if cErr := r.deleteIdentity(context.WithoutCancel(ctx), acc.Username); cErr != nil {
			logger.Error().Err(cErr).Str("username", acc.Username).Msg("Failed to remove identity rows; manual cleanup required")
		}
	}
	return err
}

func (r *AccountRepository) deleteIdentity(ctx context.Context, username string) error {
	return r.ssoTx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := execBuilt(ctx, tx, r.sb.Delete("user_role").Where(squirrel.Eq{"username": username})); err != nil {
			return err
		}
		return execBuilt(ctx, tx, r.sb.Delete(`"user"`).Where(squirrel.Eq{"username": username}))
	})
}

func wrapInsertError(table string, err error) error {
	if dberrors.IsUniqueViolation(err) {
		return fmt.Errorf("insert %s: %w", table, ErrUsernameTaken)
	}
	return fmt.Errorf("insert %s: %w", table, err)
}
