package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
	"github.com/wirahusada/portal-backend/internal/app/models/dto/enums"
	"github.com/wirahusada/portal-backend/internal/db"
)

const (
	wismonAppName   = "Wirahusada Monitoring Keuangan"
	studentRoleName = "Mahasiswa"
)

// CreateDefaultData makes sure the identity store knows the application and
// role that self-registered accounts are granted. Existing rows are left alone.
func CreateDefaultData(ctx context.Context, sso db.DBTX, lgr zerolog.Logger) error {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	lgr.Info().Msg("Checking/Creating default identity data (app/role)...")
	var finalErr error

	inserts := []struct {
		what string
		stmt squirrel.InsertBuilder
	}{
		{
			what: "app " + string(enums.AppWismon),
			stmt: sb.Insert("app").
				Columns("id", "nama_app").
				Values(string(enums.AppWismon), wismonAppName),
		},
		{
			what: "role " + string(enums.RoleStudent),
			stmt: sb.Insert("role").
				Columns("id", "nama_role").
				Values(string(enums.RoleStudent), studentRoleName),
		},
	}

	for _, ins := range inserts {
		query, args, err := ins.stmt.Suffix("ON CONFLICT (id) DO NOTHING").ToSql()
		if err != nil {
			finalErr = errors.Join(finalErr, fmt.Errorf("build %s: %w", ins.what, err))
			continue
		}

		tag, err := sso.Exec(ctx, query, args...)
		if err != nil {
			lgr.Error().Err(err).Str("row", ins.what).Msg("Error creating default identity row")
			finalErr = errors.Join(finalErr, fmt.Errorf("create %s: %w", ins.what, err))
			continue
		}

		if tag.RowsAffected() > 0 {
			lgr.Info().Str("row", ins.what).Msg("Default identity row created")
		} else {
			lgr.Debug().Str("row", ins.what).Msg("Default identity row already exists")
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
