package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/wirahusada/portal-backend/internal/app/models"
	"github.com/wirahusada/portal-backend/internal/db"
	"github.com/wirahusada/portal-backend/internal/pkg/dberrors"
)

// Payment error types
var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// SettledStatuses are the transaksi.status values counted as paid
var SettledStatuses = []string{"lunas", "success", "paid", "settlement"}

var transactionSortColumns = map[string]string{
	"tanggal": "t.tanggal",
	"jumlah":  "t.total",
	"type":    "j.nama_jenis",
}

// PaymentRepository reads the finance store
type PaymentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(conn db.DBTX) *PaymentRepository {
	return &PaymentRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PaymentRepository) transactionSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"t.id", "t.kode_transaksi", "t.nrm", "t.tanggal", "t.total", "t.status",
		"j.nama_jenis", "a.nama_akun", "a.kode_akun",
	).
		From("transaksi t").
		LeftJoin("jenistransaksi j ON j.id = t.jenistransaksi_id").
		LeftJoin("akun a ON a.id = t.akun_debit")
}

func filterConditions(f models.TransactionFilter) squirrel.And {
	where := squirrel.And{squirrel.Eq{"t.nrm": f.NRM}}
	if f.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"t.tanggal": *f.StartDate})
	}
	if f.EndDate != nil {
		// end date is inclusive of the whole day
		where = append(where, squirrel.Lt{"t.tanggal": f.EndDate.AddDate(0, 0, 1)})
	}
	if t := strings.TrimSpace(f.Type); t != "" {
		where = append(where, squirrel.Or{
			squirrel.Eq{"j.kode": t},
			squirrel.ILike{"j.nama_jenis": "%" + t + "%"},
		})
	}
	return where
}

func orderClause(f models.TransactionFilter) string {
	column, ok := transactionSortColumns[f.SortBy]
	if !ok {
		column = transactionSortColumns["tanggal"]
	}
	direction := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

// ListTransactions returns one page of a student's transactions and the total match count
func (r *PaymentRepository) ListTransactions(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, int64, error) {
	where := filterConditions(f)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("transaksi t").
		LeftJoin("jenistransaksi j ON j.id = t.jenistransaksi_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count transactions query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting transactions: %w", err)
	}

	listSQL, listArgs, err := r.transactionSelect().
		Where(where).
		OrderBy(orderClause(f), "t.id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list transactions query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying transactions: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, 0, fmt.Errorf("error scanning transactions: %w", err)
	}
	return items, total, nil
}

// GetTransaction returns one transaction owned by the student
func (r *PaymentRepository) GetTransaction(ctx context.Context, nrm string, id int64) (*models.Transaction, error) {
	query, args, err := r.transactionSelect().
		Where(squirrel.Eq{"t.id": id, "t.nrm": nrm}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transaction: %w", err)
	}

	tx, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Transaction])
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("error scanning transaction: %w", err)
	}
	return tx, nil
}

// GetTransactionLines returns the per-type breakdown of one transaction
func (r *PaymentRepository) GetTransactionLines(ctx context.Context, transactionID int64) ([]models.TransactionLine, error) {
	query, args, err := r.sb.Select("COALESCE(j.nama_jenis, 'Lainnya') AS nama_jenis", "d.jumlah").
		From("detailtransaksi d").
		LeftJoin("jenistransaksi j ON j.id = d.jenistransaksi_id").
		Where(squirrel.Eq{"d.transaksi_id": transactionID}).
		OrderBy("d.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction lines query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transaction lines: %w", err)
	}

	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TransactionLine])
	if err != nil {
		return nil, fmt.Errorf("error scanning transaction lines: %w", err)
	}
	return lines, nil
}

// ListPaymentTypes returns every transaction type ordered by name
func (r *PaymentRepository) ListPaymentTypes(ctx context.Context) ([]models.PaymentType, error) {
	query, args, err := r.sb.Select("id", "kode", "nama_jenis").
		From("jenistransaksi").
		OrderBy("nama_jenis").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build payment types query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying payment types: %w", err)
	}

	types, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.PaymentType])
	if err != nil {
		return nil, fmt.Errorf("error scanning payment types: %w", err)
	}
	return types, nil
}

// SettledTotalsByType sums a student's settled transactions per type
func (r *PaymentRepository) SettledTotalsByType(ctx context.Context, nrm string) ([]models.TypeTotal, error) {
	query, args, err := r.sb.Select("COALESCE(j.nama_jenis, 'Lainnya') AS nama_jenis", "SUM(t.total) AS total").
		From("transaksi t").
		LeftJoin("jenistransaksi j ON j.id = t.jenistransaksi_id").
		Where(squirrel.Eq{"t.nrm": nrm, "LOWER(t.status)": SettledStatuses}).
		GroupBy("1").
		OrderBy("1").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build payment summary query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying payment summary: %w", err)
	}

	totals, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.TypeTotal])
	if err != nil {
		return nil, fmt.Errorf("error scanning payment summary: %w", err)
	}
	return totals, nil
}
