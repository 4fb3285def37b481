package db

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type traceStartKey struct{}

type traceStart struct {
	sql   string
	args  int
	start time.Time
}

// QueryTracer logs every statement executed on a pool at debug level
type QueryTracer struct {
	pool string
	log  zerolog.Logger
	now  func() time.Time
}

// NewQueryTracer creates a tracer tagged with the pool name
func NewQueryTracer(pool string, log zerolog.Logger) *QueryTracer {
	return &QueryTracer{pool: pool, log: log, now: time.Now}
}

// TraceQueryStart implements pgx.QueryTracer
func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceStartKey{}, traceStart{
		sql:   collapseWhitespace(data.SQL),
		args:  len(data.Args),
		start: t.now(),
	})
}

// TraceQueryEnd implements pgx.QueryTracer
func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceStartKey{}).(traceStart)
	if !ok {
		return
	}

	event := t.log.Debug()
	if data.Err != nil {
		event = t.log.Warn().Err(data.Err)
	}
	event.
		Str("pool", t.pool).
		Str("sql", st.sql).
		Int("args", st.args).
		Dur("duration", t.now().Sub(st.start)).
		Int64("rows", data.CommandTag.RowsAffected()).
		Msg("query")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
