package pg

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Vagvedi/gitrekt/internal/platform/logger"
)

// Tracer logs statements through pgx's tracing hook
// All logs every statement at debug, otherwise only slow or failed ones are logged
type Tracer struct {
	Log  logger.Logger
	Slow time.Duration
	All  bool

	now func() time.Time
}

type startKey struct{}

type started struct {
	at  time.Time
	sql string
}

var _ pgx.QueryTracer = (*Tracer)(nil)

func (t *Tracer) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

// TraceQueryStart stamps the statement start on ctx
func (t *Tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, startKey{}, started{at: t.clock(), sql: data.SQL})
}

// TraceQueryEnd logs the statement once it finished
func (t *Tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	s, ok := ctx.Value(startKey{}).(started)
	if !ok {
		return
	}
	elapsed := t.clock().Sub(s.at)
	slow := t.Slow > 0 && elapsed >= t.Slow

	log := logger.From(ctx, t.Log)
	evt := log.Debug()
	switch {
	case data.Err != nil:
		evt = log.Warn().Err(data.Err)
	case slow:
		evt = log.Warn()
	case !t.All:
		return
	}
	evt.Str("sql", Compact(s.sql)).
		Dur("elapsed", elapsed).
		Bool("slow", slow).
		Int64("rows", data.CommandTag.RowsAffected()).
		Msg("pg query")
}

// Compact folds runs of whitespace so multi line statements log on one line
func Compact(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
