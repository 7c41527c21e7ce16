package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type slowQueryStartKey struct{}

type slowQueryStart struct {
	at  time.Time
	sql string
}

// slowQueryTracer warns about statements that run longer than threshold.
// It is installed in every env, unlike the full query log.
type slowQueryTracer struct {
	threshold time.Duration
	log       *zerolog.Logger
	now       func() time.Time
}

func newSlowQueryTracer(threshold time.Duration, log *zerolog.Logger) *slowQueryTracer {
	return &slowQueryTracer{threshold: threshold, log: log, now: time.Now}
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, slowQueryStartKey{}, slowQueryStart{at: t.now(), sql: data.SQL})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(slowQueryStartKey{}).(slowQueryStart)
	if !ok {
		return
	}

	elapsed := t.now().Sub(start.at)
	if elapsed < t.threshold {
		return
	}

	e := t.log.Warn().
		Dur("duration", elapsed).
		Dur("threshold", t.threshold).
		Str("sql", start.sql).
		Str("command_tag", data.CommandTag.String())
	if data.Err != nil {
		e = e.Err(data.Err)
	}
	e.Msg("slow query")
}
