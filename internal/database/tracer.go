package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// multiTracer fans pgx's single tracer slot out to several tracers
// (New Relic, slow query warnings, the local SQL log). pgx discovers the
// batch, copy, prepare and connect hooks by type assertion on the slot,
// so each hook is forwarded to the tracers that implement it.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

var (
	_ pgx.QueryTracer    = (*multiTracer)(nil)
	_ pgx.BatchTracer    = (*multiTracer)(nil)
	_ pgx.CopyFromTracer = (*multiTracer)(nil)
	_ pgx.PrepareTracer  = (*multiTracer)(nil)
	_ pgx.ConnectTracer  = (*multiTracer)(nil)
)

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range mt.tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range mt.tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

func (mt *multiTracer) TraceBatchStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceBatchStartData) context.Context {
	for _, t := range mt.tracers {
		if bt, ok := t.(pgx.BatchTracer); ok {
			ctx = bt.TraceBatchStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceBatchQuery(ctx context.Context, conn *pgx.Conn, data pgx.TraceBatchQueryData) {
	for _, t := range mt.tracers {
		if bt, ok := t.(pgx.BatchTracer); ok {
			bt.TraceBatchQuery(ctx, conn, data)
		}
	}
}

func (mt *multiTracer) TraceBatchEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceBatchEndData) {
	for _, t := range mt.tracers {
		if bt, ok := t.(pgx.BatchTracer); ok {
			bt.TraceBatchEnd(ctx, conn, data)
		}
	}
}

func (mt *multiTracer) TraceCopyFromStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceCopyFromStartData) context.Context {
	for _, t := range mt.tracers {
		if ct, ok := t.(pgx.CopyFromTracer); ok {
			ctx = ct.TraceCopyFromStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceCopyFromEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceCopyFromEndData) {
	for _, t := range mt.tracers {
		if ct, ok := t.(pgx.CopyFromTracer); ok {
			ct.TraceCopyFromEnd(ctx, conn, data)
		}
	}
}

func (mt *multiTracer) TracePrepareStart(ctx context.Context, conn *pgx.Conn, data pgx.TracePrepareStartData) context.Context {
	for _, t := range mt.tracers {
		if pt, ok := t.(pgx.PrepareTracer); ok {
			ctx = pt.TracePrepareStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TracePrepareEnd(ctx context.Context, conn *pgx.Conn, data pgx.TracePrepareEndData) {
	for _, t := range mt.tracers {
		if pt, ok := t.(pgx.PrepareTracer); ok {
			pt.TracePrepareEnd(ctx, conn, data)
		}
	}
}

func (mt *multiTracer) TraceConnectStart(ctx context.Context, data pgx.TraceConnectStartData) context.Context {
	for _, t := range mt.tracers {
		if ct, ok := t.(pgx.ConnectTracer); ok {
			ctx = ct.TraceConnectStart(ctx, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceConnectEnd(ctx context.Context, data pgx.TraceConnectEndData) {
	for _, t := range mt.tracers {
		if ct, ok := t.(pgx.ConnectTracer); ok {
			ct.TraceConnectEnd(ctx, data)
		}
	}
}
