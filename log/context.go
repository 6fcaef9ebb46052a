package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

// NewCtx attaches entry to ctx. The returned entry carries ctx.
func NewCtx(ctx context.Context, entry *logrus.Entry) (context.Context, *logrus.Entry) {
	ctx = context.WithValue(ctx, loggerKey{}, entry)

	return ctx, bindCtx(ctx, entry)
}

// FromCtx returns the entry attached to ctx or a fresh entry of the global logger
func FromCtx(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(loggerKey{}).(*logrus.Entry); ok {
		// ctx may be a child of the context the entry was stored in
		return bindCtx(ctx, entry)
	}

	return logrus.NewEntry(Log()).WithContext(ctx)
}

// FromCtxWithPrefix is FromCtx with the prefix field overridden
func FromCtxWithPrefix(ctx context.Context, prefix string) *logrus.Entry {
	return FromCtx(ctx).WithField("prefix", prefix)
}

// CtxWithFields adds fields to the entry attached to ctx
func CtxWithFields(ctx context.Context, fields logrus.Fields) (context.Context, *logrus.Entry) {
	return NewCtx(ctx, FromCtx(ctx).WithFields(fields))
}

func bindCtx(ctx context.Context, entry *logrus.Entry) *logrus.Entry {
	bound := *entry
	bound.Context = ctx

	return &bound
}
