package logging

import (
	"context"

	"go.uber.org/zap"
)

// ContextLogger .
type ContextLogger string

// ContextLoggerKey logger key in request context
const ContextLoggerKey ContextLogger = "logger"

// SetLoggerInContext set logger into target context
func SetLoggerInContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ContextLoggerKey, logger)
}

// ExtractLoggerFromContext try to extract logger from context
func ExtractLoggerFromContext(ctx context.Context) *zap.Logger {
	return ctx.Value(ContextLoggerKey).(*zap.Logger)
}
