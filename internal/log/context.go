package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey string

const (
	collectionKey ctxKey = "collection"
	productIDKey  ctxKey = "product_id"
)

// ContextWithCollection stores the catalogue collection name in the context.
func ContextWithCollection(ctx context.Context, name string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, collectionKey, name)
}

// ContextWithProductID stores a product identifier in the context.
func ContextWithProductID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, productIDKey, id)
}

// CollectionFromContext extracts the collection name from context if present.
func CollectionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(collectionKey).(string); ok {
		return v
	}
	return ""
}

// ProductIDFromContext extracts the product identifier from context if present.
func ProductIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(productIDKey).(string); ok {
		return v
	}
	return ""
}

// WithContext enriches the supplied logger with correlation fields from ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	if ctx == nil {
		return logger
	}
	builder := logger.With()
	added := false
	if c := CollectionFromContext(ctx); c != "" {
		builder = builder.Str(FieldCollection, c)
		added = true
	}
	if id := ProductIDFromContext(ctx); id != "" {
		builder = builder.Str(FieldProductID, id)
		added = true
	}
	if !added {
		return logger
	}
	return builder.Logger()
}

// FromContext returns a logger from the context, or the base logger if not present.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := Base()
		return &l
	}
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		b := Base()
		return &b
	}
	return l
}
