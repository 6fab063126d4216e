package logging

import "context"

type attrsKey struct{}

// ContextWithAttrs returns a copy of ctx carrying key-value pairs that every
// Logger method adds to records logged with that context. Pairs already on
// ctx are kept.
func ContextWithAttrs(ctx context.Context, args ...any) context.Context {
	if len(args) == 0 {
		return ctx
	}
	prev := attrsFromContext(ctx)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

func attrsFromContext(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(attrsKey{}).([]any)
	return attrs
}

// withContextAttrs puts ctx pairs ahead of the call's own pairs.
func withContextAttrs(ctx context.Context, args []any) []any {
	attrs := attrsFromContext(ctx)
	if len(attrs) == 0 {
		return args
	}
	out := make([]any, 0, len(attrs)+len(args))
	out = append(out, attrs...)
	return append(out, args...)
}
