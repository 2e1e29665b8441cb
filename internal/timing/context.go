package timing

import "context"

type ctxKey struct{}

// WithProfiler attaches p to ctx.
func WithProfiler(ctx context.Context, p *Profiler) context.Context {
	if p == nil {
		p = Default
	}
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the Profiler attached to ctx, or Default.
func FromContext(ctx context.Context) *Profiler {
	if ctx == nil {
		return Default
	}
	if p, ok := ctx.Value(ctxKey{}).(*Profiler); ok {
		return p
	}
	return Default
}
