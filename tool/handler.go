package tool

import "context"

// Handler runs one call. call.Arguments holds the raw JSON arguments; the
// returned string becomes Result.Content.
type Handler func(ctx context.Context, call Call) (string, error)

// TypedHandler receives arguments already decoded into T. See Func.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)
