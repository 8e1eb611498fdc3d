package tool

import (
	"context"
	"encoding/json"
)

// Bind creates a Tool and Handler from a typed function.
// The JSON schema for tool parameters is automatically generated
// from struct tags on type T.
//
// Example:
//
//	type CloseArgs struct {
//	    Number int `json:"number" desc:"Issue number" required:"true" min:"1"`
//	}
//
//	t, h := tool.Bind("close_issue", "Close an issue",
//	    func(ctx context.Context, args CloseArgs) (string, error) {
//	        // implementation
//	        return "closed", nil
//	    })
func Bind[T any](name, description string, fn TypedHandler[T]) (Tool, Handler, error) {
	schema, err := SchemaFor[T]()
	if err != nil {
		return Tool{}, nil, err
	}

	t := Tool{
		Name:        name,
		Description: description,
		Parameters:  schema,
	}
	return t, typed(name, fn), nil
}

// MustBind is like Bind but panics on error.
// This is useful for initialization code where errors should be fatal.
func MustBind[T any](name, description string, fn TypedHandler[T]) (Tool, Handler) {
	t, h, err := Bind(name, description, fn)
	if err != nil {
		panic(err)
	}
	return t, h
}

// BindTo creates a tool from a typed function and registers it directly to a Registry.
// This is a convenience function combining Bind and Registry.Register.
func BindTo[T any](r *Registry, name, description string, fn TypedHandler[T]) error {
	t, h, err := Bind(name, description, fn)
	if err != nil {
		return err
	}
	return r.Register(t, h)
}

// MustBindTo is like BindTo but panics on error.
func MustBindTo[T any](r *Registry, name, description string, fn TypedHandler[T]) {
	if err := BindTo(r, name, description, fn); err != nil {
		panic(err)
	}
}

// typed adapts fn to a Handler. Empty arguments decode as the zero value.
func typed[T any](name string, fn TypedHandler[T]) Handler {
	return func(ctx context.Context, call Call) (string, error) {
		var args T
		if call.Arguments != "" {
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return "", &ErrInvalidArguments{Name: name, Err: err}
			}
		}
		return fn(ctx, args)
	}
}
