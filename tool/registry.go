package tool

import (
	"cmp"
	"context"
	"encoding/json"
	"maps"
	"slices"
	"sync"
)

type entry struct {
	tool    Tool
	handler Handler
}

// Registry maps tool names to provider operations. The MCP server lists
// and dispatches through it; it is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry returns a registry with no tools.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register binds handler to tool.Name. Names are unique: a second
// registration under the same name fails with ErrToolAlreadyRegistered.
func (r *Registry) Register(tool Tool, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.entries[tool.Name]; taken {
		return &ErrToolAlreadyRegistered{Name: tool.Name}
	}
	r.entries[tool.Name] = entry{tool: tool, handler: handler}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(tool Tool, handler Handler) {
	if err := r.Register(tool, handler); err != nil {
		panic(err)
	}
}

// Unregister drops name. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Get returns the handler bound to name.
func (r *Registry) Get(name string) (Handler, bool) {
	e, ok := r.lookup(name)
	return e.handler, ok
}

// GetTool returns the definition registered under name.
func (r *Registry) GetTool(name string) (Tool, bool) {
	e, ok := r.lookup(name)
	return e.tool, ok
}

func (r *Registry) lookup(name string) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// Tools lists every definition ordered by name, which keeps MCP tool
// listings stable.
func (r *Registry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.entries))
	for _, e := range r.entries {
		tools = append(tools, e.tool)
	}
	slices.SortFunc(tools, func(a, b Tool) int { return cmp.Compare(a.Name, b.Name) })
	return tools
}

// Names lists the registered names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.entries))
}

// Len returns the number of tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Execute dispatches call to its handler. Only an unknown tool name is a
// Go error (ErrToolNotFound). A failing operation, such as a GitHub 404 or
// a missing default token, comes back as a Result with IsError set and
// the error text as Content, so it can be relayed to the caller.
func (r *Registry) Execute(ctx context.Context, call Call) (Result, error) {
	e, ok := r.lookup(call.Name)
	if !ok {
		return Result{}, &ErrToolNotFound{Name: call.Name}
	}

	result := Result{CallID: call.ID}
	content, err := e.handler(ctx, call)
	if err != nil {
		result.Content, result.IsError = err.Error(), true
		return result, nil
	}
	result.Content = content
	return result, nil
}

// Registration pairs a definition with its handler so tool sets can be
// built as values and added in one step.
type Registration struct {
	Tool    Tool
	Handler Handler
}

// Func builds a Registration whose parameter schema is derived from the
// struct tags of T and whose handler decodes arguments into T.
// It panics if T has no valid schema.
//
//	tool.Func("github_get_issue", "Fetch one issue",
//	    func(ctx context.Context, args IssueArgs) (string, error) { ... })
func Func[T any](name, description string, fn TypedHandler[T]) Registration {
	return Registration{
		Tool:    Tool{Name: name, Description: description, Parameters: MustSchemaFor[T]()},
		Handler: typed(name, fn),
	}
}

// WithHandler builds a Registration from a raw schema and an untyped handler.
func WithHandler(name, description string, schema json.RawMessage, h Handler) Registration {
	return Registration{
		Tool:    Tool{Name: name, Description: description, Parameters: schema},
		Handler: h,
	}
}

// Add registers regs in order and returns r. It panics on a duplicate name,
// since tool sets are fixed at startup.
func (r *Registry) Add(regs ...Registration) *Registry {
	for _, reg := range regs {
		r.MustRegister(reg.Tool, reg.Handler)
	}
	return r
}
