// Package tool exposes provider capabilities as named tools with JSON
// Schema parameters, for use by the MCP server and other callers that
// dispatch operations by name.
//
// # Basic Usage
//
// Build a registry from a configured connector. Tools are added for each
// provider registered under its conventional ID:
//
//	connector.SetDefaultToken(os.Getenv("GITHUB_TOKEN"))
//	registry := tool.NewConnectorRegistry(connector)
//
//	result, err := registry.Execute(ctx, tool.Call{
//	    Name:      "github_get_issue",
//	    Arguments: `{"number": 42}`,
//	})
//
// Every call runs a complete chain (connect, authenticate, cast, call)
// against a fresh provider instance, so tool calls are independent.
//
// # Custom Tools
//
// Func derives the parameter schema from struct tags on the argument type:
//
//	type GreetArgs struct {
//	    Name string `json:"name" desc:"Who to greet" required:"true"`
//	}
//
//	registry.Add(tool.Func("greet", "Greet someone",
//	    func(ctx context.Context, args GreetArgs) (string, error) {
//	        return "Hello, " + args.Name, nil
//	    }))
//
// Handler errors are reported in Result.IsError rather than as Go errors,
// so callers can relay them.
package tool
