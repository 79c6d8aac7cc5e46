package errors

// errorInfo is the registry entry for one error code.
type errorInfo struct {
	Category   Category
	Message    string
	Suggestion string
	DocURL     string
}

// registry maps stable error codes to their descriptions. Codes are
// grouped by concern; never reuse a retired code.
var registry = map[string]errorInfo{
	// Configuration errors (E100-E119)
	"E100": {
		Category:   CategoryConfig,
		Message:    "configuration file not found",
		Suggestion: "Create loom.json in the project root, or pass --config",
		DocURL:     "https://loom-ui.dev/docs/errors/E100",
	},
	"E101": {
		Category:   CategoryConfig,
		Message:    "configuration file is not valid JSON",
		Suggestion: "Check loom.json for syntax errors",
		DocURL:     "https://loom-ui.dev/docs/errors/E101",
	},
	"E102": {
		Category:   CategoryConfig,
		Message:    "configuration file is not valid YAML",
		Suggestion: "Check loom.yaml for syntax errors",
		DocURL:     "https://loom-ui.dev/docs/errors/E102",
	},
	"E103": {
		Category:   CategoryConfig,
		Message:    "configuration failed validation",
		DocURL:     "https://loom-ui.dev/docs/errors/E103",
	},

	// Bundle statistics errors (E120-E139)
	"E120": {
		Category:   CategoryBundle,
		Message:    "statistics file could not be read",
		Suggestion: "Check the stats file path in loom.json, or run your bundler to produce it",
		DocURL:     "https://loom-ui.dev/docs/errors/E120",
	},
	"E121": {
		Category:   CategoryBundle,
		Message:    "statistics document could not be parsed",
		Suggestion: "The stats file must be bundler-produced JSON; regenerate it",
		DocURL:     "https://loom-ui.dev/docs/errors/E121",
	},
	"E122": {
		Category:   CategoryBundle,
		Message:    "module not found in statistics",
		Suggestion: "Check the file name; module names are matched by suffix after normalization",
		DocURL:     "https://loom-ui.dev/docs/errors/E122",
	},
	"E123": {
		Category:   CategoryBundle,
		Message:    "source file could not be read",
		DocURL:     "https://loom-ui.dev/docs/errors/E123",
	},

	// Serve errors (E140-E159)
	"E140": {
		Category:   CategoryServe,
		Message:    "server failed to start",
		Suggestion: "Check that the address is free and you have permission to bind it",
		DocURL:     "https://loom-ui.dev/docs/errors/E140",
	},

	// CLI usage errors (E160-E179)
	"E160": {
		Category:   CategoryCLI,
		Message:    "invalid command usage",
		Suggestion: "Run 'loom --help' for usage",
		DocURL:     "https://loom-ui.dev/docs/errors/E160",
	},
}

// Lookup returns the registry entry for a code.
func Lookup(code string) (Category, string, bool) {
	info, ok := registry[code]
	return info.Category, info.Message, ok
}
