package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config Errors (R100-R199)
	// ============================================

	"R100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "routerctl could not find the configuration file it was pointed at.",
	},
	"R101": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The configuration file could not be parsed as JSON.",
	},
	"R102": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration value is out of range or not one of the allowed values.",
	},
	"R103": {
		Category: CategoryConfig,
		Message:  "Invalid environment file",
		Detail:   "The .env file could not be read.",
	},

	// ============================================
	// Snapshot Errors (R200-R299)
	// ============================================

	"R200": {
		Category: CategorySnapshot,
		Message:  "Snapshot file not found",
		Detail:   "The router state snapshot file does not exist.",
	},
	"R201": {
		Category: CategorySnapshot,
		Message:  "Invalid snapshot",
		Detail:   "The router state snapshot is not valid YAML or describes an inconsistent route table.",
	},
	"R202": {
		Category: CategorySnapshot,
		Message:  "No snapshot configured",
		Detail:   "This command needs a router state snapshot to run against.",
	},

	// ============================================
	// CLI Errors (R300-R399)
	// ============================================

	"R300": {
		Category: CategoryCLI,
		Message:  "Invalid argument",
		Detail:   "Arguments are route models or a trailing JSON object with a \"queryParams\" key.",
	},
	"R301": {
		Category: CategoryCLI,
		Message:  "Transition failed",
		Detail:   "The router engine rejected the transition.",
	},
	"R302": {
		Category: CategoryCLI,
		Message:  "URL generation failed",
		Detail:   "The router engine could not build a URL for the route.",
	},
	"R303": {
		Category: CategoryCLI,
		Message:  "Inspector server failed",
		Detail:   "The HTTP inspector stopped with an error.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
