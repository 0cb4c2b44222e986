package errors

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Remote resource errors (R101-R119)
	// ============================================

	"R101": {
		Category: CategoryTransport,
		Message:  "Remote request failed",
		Detail:   "The request could not be sent or no response was received. Check that the resource URL is reachable.",
	},
	"R102": {
		Category: CategoryStatus,
		Message:  "Unexpected response status",
		Detail:   "The server answered with a status code the operation does not accept (201 for create, 200 for update, 204 for delete).",
	},
	"R103": {
		Category: CategoryDecode,
		Message:  "Malformed JSON response",
		Detail:   "The response body could not be decoded as JSON into the expected shape.",
	},

	// ============================================
	// Configuration errors (R120-R129)
	// ============================================

	"R120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or parsed.",
	},
	"R121": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No rstore.json or rstore.yaml was found.",
	},
	"R122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// CLI errors (R130-R139)
	// ============================================

	"R130": {
		Category: CategoryCLI,
		Message:  "Unknown resource",
		Detail:   "No base URL is configured for this resource.",
	},
	"R131": {
		Category: CategoryCLI,
		Message:  "Operation failed",
		Detail:   "The store reported an error status for this operation.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
