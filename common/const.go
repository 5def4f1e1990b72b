// Package common provides the configuration and protocol data model shared
// by every layer of webserv: the config loader, router, handlers, and
// connection pipeline all speak the types and constants defined here.
package common

// StatusEntry pairs a status code's wire text with its default user-facing
// message, used by the error-page handler (spec §4.A, §4.E).
type StatusEntry struct {
	Text    string
	Message string
}

// StatusTable is the fixed code -> (text, message) mapping spec.md §4.A
// requires. Unknown codes collapse to 500 (see StatusFor).
var StatusTable = map[string]StatusEntry{
	"200": {"OK", "The request was processed successfully."},
	"301": {"Found", "The resource has moved; see the Location header."},
	"302": {"Found", "The resource has moved; see the Location header."},
	"400": {"Bad Request", "The request could not be understood."},
	"401": {"Unauthorized", "A valid session cookie is required."},
	"403": {"Forbidden", "You do not have permission to access this resource."},
	"404": {"Not Found", "The requested resource was not found."},
	"405": {"Method Not Allowed", "This method is not permitted on this resource."},
	"408": {"Request Timeout", "The request took too long to arrive."},
	"413": {"Payload Too Large", "The request body exceeds this server's limit."},
	"500": {"Internal Server Error", "Something went wrong processing the request."},
}

// StatusFor returns the (text, message) pair for code, collapsing unknown
// codes to 500 per spec.md §4.A.
func StatusFor(code string) (string, string) {
	if e, ok := StatusTable[code]; ok {
		return e.Text, e.Message
	}
	e := StatusTable["500"]
	return e.Text, e.Message
}

// Environment variable names consulted by the file loaders (spec §6) and
// the config loader.
const (
	// PublicPathEnv overrides the compiled-in static/template document root.
	PublicPathEnv = "PUBLIC_PATH"
	// DataPathEnv overrides the JSON-demo data directory.
	DataPathEnv = "DATA_PATH"
	// ConfigPathEnv overrides the default "config.toml" lookup path.
	ConfigPathEnv = "WEBSERV_CONFIG_PATH"
	// CookieSecretEnv, when set, seeds the cookie-signing master secret
	// instead of reading/creating one in the OS keyring.
	CookieSecretEnv = "WEBSERV_COOKIE_SECRET"
	// AccessLogPathEnv overrides the default "access.db" SQLite access
	// log location. Set to the empty string by default, never forced.
	AccessLogPathEnv = "WEBSERV_ACCESS_LOG_PATH"
)

// DefaultAccessLogPath is the access-log database file used when
// AccessLogPathEnv is unset.
const DefaultAccessLogPath = "access.db"

// ReadTimeoutSeconds and WriteTimeoutSeconds are the fixed per-connection
// I/O deadlines spec.md §4.G / §5 mandate.
const (
	ReadTimeoutSeconds  = 10
	WriteTimeoutSeconds = 10
)

// CookiesFileName is the append-only session log spec.md §3/§4.B names.
const CookiesFileName = "cookies.txt"

// DefaultPublicDir and DefaultDataDir are the compiled-in fallbacks used
// when the corresponding environment variable is unset.
const (
	DefaultPublicDir = "build/public"
	DefaultDataDir   = "build/data"
)
