package common

// Method is an HTTP request method as recognized by the router.
type Method string

const (
	MethodGet           Method = "GET"
	MethodPost          Method = "POST"
	MethodDelete        Method = "DELETE"
	MethodUninitialized Method = ""
)

// Version is the wire-parsed HTTP version string. Only 1.x semantics are
// implemented; HTTP/2.0 is recognized but handled identically to 1.1.
type Version string

const (
	HTTP11        Version = "HTTP/1.1"
	HTTP20        Version = "HTTP/2.0"
	VersionUninit Version = ""
)

// Route is a routing policy attached to an alias (a URL path prefix of the
// form "/x/" or "/"). See spec §3 for field semantics.
type Route struct {
	Alias       string            `toml:"alias"`
	Pages       []string          `toml:"pages"`
	DefaultPage string            `toml:"default_page"`
	CheckCookie bool              `toml:"check_cookie"`
	Redirect    map[string]string `toml:"redirect"`
	Links       []string          `toml:"links"`
	Methods     []string          `toml:"methods"`

	// RedirectConfigured is true when the TOML source explicitly set a
	// "redirect" table for this route, even an empty one. Redirect alone
	// cannot tell "no redirect configured" (nil map) apart from
	// "configured as empty" (also len 0) once a config library has
	// normalized both to a zero-length map, so R1 validation
	// (routes.OkCountRedirect) consults this flag instead of Redirect's
	// length alone. Set by internal/config.Load from TOML metadata;
	// hand-built Route literals must set it explicitly to exercise the
	// present-but-empty case.
	RedirectConfigured bool `toml:"-"`
}

// HasPage reports whether page is listed in the route's Pages set.
func (r *Route) HasPage(page string) bool {
	for _, p := range r.Pages {
		if p == page {
			return true
		}
	}
	return false
}

// HasLink reports whether url is listed in the route's Links set.
func (r *Route) HasLink(url string) bool {
	for _, l := range r.Links {
		if l == url {
			return true
		}
	}
	return false
}

// AllowsMethod reports whether method is in the route's Methods set.
func (r *Route) AllowsMethod(method string) bool {
	for _, m := range r.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// RedirectEntry returns the single (new_alias, new_file) pair in
// Redirect — the destination alias and the file to serve under it, per
// spec §4.E. Callers must only invoke this after a ServerConfig has
// passed R1 validation (config.Validate), which guarantees exactly one
// entry exists.
func (r *Route) RedirectEntry() (newAlias, newFile string, ok bool) {
	for k, v := range r.Redirect {
		return k, v, true
	}
	return "", "", false
}

// ServerConfig describes one virtual host: an IP, one or more ports, a
// document root, routing table, error pages, and a CGI extension map.
type ServerConfig struct {
	HostName         string            `toml:"host_name"`
	Host             string            `toml:"host"`
	Ports            []int             `toml:"ports"`
	Root             string            `toml:"root"`
	ErrorPages       map[string]string `toml:"error_pages"`
	ClientBodyLimit  int64             `toml:"client_body_limit"`
	Routes           []Route           `toml:"routes"`
	CGIExtensions    map[string]string `toml:"cgi_extensions"`
	DirectoryListing bool              `toml:"directory_listing"`
}

// Config is the process-wide, immutable-after-load sequence of virtual
// hosts.
type Config struct {
	Servers []ServerConfig `toml:"servers"`
}

// Request is the parsed form of an inbound HTTP/1.x request. Headers are
// keyed verbatim (case-sensitive), matching the legacy behavior spec.md
// §3 calls out explicitly.
type Request struct {
	Method   Method
	Version  Version
	Resource string
	Headers  map[string]string
	MsgBody  string
	RawBody  []byte
}

// Response is the in-memory form of an outbound HTTP/1.x response, ready
// for serialization by the httpmsg package. Raw, when set, is emitted
// verbatim by httpmsg.Serialize instead of the structured fields — used
// for the literal redirect strings spec §4.F mandates.
type Response struct {
	Version    Version
	StatusCode string
	StatusText string
	Headers    map[string]string
	Body       string
	Raw        []byte
}
