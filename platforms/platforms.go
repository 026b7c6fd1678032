package platforms

import (
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// Category groups platforms by the kind of content they host
type Category string

const (
	CategoryVideo    Category = "video"
	CategoryMusic    Category = "music"
	CategorySocial   Category = "social"
	CategoryShopping Category = "shopping"
	CategoryOther    Category = "other"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryVideo, CategoryMusic, CategorySocial, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

// Kind is the URL shape a registry match resolved to
type Kind string

const (
	KindEmbed   Kind = "embed"
	KindSocial  Kind = "social"
	KindProduct Kind = "product"
)

// EmbedPattern matches a content URL. IDGroup is the capture group holding the
// content id; TypeGroup, when non-zero, holds the content type segment.
// ContentType fixes the type for patterns that only match one shape.
type EmbedPattern struct {
	Regexp      *regexp.Regexp
	IDGroup     int
	TypeGroup   int
	ContentType string
}

// ProfilePattern matches an account URL with the username in UsernameGroup.
// Query patterns run against the key that keeps the query string.
type ProfilePattern struct {
	Regexp        *regexp.Regexp
	UsernameGroup int
	Query         bool
}

// ProductPattern matches a product detail URL with the SKU in SKUGroup
type ProductPattern struct {
	Regexp   *regexp.Regexp
	SKUGroup int
}

// Definition describes one platform. Definitions are immutable once registered.
type Definition struct {
	ID       string
	Name     string
	Category Category
	Domains  []string

	Embeds   []EmbedPattern
	Profiles []ProfilePattern
	Products []ProductPattern

	// Exclude suppresses embed matching for URLs that look like content but
	// are listings or internal pages.
	Exclude []*regexp.Regexp

	// Reserved lists first path segments the platform routes to its own
	// pages. They never resolve to a profile.
	Reserved []string

	EmbedURLTemplate string // {id} and {type} placeholders
	OEmbedEndpoint   string
	ProfileTemplate  string // {username} placeholder, defaults to https://{domain}/{username}
}

// HasOEmbed reports whether the platform exposes an oEmbed endpoint
func (d *Definition) HasOEmbed() bool {
	return d.OEmbedEndpoint != ""
}

func (d *Definition) reserves(username string) bool {
	for _, r := range d.Reserved {
		if strings.EqualFold(r, username) {
			return true
		}
	}
	return false
}

// ProfileURL returns the canonical profile URL for username
func (d *Definition) ProfileURL(username string) string {
	if d.ProfileTemplate != "" {
		return strings.ReplaceAll(d.ProfileTemplate, "{username}", username)
	}
	if len(d.Domains) == 0 {
		return ""
	}
	return "https://" + d.Domains[0] + "/" + username
}

// Match is the result of matching a URL against the registry
type Match struct {
	Platform    *Definition
	Kind        Kind
	ContentID   string
	ContentType string
	Username    string
	SKU         string
}

// Registry indexes platform definitions by id and domain
type Registry struct {
	defs     []*Definition
	byID     map[string]*Definition
	byDomain map[string]*Definition
	protocol []*Definition // definitions without domains, such as mailto
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in registry, constructed on first use
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New(builtin()...)
	})
	return defaultRegistry
}

// New creates a registry from defs. When two definitions claim the same id
// or domain the first one wins.
func New(defs ...*Definition) *Registry {
	r := &Registry{
		byID:     make(map[string]*Definition, len(defs)),
		byDomain: make(map[string]*Definition),
	}
	for _, def := range defs {
		if def == nil || def.ID == "" {
			continue
		}
		if _, exists := r.byID[def.ID]; exists {
			continue
		}
		r.byID[def.ID] = def
		r.defs = append(r.defs, def)
		if len(def.Domains) == 0 {
			r.protocol = append(r.protocol, def)
			continue
		}
		for _, domain := range def.Domains {
			domain = NormalizeDomain(domain)
			if _, taken := r.byDomain[domain]; !taken {
				r.byDomain[domain] = def
			}
		}
	}
	return r
}

// Get looks up a platform by id
func (r *Registry) Get(id string) (*Definition, bool) {
	def, ok := r.byID[id]
	return def, ok
}

// All returns the registered definitions in registration order
func (r *Registry) All() []*Definition {
	out := make([]*Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// ByDomain looks up a platform by host name. Subdomains resolve to their
// closest registered parent, so clips.twitch.tv finds twitch.
func (r *Registry) ByDomain(domain string) (*Definition, bool) {
	d := NormalizeDomain(domain)
	for d != "" {
		if def, ok := r.byDomain[d]; ok {
			return def, true
		}
		i := strings.IndexByte(d, '.')
		if i < 0 {
			break
		}
		d = d[i+1:]
		if !strings.Contains(d, ".") {
			break
		}
	}
	return nil, false
}

// Match resolves rawURL to a platform and URL shape. Embed shapes are tried
// before profile shapes, and profile shapes before product shapes, so a post
// on a social domain never resolves to the account that posted it.
func (r *Registry) Match(rawURL string) (Match, bool) {
	raw := strings.TrimSpace(rawURL)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "mailto:") {
		return r.matchProtocol("mailto:" + raw[7:])
	}

	key, pathKey, host, ok := matchKeys(raw)
	if !ok {
		return Match{}, false
	}
	def, ok := r.ByDomain(host)
	if !ok {
		return Match{}, false
	}

	if m, ok := matchEmbed(def, key); ok {
		return m, true
	}
	if m, ok := matchProfile(def, key, pathKey); ok {
		return m, true
	}
	for _, p := range def.Products {
		if g := p.Regexp.FindStringSubmatch(key); g != nil {
			return Match{Platform: def, Kind: KindProduct, SKU: group(g, p.SKUGroup)}, true
		}
	}
	return Match{}, false
}

func (r *Registry) matchProtocol(key string) (Match, bool) {
	for _, def := range r.protocol {
		if m, ok := matchProfile(def, key, key); ok {
			return m, true
		}
	}
	return Match{}, false
}

func matchEmbed(def *Definition, key string) (Match, bool) {
	for _, ex := range def.Exclude {
		if ex.MatchString(key) {
			return Match{}, false
		}
	}
	for _, p := range def.Embeds {
		g := p.Regexp.FindStringSubmatch(key)
		if g == nil {
			continue
		}
		id := group(g, p.IDGroup)
		if id == "" {
			continue
		}
		contentType := p.ContentType
		if p.TypeGroup > 0 {
			contentType = strings.ToLower(group(g, p.TypeGroup))
		}
		return Match{Platform: def, Kind: KindEmbed, ContentID: id, ContentType: contentType}, true
	}
	return Match{}, false
}

func matchProfile(def *Definition, key, pathKey string) (Match, bool) {
	for _, p := range def.Profiles {
		subject := pathKey
		if p.Query {
			subject = key
		}
		g := p.Regexp.FindStringSubmatch(subject)
		if g == nil {
			continue
		}
		username := group(g, p.UsernameGroup)
		if username == "" || len(username) > MaxUsernameLength || IsReserved(username) || def.reserves(username) {
			continue
		}
		return Match{Platform: def, Kind: KindSocial, Username: username}, true
	}
	return Match{}, false
}

func group(g []string, i int) string {
	if i <= 0 || i >= len(g) {
		return ""
	}
	return g[i]
}

// NormalizeDomain lowercases a host and strips the port and the www. or m.
// prefixes that never change which platform a URL belongs to.
func NormalizeDomain(host string) string {
	h := strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndexByte(h, ':'); i >= 0 && !strings.Contains(h[i:], "]") {
		h = h[:i]
	}
	h = strings.TrimSuffix(h, ".")
	for _, prefix := range []string{"www.", "m.", "mobile."} {
		if strings.HasPrefix(h, prefix) {
			h = h[len(prefix):]
			break
		}
	}
	return h
}

// matchKeys builds the strings patterns run against: the normalized host plus
// path and query, and the same without the query.
func matchKeys(raw string) (key, pathKey, host string, ok bool) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", "", "", false
	}
	host = NormalizeDomain(u.Host)
	path := strings.TrimRight(u.EscapedPath(), "/")
	pathKey = host + path
	key = pathKey
	if u.RawQuery != "" {
		key += "?" + u.RawQuery
	}
	return key, pathKey, host, true
}
