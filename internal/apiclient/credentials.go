package apiclient

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Credentials is the cookie set the API issued to one browser session.
// The client attaches it to outgoing requests and folds Set-Cookie headers
// back into it. Safe for concurrent use.
type Credentials struct {
	mu      sync.Mutex
	cookies map[string]string
	changed bool
}

// NewCredentials starts from a stored snapshot. A nil map is fine.
func NewCredentials(snapshot map[string]string) *Credentials {
	c := &Credentials{cookies: make(map[string]string, len(snapshot))}
	for k, v := range snapshot {
		c.cookies[k] = v
	}
	return c
}

// Snapshot returns a copy suitable for persisting in the session.
func (c *Credentials) Snapshot() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.cookies))
	for k, v := range c.cookies {
		out[k] = v
	}
	return out
}

// Changed reports whether a response modified the cookie set.
func (c *Credentials) Changed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.changed
}

func (c *Credentials) attach(req *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.cookies))
	for name := range c.cookies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		req.AddCookie(&http.Cookie{Name: name, Value: c.cookies[name]})
	}
}

func (c *Credentials) update(set []*http.Cookie) {
	if len(set) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for _, ck := range set {
		expired := ck.MaxAge < 0 || (!ck.Expires.IsZero() && ck.Expires.Before(now))
		if expired {
			if _, ok := c.cookies[ck.Name]; ok {
				delete(c.cookies, ck.Name)
				c.changed = true
			}
			continue
		}
		if c.cookies[ck.Name] != ck.Value {
			c.cookies[ck.Name] = ck.Value
			c.changed = true
		}
	}
}

type credentialsKey struct{}

// WithCredentials scopes upstream calls made with ctx to one browser session.
func WithCredentials(ctx context.Context, creds *Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFrom returns the credentials bound to ctx, or nil.
func CredentialsFrom(ctx context.Context) *Credentials {
	creds, _ := ctx.Value(credentialsKey{}).(*Credentials)
	return creds
}
