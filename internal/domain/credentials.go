package domain

import (
	"fmt"
	"strings"
)

// Credentials are the four OAuth 1.0a values needed to post.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// Missing returns the config keys that are empty, in a stable order.
func (c Credentials) Missing() []string {
	var out []string
	for _, f := range []struct {
		key string
		val string
	}{
		{"consumer_key", c.ConsumerKey},
		{"consumer_secret", c.ConsumerSecret},
		{"access_token", c.AccessToken},
		{"access_token_secret", c.AccessTokenSecret},
	} {
		if strings.TrimSpace(f.val) == "" {
			out = append(out, f.key)
		}
	}
	return out
}

// Validate fails with KindCredential when any field is blank.
func (c Credentials) Validate() error {
	missing := c.Missing()
	if len(missing) == 0 {
		return nil
	}
	return &OpError{
		Op:   "credentials.validate",
		Kind: KindCredential,
		Err:  fmt.Errorf("missing %s: %w", strings.Join(missing, ", "), ErrCredential),
	}
}
