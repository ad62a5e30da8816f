package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSession means no saved login exists. Callers treat it as terminal for
// the view that needed credentials: the fix is to log in again, not retry.
var ErrNoSession = errors.New("auth: no saved session, run 'turnero login'")

// Cache persists the Identity between CLI invocations, sealed with a key
// derived from the configured secret.
type Cache struct {
	path   string
	secret string
}

// NewCache places the cache under the user config dir.
func NewCache(secret string) (*Cache, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("auth: config dir: %w", err)
	}
	return NewCacheAt(filepath.Join(dir, "turnero", "session"), secret), nil
}

// NewCacheAt uses an explicit path.
func NewCacheAt(path, secret string) *Cache {
	return &Cache{path: path, secret: secret}
}

func (c *Cache) Save(id Identity) error {
	if c.secret == "" {
		return errors.New("auth: TURNERO_CACHE_SECRET is required to save a session")
	}
	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	sealed, err := seal(c.secret, raw)
	if err != nil {
		return fmt.Errorf("auth: seal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(c.path, []byte(sealed), 0o600)
}

func (c *Cache) Load() (Identity, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Identity{}, ErrNoSession
		}
		return Identity{}, err
	}
	plain, err := open(c.secret, string(raw))
	if err != nil {
		return Identity{}, fmt.Errorf("auth: unseal session (wrong TURNERO_CACHE_SECRET?): %w", err)
	}
	var id Identity
	if err := json.Unmarshal(plain, &id); err != nil {
		return Identity{}, err
	}
	if !id.LoggedIn() {
		return Identity{}, ErrNoSession
	}
	return id, nil
}

func (c *Cache) Clear() error {
	err := os.Remove(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
