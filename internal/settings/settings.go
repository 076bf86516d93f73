// Package settings persists the operator's flat key-value settings
// (exchange credentials and setup flags) in a JSON file.
package settings

import (
	"os"
	"sort"
	"sync"

	"github.com/spf13/viper"

	"github.com/vadimmalykhin/binance-icons-toolkit/internal/atomicfile"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/constants"
	"github.com/vadimmalykhin/binance-icons-toolkit/pkg/errors"
)

// Keys.
const (
	KeyAPIKey = "key"
	KeySecret = "secret"
	KeySetup  = "setup"
	KeyUnsafe = "unsafe"
)

// Store is a JSON settings file backed by its own viper instance.
type Store struct {
	mu   sync.Mutex
	path string
	v    *viper.Viper
}

// Open loads the settings file at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Discard removes an unreadable settings file at path and returns an
// empty store for it.
func Discard(path string) (*Store, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, errors.WrapIO("delete", path, err)
	}
	return Open(path)
}

// Load (re)reads the settings file.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if _, err := os.Stat(s.path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return errors.NewConfigError("settings", "cannot read "+s.path, err)
		}
	} else if !os.IsNotExist(err) {
		return errors.WrapIO("read", s.path, err)
	}
	s.v = v
	return nil
}

// Path returns the settings file path.
func (s *Store) Path() string { return s.path }

// Size is the number of stored keys.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.v.AllKeys())
}

// Keys returns the stored keys in order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := s.v.AllKeys()
	sort.Strings(keys)
	return keys
}

// Get returns the raw value of key, or nil.
func (s *Store) Get(key string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.Get(key)
}

// GetString returns the string value of key.
func (s *Store) GetString(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(key)
}

// GetBool returns the boolean value of key.
func (s *Store) GetBool(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetBool(key)
}

// Set stores one value and saves the file.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(key, value)
	return s.save(s.v.AllSettings())
}

// Sets replaces every stored value with values and saves the file.
func (s *Store) Sets(values map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(values); err != nil {
		return err
	}
	return s.reset(values)
}

// Delete removes key and saves the file.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.v.AllSettings()
	delete(all, key)
	if err := s.save(all); err != nil {
		return err
	}
	return s.reset(all)
}

// Unlink removes the settings file and clears the store.
func (s *Store) Unlink() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", s.path, err)
	}
	return s.reset(nil)
}

// IsSetup reports whether setup has completed.
func (s *Store) IsSetup() bool {
	return s.GetBool(KeySetup)
}

// Credentials returns the stored exchange key and secret.
func (s *Store) Credentials() (key, secret string, err error) {
	key, secret = s.GetString(KeyAPIKey), s.GetString(KeySecret)
	if key == "" || secret == "" {
		return "", "", errors.ErrAPIKeyRequired
	}
	return key, secret, nil
}

func (s *Store) save(values map[string]any) error {
	if values == nil {
		values = map[string]any{}
	}
	return atomicfile.WriteJSON(s.path, values, "", constants.SecureFilePermissions)
}

func (s *Store) reset(values map[string]any) error {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	for k, val := range values {
		v.Set(k, val)
	}
	s.v = v
	return nil
}
