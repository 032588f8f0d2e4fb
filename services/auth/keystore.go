package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/slumbersage/gjirafa50/logger"
	apperrors "github.com/slumbersage/gjirafa50/pkg/errors"
)

// KeyStore holds the set of accepted API keys, read from a JSON file.
// The file holds either an object whose keys are the API keys or an
// array of key strings.
type KeyStore struct {
	path string
	mu   sync.RWMutex
	keys map[string]struct{}
	log  *logger.Logger
}

// NewKeyStore creates a key store and loads path once
func NewKeyStore(path string) (*KeyStore, error) {
	s := &KeyStore{
		path: path,
		keys: make(map[string]struct{}),
		log:  logger.ForComponent("auth"),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticKeyStore creates a key store over a fixed list of keys
func NewStaticKeyStore(keys ...string) *KeyStore {
	s := &KeyStore{
		keys: make(map[string]struct{}, len(keys)),
		log:  logger.ForComponent("auth"),
	}
	for _, key := range keys {
		s.keys[key] = struct{}{}
	}
	return s
}

// Valid reports whether key is accepted. The empty key never is.
func (s *KeyStore) Valid(key string) bool {
	if key == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of loaded keys
func (s *KeyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Reload rereads the key file. A failed reload keeps the previous keys.
func (s *KeyStore) Reload() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return apperrors.NewConfiguration(fmt.Sprintf("failed to read api keys file %s", s.path), err)
	}

	keys, err := parseKeys(data)
	if err != nil {
		return apperrors.NewConfiguration(fmt.Sprintf("invalid api keys file %s", s.path), err)
	}

	s.mu.Lock()
	s.keys = keys
	s.mu.Unlock()

	s.log.Info().Str("file", s.path).Int("keys", len(keys)).Msg("API keys loaded")
	return nil
}

func parseKeys(data []byte) (map[string]struct{}, error) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err == nil {
		keys := make(map[string]struct{}, len(object))
		for key := range object {
			keys[key] = struct{}{}
		}
		return keys, nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("expected a JSON object or an array of strings: %w", err)
	}
	keys := make(map[string]struct{}, len(list))
	for _, key := range list {
		keys[key] = struct{}{}
	}
	return keys, nil
}
