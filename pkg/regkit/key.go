package regkit

import "strings"

// MaxKeyLen is the maximum length of a serialized key ("namespace:name").
// Keys longer than this are rejected at construction and parse time.
const MaxKeyLen = 32767

// Key is an immutable namespaced identifier for a registry entry.
// The zero Key is not valid; construct keys with NewKey or ParseKey.
//
// Keys are comparable structs: they can be used directly as map keys,
// and == compares namespace and name structurally.
type Key struct {
	namespace string
	name      string
}

// NewKey creates a key from a namespace and a name.
//
// Returns a *KeyError if the namespace is not [a-z0-9._-]+, the name is
// not [a-z0-9/._-]+, or the serialized form exceeds MaxKeyLen.
func NewKey(namespace, name string) (Key, error) {
	if !IsValidNamespace(namespace) {
		return Key{}, &KeyError{Input: namespace, Reason: "namespace must be [a-z0-9._-]+"}
	}
	if !IsValidName(name) {
		return Key{}, &KeyError{Input: name, Reason: "name must be [a-z0-9/._-]+"}
	}
	if len(namespace)+1+len(name) > MaxKeyLen {
		return Key{}, &KeyError{Input: namespace + ":" + name, Reason: "serialized key exceeds 32767 characters"}
	}
	return Key{namespace: namespace, name: name}, nil
}

// ParseKey parses a key from its "namespace:name" form.
//
// Returns false if the string is empty, too long, contains more than one
// separator, lacks a namespace, or violates the character rules. It never
// returns an error; malformed input simply yields no key.
func ParseKey(s string) (Key, bool) {
	return ParseKeyIn(s, "")
}

// ParseKeyIn parses a key, substituting defaultNamespace when the string
// carries no "namespace:" prefix. An empty defaultNamespace means bare
// names do not parse.
func ParseKeyIn(s, defaultNamespace string) (Key, bool) {
	if s == "" || len(s) > MaxKeyLen {
		return Key{}, false
	}

	parts := strings.SplitN(s, ":", 3)
	if len(parts) > 2 {
		return Key{}, false
	}

	namespace := defaultNamespace
	name := parts[0]
	if len(parts) == 2 {
		namespace = parts[0]
		name = parts[1]
	}

	if !IsValidNamespace(namespace) || !IsValidName(name) {
		return Key{}, false
	}
	// A bare name plus the default namespace can be longer than the
	// input string; the length rule applies to the serialized form.
	if len(namespace)+1+len(name) > MaxKeyLen {
		return Key{}, false
	}
	return Key{namespace: namespace, name: name}, true
}

// MustKey creates a key, panicking on invalid input.
// Intended for package-level declarations of well-known keys.
func MustKey(namespace, name string) Key {
	k, err := NewKey(namespace, name)
	if err != nil {
		panic("regkit: " + err.Error())
	}
	return k
}

// Namespace returns the namespace component of the key.
func (k Key) Namespace() string {
	return k.namespace
}

// Name returns the name component of the key.
func (k Key) Name() string {
	return k.name
}

// IsZero reports whether the key is the zero value (never a valid key).
func (k Key) IsZero() bool {
	return k.namespace == "" && k.name == ""
}

// String returns the serialized "namespace:name" form.
// For any valid key k, ParseKey(k.String()) round-trips to k.
func (k Key) String() string {
	return k.namespace + ":" + k.name
}

// IsValidNamespace reports whether s is a valid key namespace:
// non-empty and composed of [a-z0-9._-] only.
func IsValidNamespace(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNamespaceChar(s[i]) {
			return false
		}
	}
	return true
}

// IsValidName reports whether s is a valid key name:
// non-empty and composed of [a-z0-9/._-] only.
func IsValidName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '/' && !isNamespaceChar(s[i]) {
			return false
		}
	}
	return true
}

func isNamespaceChar(c byte) bool {
	switch c {
	case '.', '_', '-':
		return true
	}
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
