package store

import "sort"

// Node is one level of the tree: an insertion-ordered mapping from field
// name to Value, gated by the registry entries for its schema identity.
//
// A node is created either explicitly via NewRoot, or implicitly by Write
// when a path traverses a missing field or a composite value is expanded.
// Implicit children share their parent's registry and tree token but carry
// no schema identity, so only their default policy applies.
type Node struct {
	schema SchemaID
	reg    *Registry
	policy Permission
	tree   string

	fields map[string]Value
	order  []string
}

// Option configures a root node at construction time.
type Option func(*rootConfig)

type rootConfig struct {
	reg    *Registry
	policy Permission
	tokens TokenGenerator
}

// WithRegistry wires the capability table consulted by permission checks.
// Roots built without one see every lookup as absent and fall back to the
// default policy for all fields.
func WithRegistry(reg *Registry) Option {
	return func(cfg *rootConfig) {
		cfg.reg = reg
	}
}

// WithDefaultPolicy sets the permission used for fields with no explicit
// registration. Defaults to PermissionReadWrite.
func WithDefaultPolicy(policy Permission) Option {
	return func(cfg *rootConfig) {
		cfg.policy = policy
	}
}

// WithTokenGenerator overrides the tree token source. Tests use
// NewFixedGenerator for deterministic error output.
func WithTokenGenerator(gen TokenGenerator) Option {
	return func(cfg *rootConfig) {
		if gen != nil {
			cfg.tokens = gen
		}
	}
}

// NewRoot creates a tree root with the given schema identity.
func NewRoot(schema SchemaID, opts ...Option) *Node {
	cfg := rootConfig{
		policy: PermissionReadWrite,
		tokens: UUIDv7Generator{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Node{
		schema: schema,
		reg:    cfg.reg,
		policy: cfg.policy,
		tree:   cfg.tokens.Generate(),
		fields: make(map[string]Value),
	}
}

// newChild creates an implicit child: no schema identity, read-write
// default policy, parent's registry and tree token.
func (n *Node) newChild() *Node {
	return &Node{
		reg:    n.reg,
		policy: PermissionReadWrite,
		tree:   n.tree,
		fields: make(map[string]Value),
	}
}

// SchemaID returns the schema identity the node checks permissions under.
// Implicit children return the empty SchemaID.
func (n *Node) SchemaID() SchemaID {
	return n.schema
}

// Tree returns the tree token assigned when the node's root was created.
func (n *Node) Tree() string {
	return n.tree
}

// DefaultPolicy returns the permission applied to fields with no explicit
// registry entry.
func (n *Node) DefaultPolicy() Permission {
	return n.policy
}

// SetDefaultPolicy changes the fallback permission for this node only.
// Child nodes keep their own policies.
func (n *Node) SetDefaultPolicy(policy Permission) {
	n.policy = policy
}

// permissionFor resolves the effective permission for a field: the
// registered entry for (schema, field) when one exists, otherwise the
// node's default policy. Pure: never mutates node or registry state.
func (n *Node) permissionFor(field string) Permission {
	if perm, ok := n.reg.Lookup(n.schema, field); ok {
		return perm
	}
	return n.policy
}

// AllowedToRead reports whether the resolved permission for the field
// includes the read capability.
func (n *Node) AllowedToRead(field string) bool {
	return n.permissionFor(field).CanRead()
}

// AllowedToWrite reports whether the resolved permission for the field
// includes the write capability.
func (n *Node) AllowedToWrite(field string) bool {
	return n.permissionFor(field).CanWrite()
}

// set stores a value under key, preserving the key's original insertion
// position on overwrite.
func (n *Node) set(key string, v Value) {
	if _, exists := n.fields[key]; !exists {
		n.order = append(n.order, key)
	}
	n.fields[key] = v
}

// Entries returns a shallow snapshot of the node's fields restricted to
// those where AllowedToRead holds. Values are the raw stored kinds: thunks
// are not evaluated and child nodes are not expanded. Fields failing the
// read check are omitted, not errors.
func (n *Node) Entries() map[string]Value {
	out := make(map[string]Value, len(n.order))
	for _, key := range n.order {
		if n.AllowedToRead(key) {
			out[key] = n.fields[key]
		}
	}
	return out
}

// Keys returns the readable field names in insertion order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, len(n.order))
	for _, key := range n.order {
		if n.AllowedToRead(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// WriteEntries writes every (key, value) pair via Write. Keys are
// processed in sorted order so a partial failure is reproducible: the
// first error is returned and earlier writes stay applied (no rollback).
func (n *Node) WriteEntries(entries map[string]any) error {
	for _, key := range sortedKeys(entries) {
		if _, err := n.Write(key, entries[key]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
