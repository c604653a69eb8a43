package store

// SchemaID identifies a declared node shape. All node instances constructed
// with the same SchemaID share the same registered field restrictions.
type SchemaID string

// Registry is the process-wide capability table mapping
// (schema identity, field name) to a Permission.
//
// Registration happens at schema-definition time, before any node of that
// schema is read or written. After registration completes the registry is
// read-only and may be shared across goroutines; registration itself must
// not race with lookups.
type Registry struct {
	perms map[SchemaID]map[string]Permission
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{perms: make(map[SchemaID]map[string]Permission)}
}

// Register records the permission for a (schema, field) pair.
// Registering the same pair twice is not an error; the last write wins.
func (r *Registry) Register(schema SchemaID, field string, perm Permission) {
	fields, ok := r.perms[schema]
	if !ok {
		fields = make(map[string]Permission)
		r.perms[schema] = fields
	}
	fields[field] = perm
}

// Lookup returns the registered permission for a (schema, field) pair.
// The second return is false when no explicit registration exists; callers
// fall back to the node's default policy.
func (r *Registry) Lookup(schema SchemaID, field string) (Permission, bool) {
	if r == nil {
		return PermissionNone, false
	}
	perm, ok := r.perms[schema][field]
	return perm, ok
}
