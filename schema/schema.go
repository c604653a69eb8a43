package schema

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/token"

	"github.com/roach88/strata/store"
)

// Schema is one compiled schema declaration: an identity plus the field
// permissions registered under it. DefaultPolicy is the document's optional
// suggestion for the default policy of roots built with this schema; the
// registry itself only carries the explicit field entries.
type Schema struct {
	ID            store.SchemaID
	Fields        map[string]store.Permission
	DefaultPolicy *store.Permission
}

// CompileError reports a malformed schema declaration with its CUE position.
type CompileError struct {
	Schema  string
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	where := e.Schema
	if e.Field != "" {
		where = where + "." + e.Field
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), where, e.Message)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

// Compile parses a CUE value holding a top-level "schemas" struct into
// schema declarations. Declarations are returned in document order.
func Compile(v cue.Value) ([]Schema, error) {
	if err := v.Err(); err != nil {
		return nil, &CompileError{Message: err.Error(), Pos: v.Pos()}
	}

	schemasVal := v.LookupPath(cue.ParsePath("schemas"))
	if !schemasVal.Exists() {
		return nil, &CompileError{
			Message: `document must declare a top-level "schemas" struct`,
			Pos:     v.Pos(),
		}
	}

	iter, err := schemasVal.Fields()
	if err != nil {
		return nil, &CompileError{Message: fmt.Sprintf("iterating schemas: %v", err), Pos: schemasVal.Pos()}
	}

	var schemas []Schema
	for iter.Next() {
		schema, err := compileSchema(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, *schema)
	}
	if len(schemas) == 0 {
		return nil, &CompileError{Message: "no schemas declared", Pos: schemasVal.Pos()}
	}
	return schemas, nil
}

// compileSchema parses a single schema declaration: a required "fields"
// struct of field name to permission string, plus an optional "default".
func compileSchema(id string, v cue.Value) (*Schema, error) {
	schema := &Schema{
		ID:     store.SchemaID(id),
		Fields: make(map[string]store.Permission),
	}

	defaultVal := v.LookupPath(cue.ParsePath("default"))
	if defaultVal.Exists() {
		s, err := defaultVal.String()
		if err != nil {
			return nil, &CompileError{Schema: id, Field: "default", Message: "default must be a permission string", Pos: defaultVal.Pos()}
		}
		perm, err := store.ParsePermission(s)
		if err != nil {
			return nil, &CompileError{Schema: id, Field: "default", Message: err.Error(), Pos: defaultVal.Pos()}
		}
		schema.DefaultPolicy = &perm
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, &CompileError{Schema: id, Field: "fields", Message: "fields struct is required", Pos: v.Pos()}
	}

	iter, err := fieldsVal.Fields()
	if err != nil {
		return nil, &CompileError{Schema: id, Field: "fields", Message: fmt.Sprintf("iterating fields: %v", err), Pos: fieldsVal.Pos()}
	}
	for iter.Next() {
		field := iter.Label()
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{Schema: id, Field: field, Message: "permission must be a string", Pos: iter.Value().Pos()}
		}
		perm, err := store.ParsePermission(s)
		if err != nil {
			return nil, &CompileError{Schema: id, Field: field, Message: err.Error(), Pos: iter.Value().Pos()}
		}
		schema.Fields[field] = perm
	}
	if len(schema.Fields) == 0 {
		return nil, &CompileError{Schema: id, Field: "fields", Message: "at least one field is required", Pos: fieldsVal.Pos()}
	}

	return schema, nil
}

// Apply performs the registry registrations for the compiled schemas.
// Re-applying a schema overwrites earlier entries pair by pair (last
// write wins, matching Registry.Register).
func Apply(reg *store.Registry, schemas []Schema) {
	for _, schema := range schemas {
		for field, perm := range schema.Fields {
			reg.Register(schema.ID, field, perm)
		}
	}
}

// Find returns the compiled schema with the given identity.
func Find(schemas []Schema, id store.SchemaID) (*Schema, bool) {
	for i := range schemas {
		if schemas[i].ID == id {
			return &schemas[i], true
		}
	}
	return nil, false
}
