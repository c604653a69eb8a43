// Package schema compiles CUE permission-schema documents into registry
// registrations for the store.
//
// A schema document declares, per schema identity, the per-field access
// restrictions shared by every node instance of that schema:
//
//	schemas: {
//		user: {
//			default: "read-write"
//			fields: {
//				secret:   "none"
//				password: "write-only"
//				name:     "read-write"
//			}
//		}
//	}
//
// Documents are compiled with the CUE Go API (not a CLI subprocess) at
// schema-definition time, before any node is read or written; Apply then
// performs the store.Registry registrations.
package schema
