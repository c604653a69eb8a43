package store

import "fmt"

// Permission gates field-level access. The zero value is PermissionNone;
// nodes default unregistered fields to PermissionReadWrite via their
// default policy, not via this zero value.
type Permission uint8

const (
	// PermissionNone grants neither read nor write.
	PermissionNone Permission = iota
	// PermissionReadOnly grants read but not write.
	PermissionReadOnly
	// PermissionWriteOnly grants write but not read.
	PermissionWriteOnly
	// PermissionReadWrite grants both read and write.
	PermissionReadWrite
)

// CanRead reports whether the permission includes the read capability.
func (p Permission) CanRead() bool {
	return p == PermissionReadOnly || p == PermissionReadWrite
}

// CanWrite reports whether the permission includes the write capability.
func (p Permission) CanWrite() bool {
	return p == PermissionWriteOnly || p == PermissionReadWrite
}

func (p Permission) String() string {
	switch p {
	case PermissionNone:
		return "none"
	case PermissionReadOnly:
		return "read-only"
	case PermissionWriteOnly:
		return "write-only"
	case PermissionReadWrite:
		return "read-write"
	default:
		return fmt.Sprintf("permission(%d)", uint8(p))
	}
}

// ParsePermission converts the document representation ("none", "read-only",
// "write-only", "read-write") into a Permission. Parsing is case-sensitive:
// schema documents are machine-checked, not hand-typed at a prompt.
func ParsePermission(s string) (Permission, error) {
	switch s {
	case "none":
		return PermissionNone, nil
	case "read-only":
		return PermissionReadOnly, nil
	case "write-only":
		return PermissionWriteOnly, nil
	case "read-write":
		return PermissionReadWrite, nil
	default:
		return PermissionNone, fmt.Errorf("invalid permission %q: must be one of none, read-only, write-only, read-write", s)
	}
}
