// The permission utility package defines primitives that allow to
// check a Subject for a permission.
//
// Note:
// This is a simple package only allowing limited complexity of permission checking.
// Host integrations usually bridge their own permission system through Func.
package permission

import "strings"

// Func is the permission function to obtain the TriState for a permission.
type Func func(permission string) TriState

// Subject is a permission holder like a player.
type Subject interface {
	HasPermission(permission string) bool // Equal to PermissionValue(...).Bool()
	PermissionValue(permission string) TriState
}

// TriState can be in three states (True, False, Undefined), used for a setting.
type TriState uint8

const (
	Undefined TriState = iota // A permission is undefined.
	True                      // A permission is allowed.
	False                     // A permission is explicitly denied.
)

// Bool returns the bool value of a TriState where
// Undefined is converted to false.
func (t TriState) Bool() bool {
	return t == True
}

// Nodes returns a Func resolving permissions from the nodes.
// A permission is resolved from its most specific node to the least
// specific wildcard, e.g. "a.b.c", "a.b.*", "a.*" and "*".
func Nodes(nodes map[string]TriState) Func {
	return func(permission string) TriState {
		if v, ok := nodes[permission]; ok && v != Undefined {
			return v
		}
		p := permission
		for {
			i := strings.LastIndexByte(p, '.')
			if i < 0 {
				break
			}
			p = p[:i]
			if v, ok := nodes[p+".*"]; ok && v != Undefined {
				return v
			}
		}
		return nodes["*"]
	}
}

// FuncSubject is a Subject backed by a Func.
type FuncSubject Func

func (f FuncSubject) PermissionValue(permission string) TriState {
	if f == nil {
		return Undefined
	}
	return f(permission)
}

func (f FuncSubject) HasPermission(permission string) bool {
	return f.PermissionValue(permission).Bool()
}

var _ Subject = FuncSubject(nil)
