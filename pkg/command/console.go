package command

import (
	"fmt"
	"io"

	"go.minekube.com/common/minecraft/component"

	"go.minekube.com/veinminer/pkg/util/componentutil"
	"go.minekube.com/veinminer/pkg/util/permission"
)

// ConsoleSource is a Source writing messages as legacy text lines to W,
// or ANSI colored lines if Ansi is set.
// Permissions are resolved by Permissions, all are granted if nil.
type ConsoleSource struct {
	W           io.Writer
	Ansi        bool
	Permissions permission.Func
}

var _ Source = (*ConsoleSource)(nil)

func (c *ConsoleSource) SendMessage(msg component.Component) error {
	line := componentutil.Legacy(msg)
	if c.Ansi {
		line = componentutil.Ansi(msg)
	}
	_, err := fmt.Fprintln(c.W, line)
	return err
}

func (c *ConsoleSource) PermissionValue(perm string) permission.TriState {
	if c.Permissions == nil {
		return permission.True
	}
	return c.Permissions(perm)
}

func (c *ConsoleSource) HasPermission(perm string) bool {
	return c.PermissionValue(perm).Bool()
}
