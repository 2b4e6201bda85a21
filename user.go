package camdrv

import (
	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// ChangePassword builds the password change of an existing account. The body
// is staged through the driver stager
func (d *Driver) ChangePassword(camera Camera, pc core.PasswordChange) ([]wire.Request, error) {
	return build(d, "password", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.ChangePassword(m, pc)
	})
}
