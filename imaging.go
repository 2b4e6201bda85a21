package camdrv

import (
	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// GetImageCapability builds the request for the tunable image ranges
func (d *Driver) GetImageCapability(camera Camera) ([]wire.Request, error) {
	return build(d, "image-capability", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.GetImageCapability(m)
	})
}

func (d *Driver) ParseImageCapability(camera Camera, b []byte) (core.ImageCapability, error) {
	return parse(d, "image-capability", camera, func(p Protocol, _ capability.ModelInfo) (core.ImageCapability, error) {
		return p.ParseImageCapability(b)
	})
}

func (d *Driver) GetImageSetting(camera Camera) ([]wire.Request, error) {
	return build(d, "image", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.GetImageSetting(m)
	})
}

// ParseImageSetting reads the fields capa lists as supported
func (d *Driver) ParseImageSetting(camera Camera, capa core.ImageCapability, b []byte) (core.ImageSettings, error) {
	return parse(d, "image", camera, func(p Protocol, _ capability.ModelInfo) (core.ImageSettings, error) {
		return p.ParseImageSetting(capa, b)
	})
}

// SetImageSetting writes image parameters, checked against capa
func (d *Driver) SetImageSetting(camera Camera, capa core.ImageCapability, s core.ImageSettings) ([]wire.Request, error) {
	return build(d, "image", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.SetImageSetting(m, capa, s)
	})
}

// GetMotionWindow builds the motion detection read
func (d *Driver) GetMotionWindow(camera Camera) ([]wire.Request, error) {
	return build(d, "motion", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.GetMotionWindow(m)
	})
}

// ParseMotionWindow returns the motion area on the canonical grid
func (d *Driver) ParseMotionWindow(camera Camera, b []byte) (core.MotionBlockParam, error) {
	return parse(d, "motion", camera, func(p Protocol, m capability.ModelInfo) (core.MotionBlockParam, error) {
		return p.ParseMotionWindow(m, b)
	})
}

func (d *Driver) SetMotionWindow(camera Camera, param core.MotionBlockParam) ([]wire.Request, error) {
	return build(d, "motion", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.SetMotionWindow(m, param)
	})
}

func (d *Driver) GetPrivacyMask(camera Camera) ([]wire.Request, error) {
	return build(d, "privacy", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.GetPrivacyMask(m)
	})
}

// ParsePrivacyMask returns windows or a canonical grid, depending on how the
// model addresses privacy areas
func (d *Driver) ParsePrivacyMask(camera Camera, b []byte) (core.PrivacyMaskConfig, error) {
	return parse(d, "privacy", camera, func(p Protocol, m capability.ModelInfo) (core.PrivacyMaskConfig, error) {
		return p.ParsePrivacyMask(m, b)
	})
}

func (d *Driver) SetPrivacyMask(camera Camera, cfg core.PrivacyMaskConfig) ([]wire.Request, error) {
	return build(d, "privacy", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.SetPrivacyMask(m, cfg)
	})
}

// GetPrivacyMaxWindows asks how many privacy windows the camera accepts
func (d *Driver) GetPrivacyMaxWindows(camera Camera) ([]wire.Request, error) {
	return build(d, "privacy-max", camera, func(p Protocol, m capability.ModelInfo) ([]wire.Request, error) {
		return p.GetPrivacyMaxWindows(m)
	})
}

func (d *Driver) ParsePrivacyMaxWindows(camera Camera, b []byte) (int, error) {
	return parse(d, "privacy-max", camera, func(p Protocol, m capability.ModelInfo) (int, error) {
		return p.ParsePrivacyMaxWindows(m, b)
	})
}
