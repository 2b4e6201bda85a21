package xmlapi

import (
	"encoding/base64"

	"github.com/juju/errors"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// SetNetwork changes the static IPv4 address of the camera.
func (p *Protocol) SetNetwork(m capability.ModelInfo, cfg core.NetworkConfig) ([]wire.Request, error) {
	if err := m.Require(capability.BitNetworkConfig); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := p.s.newDocument(tNetRoot)
	d.set(d.root, tNetMode, p.s.netMode)
	d.set(d.root, tAddress, cfg.Address)
	d.set(d.root, tSubnet, cfg.Subnet)
	d.set(d.root, tGateway, cfg.Gateway)
	return p.put(rNetwork, d)
}

// SetOSD writes the text and clock overlays. Dialects with a coordinate
// space get the corner point, the others a corner token.
func (p *Protocol) SetOSD(m capability.ModelInfo, cfg core.OSDConfig) ([]wire.Request, error) {
	if err := m.Require(capability.BitOSD); err != nil {
		return nil, err
	}
	if len(cfg.Text) > core.OSDTextMax {
		return nil, errors.NotValidf("osd text of %d bytes", len(cfg.Text))
	}
	if cfg.TextPosition > core.OSDBottomRight || cfg.DateTimePos > core.OSDBottomRight {
		return nil, errors.NotValidf("osd position")
	}
	date, err := lookup(p.s.dateFormats[:], int(p.deps.Display.DateFormat()), "date format")
	if err != nil {
		return nil, err
	}
	clock, err := lookup(p.s.timeFormats[:], int(p.deps.Display.TimeFormat()), "time format")
	if err != nil {
		return nil, err
	}

	d := p.s.newDocument(tOSDRoot)
	d.setBool(d.root, tOSDTextEnabled, cfg.TextEnabled)
	d.set(d.root, tOSDTextString, cfg.Text)
	p.placeOSD(d, tOSDTextX, tOSDTextY, tOSDTextPos, cfg.TextPosition)
	d.setBool(d.root, tOSDClockEnabled, cfg.DateTimeEnabled)
	p.placeOSD(d, tOSDClockX, tOSDClockY, tOSDClockPos, cfg.DateTimePos)
	d.set(d.root, tOSDDateFormat, date)
	d.set(d.root, tOSDTimeFormat, clock)
	return p.put(rOSD, d)
}

func (p *Protocol) placeOSD(d *document, x, y, token term, pos core.OSDPosition) {
	if p.s.OSDCoordinates {
		d.setInt(d.root, x, p.s.osdPoints[pos][0])
		d.setInt(d.root, y, p.s.osdPoints[pos][1])
		return
	}
	d.set(d.root, token, p.s.osdCorners[pos])
}

// ChangePassword writes the user document.
func (p *Protocol) ChangePassword(m capability.ModelInfo, pc core.PasswordChange) ([]wire.Request, error) {
	if pc.User == "" {
		return nil, errors.NotValidf("empty user")
	}
	if pc.NewPassword == "" || len(pc.NewPassword) > core.OSDTextMax {
		return nil, errors.NotValidf("new password")
	}

	d := p.s.newDocument(tUserRoot)
	d.set(d.root, tUserName, pc.User)
	d.set(d.root, tOldPassword, pc.OldPassword)
	d.set(d.root, tNewPassword, pc.NewPassword)
	return p.put(rPassword, d)
}

// SyncDateTime sets the camera clock from the local clock.
func (p *Protocol) SyncDateTime(m capability.ModelInfo) ([]wire.Request, error) {
	if err := m.Require(capability.BitDateTimeSync); err != nil {
		return nil, err
	}

	d := p.s.newDocument(tTimeRoot)
	d.set(d.root, tTimeMode, p.s.timeMode)
	d.set(d.root, tLocalTime, p.deps.Clock.Now().Format(p.s.TimeLayout))
	return p.put(rTime, d)
}

// OpenAudio selects the talk-back codec and opens the channel.
func (p *Protocol) OpenAudio(m capability.ModelInfo, codec core.AudioCodec) ([]wire.Request, error) {
	if err := m.Require(capability.BitTwoWayAudio); err != nil {
		return nil, err
	}
	name, err := lookup(p.s.audioCodecs[:], int(codec), "audio codec")
	if err != nil {
		return nil, err
	}

	d := p.s.newDocument(tAudioRoot)
	d.set(d.root, tAudioCodec, name)
	cfg, err := p.putRequest(rAudioChannel, d)
	if err != nil {
		return nil, err
	}
	open, err := p.putRequest(rAudioOpen, nil)
	if err != nil {
		return nil, err
	}
	return []wire.Request{cfg, open}, nil
}

// SendAudio returns the request that carries one audio chunk of Length bytes.
func (p *Protocol) SendAudio(m capability.ModelInfo, send core.AudioSend) ([]wire.Request, error) {
	if err := m.Require(capability.BitTwoWayAudio); err != nil {
		return nil, err
	}
	if _, err := lookup(p.s.audioCodecs[:], int(send.Codec), "audio codec"); err != nil {
		return nil, err
	}
	if send.Length <= 0 {
		return nil, errors.NotValidf("audio length %d", send.Length)
	}

	u, err := p.url(rAudioData)
	if err != nil {
		return nil, err
	}

	auth := send.Credentials.Username + ":" + send.Credentials.Password
	return []wire.Request{{
		Method:      wire.MethodPut,
		Protocol:    wire.ProtocolHTTP,
		Auth:        wire.AuthBasic,
		URL:         u,
		BodyLen:     send.Length,
		ContentType: "application/octet-stream",
		Header: map[string]string{
			"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(auth)),
		},
	}}, nil
}

// CloseAudio closes the talk-back channel.
func (p *Protocol) CloseAudio(m capability.ModelInfo) ([]wire.Request, error) {
	if err := m.Require(capability.BitTwoWayAudio); err != nil {
		return nil, err
	}
	return p.put(rAudioClose, nil)
}
