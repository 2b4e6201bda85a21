package cgi

import (
	"encoding/base64"
	"net/url"

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
	return single(query("network", "set").
		Add("ipaddress", cfg.Address).
		Add("subnetmask", cfg.Subnet).
		Add("gateway", cfg.Gateway))
}

// SetOSD writes the text and clock overlays. The clock uses the platform
// display format.
func (p *Protocol) SetOSD(m capability.ModelInfo, cfg core.OSDConfig) ([]wire.Request, error) {
	if err := m.Require(capability.BitOSD); err != nil {
		return nil, err
	}
	if len(cfg.Text) > core.OSDTextMax {
		return nil, errors.NotValidf("osd text of %d bytes", len(cfg.Text))
	}

	textPos, err := lookup(osdPositions[:], int(cfg.TextPosition), "osd position")
	if err != nil {
		return nil, err
	}
	clockPos, err := lookup(osdPositions[:], int(cfg.DateTimePos), "osd position")
	if err != nil {
		return nil, err
	}
	date, err := lookup(dateFormats[:], int(p.deps.Display.DateFormat()), "date format")
	if err != nil {
		return nil, err
	}
	clock, err := lookup(timeFormats[:], int(p.deps.Display.TimeFormat()), "time format")
	if err != nil {
		return nil, err
	}

	return single(query("osd", "set").
		AddBool("text", cfg.TextEnabled).
		Add("textstring", cfg.Text).
		Add("textpos", textPos).
		AddBool("datetime", cfg.DateTimeEnabled).
		Add("datetimepos", clockPos).
		Add("dateformat", date).
		Add("timeformat", clock))
}

// ChangePassword posts the new password as a form body.
func (p *Protocol) ChangePassword(m capability.ModelInfo, pc core.PasswordChange) ([]wire.Request, error) {
	if pc.User == "" {
		return nil, errors.NotValidf("empty user")
	}
	if pc.NewPassword == "" || len(pc.NewPassword) > core.OSDTextMax {
		return nil, errors.NotValidf("new password")
	}

	form := url.Values{
		"username":    {pc.User},
		"oldpassword": {pc.OldPassword},
		"newpassword": {pc.NewPassword},
	}

	u, err := query("user", "setpassword").String()
	if err != nil {
		return nil, errors.Trace(err)
	}

	req := wire.Request{Method: wire.MethodPost, Protocol: wire.ProtocolHTTP, Auth: wire.AuthDigest, URL: u}
	if err = p.deps.AttachBody(&req, []byte(form.Encode()), "application/x-www-form-urlencoded", ".txt"); err != nil {
		return nil, err
	}
	return []wire.Request{req}, nil
}

// SyncDateTime sets the camera clock from the local clock.
func (p *Protocol) SyncDateTime(m capability.ModelInfo) ([]wire.Request, error) {
	if err := m.Require(capability.BitDateTimeSync); err != nil {
		return nil, err
	}
	now := p.deps.Clock.Now()
	return single(query("datetime", "set").
		AddInt("year", now.Year()).
		AddInt("month", int(now.Month())).
		AddInt("day", now.Day()).
		AddInt("hour", now.Hour()).
		AddInt("minute", now.Minute()).
		AddInt("second", now.Second()))
}

var audioCodecs = [...]string{
	core.AudioG711U: "g711ulaw",
	core.AudioG711A: "g711alaw",
}

var audioContentTypes = [...]string{
	core.AudioG711U: "audio/basic",
	core.AudioG711A: "audio/x-alaw-basic",
}

// OpenAudio opens the talk-back channel.
func (p *Protocol) OpenAudio(m capability.ModelInfo, codec core.AudioCodec) ([]wire.Request, error) {
	if err := m.Require(capability.BitTwoWayAudio); err != nil {
		return nil, err
	}
	name, err := lookup(audioCodecs[:], int(codec), "audio codec")
	if err != nil {
		return nil, err
	}
	return single(query("audioback", "open").Add("codec", name))
}

// SendAudio returns the request that carries one audio chunk. The transport
// streams Length bytes of audio as the body.
func (p *Protocol) SendAudio(m capability.ModelInfo, send core.AudioSend) ([]wire.Request, error) {
	if err := m.Require(capability.BitTwoWayAudio); err != nil {
		return nil, err
	}
	name, err := lookup(audioCodecs[:], int(send.Codec), "audio codec")
	if err != nil {
		return nil, err
	}
	if send.Length <= 0 {
		return nil, errors.NotValidf("audio length %d", send.Length)
	}

	u, err := query("audioback", "send").Add("codec", name).String()
	if err != nil {
		return nil, errors.Trace(err)
	}

	auth := send.Credentials.Username + ":" + send.Credentials.Password
	return []wire.Request{{
		Method:      wire.MethodPost,
		Protocol:    wire.ProtocolHTTP,
		Auth:        wire.AuthBasic,
		URL:         u,
		BodyLen:     send.Length,
		ContentType: audioContentTypes[send.Codec],
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
	return single(query("audioback", "close"))
}
