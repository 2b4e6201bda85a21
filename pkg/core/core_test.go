package core

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/require"
)

func TestResolutionTable(t *testing.T) {
	require.Equal(t, ResolutionCount, len(resolutions)-1)

	for i := 1; i <= ResolutionCount; i++ {
		r := Resolution(i)
		got, ok := ParseResolution(r.String())
		require.True(t, ok, r.String())
		require.Equal(t, r, got)

		w, h := r.Size()
		got, ok = ResolutionOfSize(w, h)
		require.True(t, ok)
		require.Equal(t, r, got)
	}

	require.Equal(t, "1920x1080", Res1920x1080.String())
	require.Equal(t, "3840x2160", Res3840x2160.String())

	_, ok := ParseResolution("1921x1080")
	require.False(t, ok)
	_, ok = ParseResolution("")
	require.False(t, ok)
	require.Equal(t, "", Resolution(200).String())
}

func TestBitrateTable(t *testing.T) {
	require.Equal(t, 16, BitrateCount)

	for i := 0; i < BitrateCount; i++ {
		kbps, ok := BitrateKbps(i)
		require.True(t, ok)

		j, ok := BitrateIndex(kbps)
		require.True(t, ok)
		require.Equal(t, i, j)
		require.Equal(t, i, NearestBitrateIndex(kbps))
	}

	first, _ := BitrateKbps(0)
	last, _ := BitrateKbps(BitrateCount - 1)
	require.Equal(t, 32, first)
	require.Equal(t, 16384, last)

	_, ok := BitrateKbps(BitrateCount)
	require.False(t, ok)
	_, ok = BitrateIndex(4000)
	require.False(t, ok)

	i, _ := BitrateIndex(4096)
	require.Equal(t, i, NearestBitrateIndex(4000))
	require.Equal(t, 0, NearestBitrateIndex(1))
}

func TestQualityScale(t *testing.T) {
	for ceiling := 1; ceiling <= 10; ceiling++ {
		for level := 1; level <= ceiling; level++ {
			fixed := FixedQuality(level, ceiling)
			require.True(t, fixed >= 0 && fixed <= 100)
			require.Equal(t, level, QualityLevel(fixed, ceiling), "%d/%d", level, ceiling)
		}
	}
	require.Equal(t, 1, QualityLevel(0, 5))
	require.Equal(t, 5, QualityLevel(200, 5))
}

func TestCodec(t *testing.T) {
	for _, c := range Codecs {
		got, ok := ParseCodec(c.String())
		require.True(t, ok)
		require.Equal(t, c, got)
	}

	m := MaskOf(CodecH264, CodecH265)
	require.True(t, m.Has(CodecH264))
	require.False(t, m.Has(CodecMJPEG))
	require.False(t, m.Has(CodecNone))
	require.Equal(t, []VideoCodec{CodecH264, CodecH265}, m.List())

	var c VideoCodec
	require.Nil(t, c.UnmarshalText([]byte("h265")))
	require.Equal(t, CodecH265, c)
	require.NotNil(t, c.UnmarshalText([]byte("vp8")))
}

func TestResultOf(t *testing.T) {
	require.Equal(t, Success, ResultOf(nil))
	require.Equal(t, FeatureNotSupported, ResultOf(errors.NotSupportedf("ptz")))
	require.Equal(t, FeatureNotSupported, ResultOf(errors.Annotate(errors.NotSupportedf("ptz"), "build")))
	require.Equal(t, ProcessError, ResultOf(errors.NotValidf("grid")))
	require.Equal(t, ProcessError, ResultOf(errors.NotFoundf("model")))
	require.Equal(t, ProcessError, ResultOf(&StatusError{Code: "7"}))
}

func TestEventResult(t *testing.T) {
	var r EventResult
	r[EventTamper] = EventActive
	r[EventAlarmIn2] = EventActive

	require.Equal(t, []EventID{EventTamper, EventAlarmIn2}, r.Active())
	require.Equal(t, EventActive, r.Map()["tamper"])
	require.Equal(t, EventInactive, r.Map()["motion"])
}

func TestNetworkValidate(t *testing.T) {
	n := NetworkConfig{Address: "192.168.1.20", Subnet: "255.255.255.0", Gateway: "192.168.1.1"}
	require.Nil(t, n.Validate())

	n.Gateway = "192.168.1"
	require.NotNil(t, n.Validate())

	n.Gateway = "fe80::1"
	require.NotNil(t, n.Validate())
}

func TestScale(t *testing.T) {
	require.Equal(t, 704, ScaleTo(NormalizedMax, 704))
	require.Equal(t, 0, ScaleTo(0, 704))
	require.Equal(t, 352, ScaleTo(5000, 704))
	require.Equal(t, 5000, ScaleFrom(352, 704))
	require.Equal(t, 0, ScaleFrom(10, 0))
}
