package capability

import (
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/grid"
)

// Model identifies one camera model of the MATRIX brand.
type Model uint16

const (
	ModelNone Model = iota

	// OEM dialect A
	ModelMIBR20FL36CW
	ModelMIDR20FL28CW
	ModelMITR20FL36CW
	ModelMIBR50FL40CW
	ModelMIDR50FL28CW
	ModelMPZR20ML25CW

	// OEM dialect B
	ModelSIBR20FL36CW
	ModelSIDR20FL28CW
	ModelSIBR40FL36CW
	ModelSIDR40FL28CW

	// native standard
	ModelCIBR13FL40CW
	ModelCIBR20FL36CW
	ModelCIDR20FL36CW
	ModelCIDR20VL12CW
	ModelCIBR30FL36CW
	ModelCIDR30FL60CW
	ModelCIBR50FL40CW
	ModelCIDR50VL12CW

	// native premium and PTZ
	ModelPZCR20ML25CWP
	ModelPZCR20ML33CWP
	ModelCIBR80ML12CWP
	ModelCIDR80ML12CWP

	modelCount
)

// Native grid sizes per wire family.
var (
	gridStandard = grid.Size{Rows: 36, Cols: 44}
	gridPremium  = grid.Size{Rows: 18, Cols: 32}
	gridOemA     = grid.Size{Rows: 18, Cols: 22}
	gridOemB     = grid.Size{Rows: 12, Cols: 16}
)

var (
	h264h265   = core.MaskOf(core.CodecH264, core.CodecH265)
	h264mjpeg  = core.MaskOf(core.CodecH264, core.CodecMJPEG)
	allCodecs  = core.MaskOf(core.CodecMJPEG, core.CodecH264, core.CodecH265)
	commonBits = BitMotion | BitTamper | BitMotionWindow | BitPrivacyMask | BitImageSetting |
		BitDateTimeSync | BitNetworkConfig
)

// res builds one resolution list.
func res(list ...core.Resolution) []core.Resolution { return list }

// Parameter groups. Each one is referenced by several models below.
var (
	groupOemA2MP = &ParamGroup{
		name:       "oem-a-2mp",
		mainCodecs: h264h265,
		subCodecs:  h264mjpeg,
		resolutions: ResolutionTable{
			ProfileDependent: true,
			lists: [][][]core.Resolution{
				{res(core.Res1920x1080, core.Res1280x720)},
				{res(core.Res704x576, core.Res640x480, core.Res352x288)},
			},
		},
		framerates: FramerateTable{masks: [][]FramerateMask{{FPS(1, 25)}}},
		quality:    [3]int{6, 6, 6},
		bitrateMin: 2, bitrateMax: 12,
		bits: commonBits | BitAudioIn | BitAlarmIn1 | BitAlarmOut1 | BitOSD,
	}

	groupOemA5MP = &ParamGroup{
		name:       "oem-a-5mp",
		mainCodecs: h264h265,
		subCodecs:  h264mjpeg,
		resolutions: ResolutionTable{
			ProfileDependent: true,
			lists: [][][]core.Resolution{
				{res(core.Res2592x1944, core.Res2560x1440, core.Res1920x1080, core.Res1280x720)},
				{res(core.Res704x576, core.Res640x480, core.Res352x288)},
			},
		},
		framerates: FramerateTable{
			ProfileDependent: true,
			masks: [][]FramerateMask{
				{FPS(1, 20)},
				{FPS(1, 25)},
			},
		},
		quality:    [3]int{6, 6, 6},
		bitrateMin: 2, bitrateMax: 14,
		bits: commonBits | BitAudioIn | BitAudioOut | BitAlarmIn1 | BitAlarmOut1 | BitLineCross |
			BitIntrusion | BitOSD,
	}

	groupOemAPtz = &ParamGroup{
		name:       "oem-a-ptz",
		mainCodecs: h264h265,
		subCodecs:  h264mjpeg,
		resolutions: ResolutionTable{
			ProfileDependent: true,
			lists: [][][]core.Resolution{
				{res(core.Res1920x1080, core.Res1280x720)},
				{res(core.Res704x576, core.Res640x480, core.Res352x288)},
			},
		},
		framerates: FramerateTable{masks: [][]FramerateMask{{FPS(1, 30)}}},
		quality:    [3]int{6, 6, 6},
		bitrateMin: 2, bitrateMax: 12,
		bits: commonBits | BitPTZ | BitAudioIn | BitAudioOut | BitTwoWayAudio | BitAlarmIn1 |
			BitAlarmIn2 | BitAlarmOut1 | BitAlarmOut2 | BitOSD,
	}

	groupOemB2MP = &ParamGroup{
		name:       "oem-b-2mp",
		mainCodecs: allCodecs,
		subCodecs:  allCodecs,
		resolutions: ResolutionTable{
			CodecDependent: true,
			lists: [][][]core.Resolution{{
				res(core.Res704x576, core.Res352x288),
				res(core.Res1920x1080, core.Res1280x720, core.Res704x576),
				res(core.Res1920x1080, core.Res1280x720),
			}},
		},
		framerates: FramerateTable{
			CodecDependent: true,
			masks:          [][]FramerateMask{{FPS(1, 15), FPS(1, 30), FPS(1, 30)}},
		},
		quality:    [3]int{5, 6, 6},
		bitrateMin: 1, bitrateMax: 11,
		bits: commonBits | BitOSD,
	}

	groupOemB4MP = &ParamGroup{
		name:       "oem-b-4mp",
		mainCodecs: h264h265,
		subCodecs:  allCodecs,
		resolutions: ResolutionTable{
			CodecDependent: true,
			lists: [][][]core.Resolution{{
				res(core.Res704x576, core.Res352x288),
				res(core.Res2688x1520, core.Res1920x1080, core.Res1280x720, core.Res704x576),
				res(core.Res2688x1520, core.Res1920x1080),
			}},
		},
		framerates: FramerateTable{
			CodecDependent: true,
			masks:          [][]FramerateMask{{FPS(1, 15), FPS(1, 25), FPS(1, 25)}},
		},
		quality:    [3]int{5, 6, 6},
		bitrateMin: 1, bitrateMax: 13,
		bits: commonBits | BitAudioIn | BitAlarmIn1 | BitAlarmOut1 | BitOSD,
	}

	groupStd1MP = &ParamGroup{
		name:       "std-1mp",
		mainCodecs: core.MaskOf(core.CodecH264),
		subCodecs:  h264mjpeg,
		resolutions: ResolutionTable{
			ProfileDependent: true,
			lists: [][][]core.Resolution{
				{res(core.Res1280x960, core.Res1280x720)},
				{res(core.Res640x480, core.Res320x240)},
				{res(core.Res320x240, core.Res160x120)},
			},
		},
		framerates: FramerateTable{masks: [][]FramerateMask{{FPS(1, 30)}}},
		quality:    [3]int{5, 5, 0},
		bitrateMin: 0, bitrateMax: 9,
		bits: BitMotion | BitDateTimeSync | BitNetworkConfig | BitImageSetting,
	}

	groupStd2MP = &ParamGroup{
		name:       "std-2mp",
		mainCodecs: h264h265,
		subCodecs:  allCodecs,
		resolutions: ResolutionTable{
			ProfileDependent: true,
			CodecDependent:   true,
			lists: [][][]core.Resolution{
				{
					nil,
					res(core.Res1920x1080, core.Res1280x720, core.Res704x576),
					res(core.Res1920x1080, core.Res1280x720),
				},
				{
					res(core.Res704x576, core.Res640x360, core.Res352x288),
					res(core.Res1280x720, core.Res704x576, core.Res640x360, core.Res352x288),
					res(core.Res1280x720, core.Res704x576),
				},
				{
					res(core.Res352x288, core.Res320x180),
					res(core.Res640x360, core.Res352x288, core.Res320x180),
					res(core.Res640x360, core.Res352x288),
				},
			},
		},
		framerates: FramerateTable{
			CodecDependent: true,
			masks:          [][]FramerateMask{{FPS(1, 15), FPS(1, 30), FPS(1, 30)}},
		},
		quality:    [3]int{10, 10, 10},
		bitrateMin: 0, bitrateMax: 13,
		bits: commonBits | BitAudioIn | BitAlarmIn1 | BitAlarmOut1 | BitOSD,
	}

	groupStd3MP = &ParamGroup{
		name:       "std-3mp",
		mainCodecs: h264h265,
		subCodecs:  allCodecs,
		resolutions: ResolutionTable{
			ProfileDependent: true,
			CodecDependent:   true,
			lists: [][][]core.Resolution{
				{
					nil,
					res(core.Res2048x1536, core.Res1920x1080, core.Res1280x720),
					res(core.Res2048x1536, core.Res1920x1080),
				},
				{
					res(core.Res704x576, core.Res352x288),
					res(core.Res1280x720, core.Res704x576, core.Res352x288),
					res(core.Res1280x720, core.Res704x576),
				},
				{
					res(core.Res352x288),
					res(core.Res704x576, core.Res352x288),
					res(core.Res704x576, core.Res352x288),
				},
			},
		},
		framerates: FramerateTable{
			ProfileDependent: true,
			masks: [][]FramerateMask{
				{FPS(1, 30)},
				{FPS(1, 30)},
				{FPS(1, 15)},
			},
		},
		quality:    [3]int{10, 10, 10},
		bitrateMin: 0, bitrateMax: 14,
		bits: commonBits | BitAudioIn | BitAudioOut | BitAlarmIn1 | BitAlarmOut1 | BitOSD,
	}

	groupStd5MP = &ParamGroup{
		name:       "std-5mp",
		mainCodecs: h264h265,
		subCodecs:  allCodecs,
		resolutions: ResolutionTable{
			ProfileDependent: true,
			lists: [][][]core.Resolution{
				{res(core.Res2592x1944, core.Res2592x1520, core.Res1920x1080)},
				{res(core.Res1280x720, core.Res704x576, core.Res352x288)},
				{res(core.Res704x576, core.Res352x288)},
			},
		},
		framerates: FramerateTable{
			ProfileDependent: true,
			masks: [][]FramerateMask{
				{FPS(1, 20)},
				{FPS(1, 25)},
				{FPS(1, 15)},
			},
		},
		quality:    [3]int{10, 10, 10},
		bitrateMin: 1, bitrateMax: 14,
		bits: commonBits | BitAudioIn | BitAudioOut | BitAlarmIn1 | BitAlarmIn2 | BitAlarmOut1 |
			BitTwoWayAudio | BitOSD,
	}

	groupPtz2MP = &ParamGroup{
		name:       "ptz-2mp",
		mainCodecs: h264h265,
		subCodecs:  allCodecs,
		resolutions: ResolutionTable{
			ProfileDependent: true,
			lists: [][][]core.Resolution{
				{res(core.Res1920x1080, core.Res1280x720)},
				{res(core.Res1280x720, core.Res704x576, core.Res640x360)},
				{res(core.Res640x360, core.Res352x288)},
			},
		},
		framerates: FramerateTable{masks: [][]FramerateMask{{FPS(1, 30)}}},
		quality:    [3]int{10, 10, 10},
		bitrateMin: 0, bitrateMax: 13,
		bits: commonBits | BitPTZ | BitAudioIn | BitAudioOut | BitTwoWayAudio | BitAlarmIn1 |
			BitAlarmIn2 | BitAlarmOut1 | BitAlarmOut2 | BitLineCross | BitIntrusion | BitOSD,
	}

	groupPremium8MP = &ParamGroup{
		name:       "premium-8mp",
		mainCodecs: h264h265,
		subCodecs:  allCodecs,
		resolutions: ResolutionTable{
			ProfileDependent: true,
			CodecDependent:   true,
			lists: [][][]core.Resolution{
				{
					nil,
					res(core.Res3840x2160, core.Res2560x1440, core.Res1920x1080),
					res(core.Res3840x2160, core.Res3072x2048, core.Res2560x1440, core.Res1920x1080),
				},
				{
					res(core.Res1280x720, core.Res704x576),
					res(core.Res1920x1080, core.Res1280x720, core.Res704x576),
					res(core.Res1920x1080, core.Res1280x720, core.Res704x576),
				},
				{
					res(core.Res704x576, core.Res352x288),
					res(core.Res704x576, core.Res640x360, core.Res352x288),
					res(core.Res704x576, core.Res640x360, core.Res352x288),
				},
			},
		},
		framerates: FramerateTable{
			ProfileDependent: true,
			CodecDependent:   true,
			masks: [][]FramerateMask{
				{0, FPS(1, 25), FPS(1, 30)},
				{FPS(1, 15), FPS(1, 30), FPS(1, 30)},
				{FPS(1, 15), FPS(1, 15), FPS(1, 15)},
			},
		},
		quality:    [3]int{10, 10, 10},
		bitrateMin: 2, bitrateMax: 15,
		bits: commonBits | BitAudioIn | BitAudioOut | BitTwoWayAudio | BitAlarmIn1 | BitAlarmIn2 |
			BitAlarmOut1 | BitAlarmOut2 | BitLineCross | BitIntrusion | BitLoitering | BitObjectCount |
			BitNoMotion | BitAudioException | BitOSD,
	}
)

var (
	fixedLens = PTZAxes{}
	varifocal = PTZAxes{core.AxisZoom: AxisContinuous, core.AxisFocus: AxisContinuous}
	motorized = PTZAxes{core.AxisZoom: AxisContinuous, core.AxisFocus: AxisRelative, core.AxisIris: AxisRelative}
	speedDome = PTZAxes{
		core.AxisPan:   AxisContinuous,
		core.AxisTilt:  AxisContinuous,
		core.AxisZoom:  AxisContinuous,
		core.AxisFocus: AxisContinuous,
		core.AxisIris:  AxisRelative,
	}
)

func oemA(name string, g *ParamGroup) ModelInfo {
	return ModelInfo{
		Name: name, Brand: BrandMatrix, Dialect: OemDialectA, group: g,
		Profiles: 2, PTZ: fixedLens,
		Motion: MethodBlock, MotionGrid: gridOemA,
		Privacy: MethodPoint, MaxPrivacyWindows: 4,
		OSD: true,
	}
}

func oemB(name string, g *ParamGroup) ModelInfo {
	return ModelInfo{
		Name: name, Brand: BrandMatrix, Dialect: OemDialectB, group: g,
		Profiles: 2, PTZ: fixedLens,
		Motion: MethodBlock, MotionGrid: gridOemB,
		Privacy: MethodBlock, PrivacyGrid: gridOemB,
		OSD: true,
	}
}

func native(name string, d Dialect, g *ParamGroup, axes PTZAxes) ModelInfo {
	m := ModelInfo{
		Name: name, Brand: BrandMatrix, Dialect: d, group: g,
		Profiles: 3, PTZ: axes,
		Motion: MethodBlock, MotionGrid: gridStandard,
		Privacy: MethodPoint, MaxPrivacyWindows: 8,
		OSD: true,
	}
	if d == NativePremiumOrPtz {
		m.MotionGrid = gridPremium
	}
	return m
}

// models is indexed by Model.
var models = [modelCount]ModelInfo{
	ModelMIBR20FL36CW: oemA("MIBR20FL36CW", groupOemA2MP),
	ModelMIDR20FL28CW: oemA("MIDR20FL28CW", groupOemA2MP),
	ModelMITR20FL36CW: oemA("MITR20FL36CW", groupOemA2MP),
	ModelMIBR50FL40CW: oemA("MIBR50FL40CW", groupOemA5MP),
	ModelMIDR50FL28CW: oemA("MIDR50FL28CW", groupOemA5MP),
	ModelMPZR20ML25CW: func() ModelInfo {
		m := oemA("MPZR20ML25CW", groupOemAPtz)
		m.PTZ = speedDome
		m.MaxPrivacyWindows = 8
		return m
	}(),

	ModelSIBR20FL36CW: oemB("SIBR20FL36CW", groupOemB2MP),
	ModelSIDR20FL28CW: oemB("SIDR20FL28CW", groupOemB2MP),
	ModelSIBR40FL36CW: oemB("SIBR40FL36CW", groupOemB4MP),
	ModelSIDR40FL28CW: oemB("SIDR40FL28CW", groupOemB4MP),

	ModelCIBR13FL40CW: func() ModelInfo {
		m := native("CIBR13FL40CW", NativeStandard, groupStd1MP, fixedLens)
		m.Motion, m.MotionGrid = MethodUnsupported, grid.Size{}
		m.Privacy, m.MaxPrivacyWindows = MethodUnsupported, 0
		m.OSD = false
		return m
	}(),
	ModelCIBR20FL36CW: native("CIBR20FL36CW", NativeStandard, groupStd2MP, fixedLens),
	ModelCIDR20FL36CW: native("CIDR20FL36CW", NativeStandard, groupStd2MP, fixedLens),
	ModelCIDR20VL12CW: native("CIDR20VL12CW", NativeStandard, groupStd2MP, varifocal),
	ModelCIBR30FL36CW: native("CIBR30FL36CW", NativeStandard, groupStd3MP, fixedLens),
	ModelCIDR30FL60CW: native("CIDR30FL60CW", NativeStandard, groupStd3MP, fixedLens),
	ModelCIBR50FL40CW: native("CIBR50FL40CW", NativeStandard, groupStd5MP, fixedLens),
	ModelCIDR50VL12CW: native("CIDR50VL12CW", NativeStandard, groupStd5MP, varifocal),

	ModelPZCR20ML25CWP: func() ModelInfo {
		m := native("PZCR20ML25CWP", NativePremiumOrPtz, groupPtz2MP, speedDome)
		m.MaxPrivacyWindows = 24
		return m
	}(),
	ModelPZCR20ML33CWP: func() ModelInfo {
		m := native("PZCR20ML33CWP", NativePremiumOrPtz, groupPtz2MP, speedDome)
		m.MaxPrivacyWindows = 24
		return m
	}(),
	ModelCIBR80ML12CWP: native("CIBR80ML12CWP", NativePremiumOrPtz, groupPremium8MP, motorized),
	ModelCIDR80ML12CWP: native("CIDR80ML12CWP", NativePremiumOrPtz, groupPremium8MP, motorized),
}

func init() {
	for i := range models {
		models[i].ID = Model(i)
	}
}

var brands = [brandCount]BrandInfo{
	BrandMatrix:  {ID: BrandMatrix, Name: "MATRIX"},
	BrandOnvif:   {ID: BrandOnvif, Name: "ONVIF", External: true},
	BrandGeneric: {ID: BrandGeneric, Name: "GENERIC", External: true},
}

func init() {
	for i := range models {
		if b := models[i].Brand; b != BrandNone {
			brands[b].Models++
		}
	}
}
