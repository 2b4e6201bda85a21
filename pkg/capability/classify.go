package capability

// Classify returns the dialect of model. Membership is listed explicitly so
// that new models never fall into a family by accident of their numbering.
func Classify(model Model) Dialect {
	switch model {
	case ModelMIBR20FL36CW, ModelMIDR20FL28CW, ModelMITR20FL36CW,
		ModelMIBR50FL40CW, ModelMIDR50FL28CW, ModelMPZR20ML25CW:
		return OemDialectA

	case ModelSIBR20FL36CW, ModelSIDR20FL28CW, ModelSIBR40FL36CW, ModelSIDR40FL28CW:
		return OemDialectB

	case ModelCIBR13FL40CW, ModelCIBR20FL36CW, ModelCIDR20FL36CW, ModelCIDR20VL12CW,
		ModelCIBR30FL36CW, ModelCIDR30FL60CW, ModelCIBR50FL40CW, ModelCIDR50VL12CW:
		return NativeStandard

	case ModelPZCR20ML25CWP, ModelPZCR20ML33CWP, ModelCIBR80ML12CWP, ModelCIDR80ML12CWP:
		return NativePremiumOrPtz
	}
	return DialectUnknown
}

// IsKnownModel reports whether model has a database entry.
func IsKnownModel(model Model) bool {
	return model > ModelNone && model < modelCount
}

// IsKnownBrand reports whether brand is listed, with or without models.
func IsKnownBrand(brand Brand) bool {
	return brand > BrandNone && brand < brandCount
}
