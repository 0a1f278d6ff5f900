package schema

// AssetIndex maps logical asset names to content-addressed objects.
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
}

// AssetObject is one asset blob addressed by sha1.
type AssetObject struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}
