// pkg/api/manifest_v1.go
package api

// FormatName identifies seqstride manifests.
const FormatName = "seqstride"

// ManifestV1 is the stable JSON schema written next to the data file.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ManifestV1 struct {
	Format     string `json:"format"`
	Version    int    `json:"version"` // on-disk record format version
	Stride     int    `json:"stride"`  // bytes per record (max sequence length)
	Records    int    `json:"records"`
	Truncated  int    `json:"truncated,omitempty"`
	Overflow   string `json:"overflow"` // "reject" | "truncate"
	DataFile   string `json:"data_file"`
	IndexFile  string `json:"index_file"`
	BLAKE2b256 string `json:"blake2b256"` // hex digest of the data file
	CreatedAt  string `json:"created_at,omitempty"`
}
