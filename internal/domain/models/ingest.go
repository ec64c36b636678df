package models

// UploadedFile is one payload handed to batch ingestion.
type UploadedFile struct {
	Filename string
	Content  []byte
}

// ItemResult is the per-file outcome of a batch ingestion. Exactly one of
// DocID (on success) or Error (on failure) is populated.
type ItemResult struct {
	Filename string `json:"filename"`
	DocID    string `json:"docId"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}
