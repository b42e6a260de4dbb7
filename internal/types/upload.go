package types

// UploadStatus is the state of one guideline upload
type UploadStatus string

// Upload states. Complete and Error are terminal.
const (
	UploadUploading  UploadStatus = "uploading"
	UploadProcessing UploadStatus = "processing"
	UploadComplete   UploadStatus = "complete"
	UploadError      UploadStatus = "error"
)

// Terminal reports whether no further transition is allowed
func (s UploadStatus) Terminal() bool {
	return s == UploadComplete || s == UploadError
}

// UploadProgress is the transient progress value of one upload
type UploadProgress struct {
	ID       string       `json:"id"`
	BrandID  string       `json:"brand_id"`
	FileName string       `json:"file_name"`
	Progress int          `json:"progress"`
	Status   UploadStatus `json:"status"`
	Error    string       `json:"error,omitempty"`
}
