package models

type ImportStatus string

const (
	ImportIdle      ImportStatus = "idle"
	ImportUploading ImportStatus = "uploading"
	ImportSuccess   ImportStatus = "success"
	ImportError     ImportStatus = "error"
)

type ImportRowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ImportResult is the server reply to a CSV upload.
type ImportResult struct {
	Message     string           `json:"message,omitempty"`
	Created     int              `json:"created"`
	QuestionIDs []string         `json:"question_ids,omitempty"`
	Errors      []ImportRowError `json:"errors,omitempty"`
}

// ImportBatch is the client-side draft of one import; it never leaves the workflow.
type ImportBatch struct {
	FileName string       `json:"file_name,omitempty"`
	FileSize int64        `json:"file_size,omitempty"`
	TestID   string       `json:"test_id,omitempty"`
	Status   ImportStatus `json:"status"`
}
