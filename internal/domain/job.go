package domain

// DownloadJob binds a resource to a concrete submission.
type DownloadJob struct {
	Resource Resource `json:"resource"`
	Dir      string   `json:"dir"`
	OutName  string   `json:"out"`
}

// JobOutcome is the result of submitting one job. TaskID is set on success,
// Reason on failure.
type JobOutcome struct {
	Job    DownloadJob `json:"job"`
	OK     bool        `json:"ok"`
	TaskID string      `json:"task_id,omitempty"`
	Reason string      `json:"reason,omitempty"`
	Err    error       `json:"-"`
}

// JobStatus is the download manager's view of an active transfer.
type JobStatus struct {
	GID             string `json:"gid"`
	Status          string `json:"status"`
	CompletedLength int64  `json:"completed_length"`
	TotalLength     int64  `json:"total_length"`
	DownloadSpeed   int64  `json:"download_speed"`
	Path            string `json:"path"`
	ErrorMessage    string `json:"error_message,omitempty"`
}

// Progress returns the completed percentage, 0 when the size is unknown.
func (s JobStatus) Progress() float64 {
	if s.TotalLength <= 0 {
		return 0
	}
	return float64(s.CompletedLength) / float64(s.TotalLength) * 100
}
