package ipc

// TriggerRequest asks the daemon to process the current host selection.
type TriggerRequest struct{}

// TriggerResponse reports the queued submission, if any.
type TriggerResponse struct {
	Queued bool   `json:"queued"`
	Path   string `json:"path"`
	// Message carries the reason when nothing was queued.
	Message string `json:"message"`
}

// SubmitRequest runs one file through the pipeline synchronously.
type SubmitRequest struct {
	Path string `json:"path"`
}

// SubmitResponse carries the pipeline outcome for a submission.
type SubmitResponse struct {
	Outcome         string `json:"outcome"`
	Reason          string `json:"reason"`
	MatchedFilename string `json:"matched_filename"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// DependencyStatus describes availability of an external binary.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail"`
}

// StatusResponse represents daemon runtime information.
type StatusResponse struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	RecordCount  int                `json:"record_count"`
	RecordFile   string             `json:"record_file"`
	LockPath     string             `json:"lock_path"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// RecordsRequest lists the persisted records.
type RecordsRequest struct{}

// RecordDTO is the wire form of one stored record.
type RecordDTO struct {
	Filename    string `json:"filename"`
	Fingerprint string `json:"fingerprint"`
}

// RecordsResponse contains records in stored order.
type RecordsResponse struct {
	Records []RecordDTO `json:"records"`
}

// TestNotificationRequest pushes a test message through the notifier.
type TestNotificationRequest struct{}

// TestNotificationResponse reports the test result.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

// LogTailRequest reads daemon log lines. A negative Offset asks for
// the last Limit lines.
type LogTailRequest struct {
	Offset     int64 `json:"offset"`
	Limit      int   `json:"limit"`
	Follow     bool  `json:"follow"`
	WaitMillis int64 `json:"wait_millis"`
}

// LogTailResponse returns log lines and the offset to resume from.
type LogTailResponse struct {
	Lines  []string `json:"lines"`
	Offset int64    `json:"offset"`
}

// StopRequest shuts the daemon down.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}
