package domain

// SyncResult is what a sync run reports back to its caller. A rejected
// concurrent invocation is a result, not an error.
type SyncResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
