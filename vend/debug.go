package vend

// DebugState holds the snapshot of the last successful call while debug
// mode is on. Clients may share one DebugState to keep a single snapshot
// for the whole process. It carries no locking.
type DebugState struct {
	enabled    bool
	lastRaw    []byte
	lastResult any
}

// NewDebugState returns a disabled DebugState.
func NewDebugState() *DebugState {
	return &DebugState{}
}

// Enable turns recording on. Switching from disabled clears the snapshot.
func (d *DebugState) Enable() {
	if !d.enabled {
		d.lastRaw = nil
		d.lastResult = nil
	}
	d.enabled = true
}

// Disable turns recording off and keeps the last snapshot.
func (d *DebugState) Disable() {
	d.enabled = false
}

// Enabled reports whether recording is on.
func (d *DebugState) Enabled() bool {
	return d.enabled
}

// LastRawBody returns the raw body of the last successful call recorded.
func (d *DebugState) LastRawBody() []byte {
	return d.lastRaw
}

// LastResult returns the decoded result of the last successful call
// recorded.
func (d *DebugState) LastResult() any {
	return d.lastResult
}

func (d *DebugState) record(raw []byte, result any) {
	if !d.enabled {
		return
	}
	d.lastRaw = raw
	d.lastResult = result
}
