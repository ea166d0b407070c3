package models

// EntryStatus is the status of one playlist row.
type EntryStatus string

const (
	EntryPending EntryStatus = "pending"
	EntryActive  EntryStatus = "active"
	EntryDone    EntryStatus = "done"
	EntryFailed  EntryStatus = "failed"
)

// PlaylistEntry is one item of a playlist.
type PlaylistEntry struct {
	URL          string
	Title        string
	ThumbnailURL string
	Duration     float64
}

// PlaylistInfo is the playlist as known when a run starts.
type PlaylistInfo struct {
	URL      string
	Title    string
	Uploader string
	Entries  []PlaylistEntry
}

// RunPhase is the state of one orchestrator run.
type RunPhase int

const (
	RunNotStarted RunPhase = iota
	RunRunning
	RunCompleted
)

// RunRow is the state of one entry during a run.
type RunRow struct {
	Entry    PlaylistEntry
	Status   EntryStatus
	Progress float64
	Text     string
}

// PlaylistRunState is owned by a single orchestrator run.
type PlaylistRunState struct {
	Phase       RunPhase
	Rows        []RunRow
	FailedCount int
}
