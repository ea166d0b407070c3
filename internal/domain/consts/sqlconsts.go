package consts

// Database tables.
const (
	DBDownloads = "downloads"
)

// Downloads ledger columns.
const (
	QDLID         = "id"
	QDLRunID      = "run_id"
	QDLEntryIndex = "entry_index"
	QDLURL        = "url"
	QDLTitle      = "title"
	QDLStatus     = "status"
	QDLPct        = "percent"
	QDLError      = "error"
	QDLCreatedAt  = "created_at"
	QDLUpdatedAt  = "updated_at"
)
