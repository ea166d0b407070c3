package consts

// Permissions for files and directories vidgrab creates.
const (
	PermsHomeProgDir = 0o755
	PermsGenericDir  = 0o755
	PermsDocFile     = 0o644
	PermsLogFile     = 0o644

	// Owner only
	PermsCookieFile = 0o600
)
