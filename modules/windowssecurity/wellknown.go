package windowssecurity

// Builtin local groups reported per computer
var (
	AdministratorsSID     = MustParseStringSID("S-1-5-32-544")
	RemoteDesktopUsersSID = MustParseStringSID("S-1-5-32-555")
)
