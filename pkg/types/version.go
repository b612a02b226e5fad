package types

// set by main from linker flags
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// DefaultToolName is used in the User-Agent style tool strings and BOM metadata.
const DefaultToolName = "ebr"
