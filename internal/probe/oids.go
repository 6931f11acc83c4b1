package probe

// Base OIDs for every MIB subtree this agent populates (spec.md §4.3).
const (
	SystemBase      = "1.3.6.1.2.1.1"
	DiskIOBase      = "1.3.6.1.4.1.2021.13.15.1.1"
	HrStorageBase   = "1.3.6.1.2.1.25.2.3.1"
	DskTableBase    = "1.3.6.1.4.1.2021.9.1"
	IfTableBase     = "1.3.6.1.2.1.2.2.1"
	IfXTableBase    = "1.3.6.1.2.1.31.1.1.1"
	HrSWRunBase     = "1.3.6.1.2.1.25.4.2.1"
	NsExtendObjects = "1.3.6.1.4.1.8072.1.3.2.3.1"
)
