package config

// RepoFlag is a capability tag on a repository enabling one category of
// git operation.
type RepoFlag string

const (
	FlagClone  RepoFlag = "Clone"
	FlagPull   RepoFlag = "Pull"
	FlagAdd    RepoFlag = "Add"
	FlagCommit RepoFlag = "Commit"
	FlagPush   RepoFlag = "Push"

	// FlagQuick grants Add, Commit and Push.
	FlagQuick RepoFlag = "Quick"

	// FlagFast grants everything Quick does, plus Pull.
	FlagFast RepoFlag = "Fast"
)

// knownFlags holds every flag the schema accepts.
var knownFlags = map[RepoFlag]struct{}{
	FlagClone:  {},
	FlagPull:   {},
	FlagAdd:    {},
	FlagCommit: {},
	FlagPush:   {},
	FlagQuick:  {},
	FlagFast:   {},
}

// Op is a primitive git operation gated by the capability flags.
type Op string

const (
	OpClone  Op = "clone"
	OpPull   Op = "pull"
	OpAdd    Op = "add"
	OpCommit Op = "commit"
	OpPush   Op = "push"
)

// FlagSet is the ordered list of capability flags declared on a
// repository. A nil set permits nothing.
type FlagSet []RepoFlag

// Has reports whether the set contains the given flag.
func (fs FlagSet) Has(flag RepoFlag) bool {
	for _, f := range fs {
		if f == flag {
			return true
		}
	}
	return false
}

// Permits reports whether the set allows the given operation. Clone is
// only granted by an explicit Clone flag; Pull is granted by Pull or
// Fast; Add, Commit and Push are granted by their own flag, Quick or
// Fast.
func (fs FlagSet) Permits(op Op) bool {
	switch op {
	case OpClone:
		return fs.Has(FlagClone)
	case OpPull:
		return fs.Has(FlagPull) || fs.Has(FlagFast)
	case OpAdd:
		return fs.Has(FlagAdd) || fs.Has(FlagQuick) || fs.Has(FlagFast)
	case OpCommit:
		return fs.Has(FlagCommit) || fs.Has(FlagQuick) || fs.Has(FlagFast)
	case OpPush:
		return fs.Has(FlagPush) || fs.Has(FlagQuick) || fs.Has(FlagFast)
	}
	return false
}
