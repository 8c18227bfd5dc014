package recent

// State holds the recent list
type State struct {
	IDs   []string // most recent first, no duplicates
	Limit int
}
