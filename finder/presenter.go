package finder

// A Presenter shows a search to the user. Its methods are called through
// Config.Dispatch.
type Presenter interface {
	// Present focuses a match found by FindNext or Replace. The leaf's
	// selection has already been set.
	Present(Match)

	// Replaced is called after each replacement.
	Replaced(Replacement)

	// Progress reports how far along a session is. A total of 0 clears
	// the progress display.
	Progress(pos, total int)

	// Finished is called exactly once per session.
	Finished(Summary)

	// Report shows an error that ended a session, or a search text that
	// doesn't compile.
	Report(error)
}

// NopPresenter ignores everything.
type NopPresenter struct{}

var _ Presenter = NopPresenter{}

func (NopPresenter) Present(Match)           {}
func (NopPresenter) Replaced(Replacement)    {}
func (NopPresenter) Progress(pos, total int) {}
func (NopPresenter) Finished(Summary)        {}
func (NopPresenter) Report(error)            {}
