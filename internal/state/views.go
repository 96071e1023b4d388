package state

// Option is one entry of a selectable list.
type Option struct {
	Value string
	Label string
}

// OptionList is a selectable list. When Placeholder is set the list renders
// that single line instead of its options.
type OptionList struct {
	Options     []Option
	Placeholder string
}

// Values returns the option values in order.
func (l OptionList) Values() []string {
	out := make([]string, 0, len(l.Options))
	for _, o := range l.Options {
		out = append(out, o.Value)
	}
	return out
}

// EntryKind tags a browse entry.
type EntryKind int

const (
	// EntryLabel is plain text with no actions.
	EntryLabel EntryKind = iota
	// EntryPlayable carries a URI and can be played or browsed into.
	EntryPlayable
)

// BrowseEntry is one row of a browse section.
type BrowseEntry struct {
	Kind EntryKind
	Name string
	URI  string
}

// Playable reports whether the entry can be played or browsed into.
func (e BrowseEntry) Playable() bool {
	return e.Kind == EntryPlayable && e.URI != ""
}

// BrowseSection is a titled group of entries.
type BrowseSection struct {
	Title   string
	Entries []BrowseEntry
	// Placeholder replaces Entries when the section carries no item list.
	Placeholder string
}

// BrowseView is the rendered result of browsing one node.
type BrowseView struct {
	URI         string
	Sections    []BrowseSection
	Placeholder string
}

// NowPlaying is the rendered player state.
type NowPlaying struct {
	Title    string
	Artist   string
	Album    string
	AlbumArt string
	Icon     string
	Status   string
	Service  string
	URI      string
	Volume   int
}

func cloneOptions(l OptionList) OptionList {
	if l.Options != nil {
		l.Options = append([]Option(nil), l.Options...)
	}
	return l
}

func cloneBrowse(v BrowseView) BrowseView {
	if v.Sections == nil {
		return v
	}
	sections := make([]BrowseSection, len(v.Sections))
	for i, s := range v.Sections {
		if s.Entries != nil {
			s.Entries = append([]BrowseEntry(nil), s.Entries...)
		}
		sections[i] = s
	}
	v.Sections = sections
	return v
}
