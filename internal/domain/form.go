package domain

// FormState maps channel abbreviations to ordered uploaded file names.
// Dynamic channels hold up to RequiredFiles names; static channels hold at
// most one. Values are file names only, never contents.
//
// FormState values are treated as immutable: mutators return a fresh map so
// callers can hold old snapshots safely.
type FormState map[string][]string

// NewFormState returns an empty form with a slot for every catalog channel.
func NewFormState() FormState {
	fs := make(FormState, len(Channels))
	for _, c := range Channels {
		fs[c.Abbrev] = nil
	}
	return fs
}

// SetChannelFiles returns a copy of fs with the named channel's files
// replaced. Dynamic channels keep the first RequiredFiles names; over-selection
// is silently truncated, not an error. Static channels keep only the first
// name, or clear when the list is empty. Unknown channels leave fs unchanged.
func (fs FormState) SetChannelFiles(abbrev string, files []string) FormState {
	spec, ok := ChannelByAbbrev(abbrev)
	if !ok {
		return fs
	}

	next := fs.clone()
	switch spec.Kind {
	case ChannelStatic:
		if len(files) == 0 {
			next[abbrev] = nil
		} else {
			next[abbrev] = []string{files[0]}
		}
	default:
		if len(files) > spec.RequiredFiles {
			files = files[:spec.RequiredFiles]
		}
		next[abbrev] = append([]string(nil), files...)
	}
	return next
}

// ChannelComplete reports whether the channel holds exactly its required
// file count.
func (fs FormState) ChannelComplete(spec ChannelSpec) bool {
	return len(fs[spec.Abbrev]) == spec.RequiredFiles
}

// FileCount is the total number of files currently selected.
func (fs FormState) FileCount() int {
	n := 0
	for _, files := range fs {
		n += len(files)
	}
	return n
}

// ComputeValidity reports whether a submission is allowed: every channel at
// exactly its required count and the bounds parsing to a valid box. Derived on
// demand, never cached.
func ComputeValidity(fs FormState, raw RawBounds) bool {
	for _, c := range Channels {
		if !fs.ChannelComplete(c) {
			return false
		}
	}
	_, ok := raw.Parse()
	return ok
}

func (fs FormState) clone() FormState {
	next := make(FormState, len(fs))
	for k, v := range fs {
		next[k] = v
	}
	return next
}
