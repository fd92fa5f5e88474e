// Package untracked classifies the paths git reports as untracked.
package untracked

import "strings"

// Path is a workspace-relative, slash-separated path that git reports as untracked
type Path string

// IsDotfile reports whether the final path segment starts with a dot.
// "dir/.env" is a dotfile, "dir.env" is not.
func (p Path) IsDotfile() bool {
	name := strings.TrimRight(string(p), "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.HasPrefix(name, ".")
}

// String implements fmt.Stringer
func (p Path) String() string {
	return string(p)
}

// Classification is the result of classifying one untracked path listing
type Classification struct {
	// All holds every path in the order git reported it
	All []Path `json:"all"`
	// Dotfiles holds the dotfile subset of All, in the same order
	Dotfiles []Path `json:"dotfiles"`
}

// Classify partitions paths into the full listing and its dotfile subset.
// Input order is preserved in both outputs.
func Classify(paths []string) Classification {
	c := Classification{
		All:      make([]Path, 0, len(paths)),
		Dotfiles: []Path{},
	}

	for _, raw := range paths {
		p := Path(raw)
		c.All = append(c.All, p)
		if p.IsDotfile() {
			c.Dotfiles = append(c.Dotfiles, p)
		}
	}

	return c
}

// Dirs returns the untracked directory view. git already expands untracked
// directories into their leaf files, so this is the same listing as All.
func (c Classification) Dirs() []Path {
	return c.All
}

// Regular returns the paths of All that are not dotfiles
func (c Classification) Regular() []Path {
	regular := make([]Path, 0, len(c.All)-len(c.Dotfiles))
	for _, p := range c.All {
		if !p.IsDotfile() {
			regular = append(regular, p)
		}
	}
	return regular
}

// Empty reports whether there are no untracked paths
func (c Classification) Empty() bool {
	return len(c.All) == 0
}

// Strings converts paths back into plain strings
func Strings(paths []Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = string(p)
	}
	return out
}
