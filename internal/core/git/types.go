package git

// Identity is what `twp info` reports about a repository
type Identity struct {
	Endpoint
	Branch     string `json:"branch"`
	RemoteName string `json:"remote"`
	RemoteURL  string `json:"remoteUrl"`
}

// Detached reports whether HEAD is not on a branch
func (i Identity) Detached() bool {
	return i.Branch == ""
}
