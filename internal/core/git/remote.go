package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// defaultPorts are left out of Endpoint.Host. go-git reports 22 for every
// scp-like remote even when none was written.
var defaultPorts = map[string]int{
	"http":  80,
	"https": 443,
	"git":   9418,
	"ssh":   22,
}

// Endpoint is the part of a remote URL that identifies a hosted repository
type Endpoint struct {
	Host  string `json:"host"`
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// FullName returns "owner/repo"
func (e Endpoint) FullName() string {
	return e.Owner + "/" + e.Repo
}

// ParseRemote extracts host, owner and repository name from a remote URL.
// Both scp-like SSH (git@host:owner/repo.git) and URL forms
// (https://host/owner/repo.git, ssh://git@host/owner/repo) are accepted.
// Nested groups end up in Owner ("group/sub").
func ParseRemote(url string) (Endpoint, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Endpoint{}, &RemoteError{Err: errors.New("empty url")}
	}

	ep, err := transport.NewEndpoint(url)
	if err != nil {
		return Endpoint{}, &RemoteError{URL: url, Err: err}
	}
	if ep.Host == "" {
		return Endpoint{}, &RemoteError{URL: url, Err: errors.New("no host")}
	}

	path := strings.Trim(ep.Path, "/")
	path = strings.TrimSuffix(path, ".git")
	path = strings.TrimRight(path, "/")

	i := strings.LastIndex(path, "/")
	if i <= 0 || i == len(path)-1 {
		return Endpoint{}, &RemoteError{URL: url, Err: errors.New("expected owner/repo path")}
	}

	host := ep.Host
	if ep.Port != 0 && ep.Port != defaultPorts[ep.Protocol] {
		host = fmt.Sprintf("%s:%d", ep.Host, ep.Port)
	}

	return Endpoint{
		Host:  host,
		Owner: path[:i],
		Repo:  path[i+1:],
	}, nil
}
