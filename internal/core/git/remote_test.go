package git

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRemote(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    Endpoint
		wantErr bool
	}{
		{
			name: "scp-like ssh",
			url:  "git@github.com:eeue56/twp-example.git",
			want: Endpoint{Host: "github.com", Owner: "eeue56", Repo: "twp-example"},
		},
		{
			name: "https",
			url:  "https://github.com/eeue56/twp.git",
			want: Endpoint{Host: "github.com", Owner: "eeue56", Repo: "twp"},
		},
		{
			name: "https without suffix and trailing slash",
			url:  "https://gitlab.example.com/team/project/",
			want: Endpoint{Host: "gitlab.example.com", Owner: "team", Repo: "project"},
		},
		{
			name: "ssh url with port",
			url:  "ssh://git@git.example.com:2222/org/tool.git",
			want: Endpoint{Host: "git.example.com:2222", Owner: "org", Repo: "tool"},
		},
		{
			name: "https url with port",
			url:  "https://git.example.com:8443/org/tool.git",
			want: Endpoint{Host: "git.example.com:8443", Owner: "org", Repo: "tool"},
		},
		{
			name: "explicit default port",
			url:  "https://github.com:443/eeue56/twp-example.git",
			want: Endpoint{Host: "github.com", Owner: "eeue56", Repo: "twp-example"},
		},
		{
			name: "ssh url without port",
			url:  "ssh://git@github.com/eeue56/twp-example.git",
			want: Endpoint{Host: "github.com", Owner: "eeue56", Repo: "twp-example"},
		},
		{
			name: "nested group",
			url:  "https://gitlab.com/group/sub/repo.git",
			want: Endpoint{Host: "gitlab.com", Owner: "group/sub", Repo: "repo"},
		},
		{name: "empty", url: "  ", wantErr: true},
		{name: "local path has no host", url: "/srv/git/repo.git", wantErr: true},
		{name: "missing owner", url: "https://github.com/repo.git", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRemote(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				var re *RemoteError
				assert.True(t, errors.As(err, &re))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type stubIdentitySource struct {
	url       string
	urlErr    error
	branch    string
	branchErr error
}

func (s stubIdentitySource) RemoteURL(context.Context, string) (string, error) {
	return s.url, s.urlErr
}

func (s stubIdentitySource) CurrentBranch(context.Context) (string, error) {
	return s.branch, s.branchErr
}

func TestIdentify(t *testing.T) {
	t.Run("ssh remote on main", func(t *testing.T) {
		id, err := Identify(context.Background(), stubIdentitySource{
			url:    "git@github.com:eeue56/twp-example.git",
			branch: "main",
		}, "origin")

		require.NoError(t, err)
		assert.Equal(t, "github.com", id.Host)
		assert.Equal(t, "eeue56", id.Owner)
		assert.Equal(t, "twp-example", id.Repo)
		assert.Equal(t, "main", id.Branch)
		assert.Equal(t, "eeue56/twp-example", id.FullName())
		assert.Equal(t, "origin", id.RemoteName)
		assert.False(t, id.Detached())
	})

	t.Run("missing remote", func(t *testing.T) {
		_, err := Identify(context.Background(), stubIdentitySource{
			urlErr: &RemoteError{Remote: "origin", Err: ErrNoRemote},
		}, "origin")

		assert.ErrorIs(t, err, ErrNoRemote)
	})

	t.Run("malformed url names the remote", func(t *testing.T) {
		_, err := Identify(context.Background(), stubIdentitySource{url: "nonsense"}, "upstream")

		var re *RemoteError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, "upstream", re.Remote)
	})

	t.Run("branch failure propagates", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Identify(context.Background(), stubIdentitySource{
			url:       "https://github.com/a/b",
			branchErr: boom,
		}, "origin")

		assert.ErrorIs(t, err, boom)
	})
}

func TestCommandError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &CommandError{
		Args:   []string{"commit", "-m", "msg"},
		Stderr: "nothing to commit\n",
		Err:    cause,
	}

	assert.Equal(t, "git commit -m msg failed: nothing to commit: exit status 1", err.Error())
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.ErrorIs(t, err, cause)
}
