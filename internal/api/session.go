package api

import (
	"log/slog"
	"strings"

	"github.com/swcurran/toggl-cli/internal/timeutil"
	"github.com/swcurran/toggl-cli/internal/transport"
)

// CreatedWith identifies this client in entries it creates.
const CreatedWith = "toggl-cli"

// OptionSource supplies persisted string options by section and key.
type OptionSource interface {
	Get(section, key string) string
}

// Session ties the model layer to its collaborators: the transport that
// reaches the remote store, the clock, and the persisted options. It also
// owns the process-lifetime reference list caches, which populate lazily on
// first use and stay valid until explicitly reloaded.
type Session struct {
	api   transport.Caller
	clock timeutil.Clock
	opts  OptionSource
	log   *slog.Logger

	workspaces *WorkspaceList
	clients    *ClientList
	projects   *ProjectList
	entries    *TimeEntryList
	user       *User
}

// NewSession creates a session. All collaborators are required.
func NewSession(api transport.Caller, clock timeutil.Clock, opts OptionSource, log *slog.Logger) *Session {
	return &Session{
		api:   api,
		clock: clock,
		opts:  opts,
		log:   log,
	}
}

// Clock returns the session's clock.
func (s *Session) Clock() timeutil.Clock {
	return s.clock
}

// Workspaces returns the cached workspace list.
func (s *Session) Workspaces() *WorkspaceList {
	if s.workspaces == nil {
		s.workspaces = &WorkspaceList{session: s}
	}
	return s.workspaces
}

// Clients returns the cached client list.
func (s *Session) Clients() *ClientList {
	if s.clients == nil {
		s.clients = &ClientList{session: s}
	}
	return s.clients
}

// Projects returns the cached project list for the default workspace.
func (s *Session) Projects() *ProjectList {
	if s.projects == nil {
		s.projects = &ProjectList{session: s}
	}
	return s.projects
}

// Entries returns the cached recent time entry list.
func (s *Session) Entries() *TimeEntryList {
	if s.entries == nil {
		s.entries = &TimeEntryList{session: s}
	}
	return s.entries
}

// Me returns the cached remote user.
func (s *Session) Me() *User {
	if s.user == nil {
		s.user = &User{session: s}
	}
	return s.user
}

// continueCreates reads the boolean-as-string option that forces Continue to
// always create a new entry.
func (s *Session) continueCreates() bool {
	return strings.EqualFold(s.opts.Get("options", "continue_creates"), "true")
}
