package dashboard

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/carpark/internal/client/client"
	"github.com/dmitrijs2005/carpark/internal/client/models"
)

type call struct {
	name string
	args []any
}

type fakeAPI struct {
	mu    sync.Mutex
	calls []call

	state    *models.State
	stateErr error

	loginErr  error
	logoutErr error

	mutState *models.State
	mutErr   error

	saveErr error

	users    []models.User
	usersErr error

	userErr error
}

var _ client.Client = (*fakeAPI)(nil)

func (f *fakeAPI) record(name string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{name: name, args: args})
}

func (f *fakeAPI) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.name)
	}
	return out
}

func (f *fakeAPI) lastCall(name string) (call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].name == name {
			return f.calls[i], true
		}
	}
	return call{}, false
}

func (f *fakeAPI) Do(ctx context.Context, method, path string, body any, out any) error {
	f.record("Do", method, path, body)
	return nil
}

func (f *fakeAPI) State(ctx context.Context) (*models.State, error) {
	f.record("State")
	return f.state, f.stateErr
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) error {
	f.record("Login", username, password)
	return f.loginErr
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.record("Logout")
	return f.logoutErr
}

func (f *fakeAPI) Park(ctx context.Context, plate string) (*models.State, error) {
	f.record("Park", plate)
	return f.mutState, f.mutErr
}

func (f *fakeAPI) Remove(ctx context.Context, req models.RemoveRequest) (*models.State, error) {
	f.record("Remove", req)
	return f.mutState, f.mutErr
}

func (f *fakeAPI) UpdateComments(ctx context.Context, spot int, comments string) (*models.State, error) {
	f.record("UpdateComments", spot, comments)
	return f.mutState, f.mutErr
}

func (f *fakeAPI) UpdateRate(ctx context.Context, rate float64) (*models.State, error) {
	f.record("UpdateRate", rate)
	return f.mutState, f.mutErr
}

func (f *fakeAPI) Setup(ctx context.Context, capacity int) (*models.State, error) {
	f.record("Setup", capacity)
	return f.mutState, f.mutErr
}

func (f *fakeAPI) Save(ctx context.Context) error {
	f.record("Save")
	return f.saveErr
}

func (f *fakeAPI) Load(ctx context.Context) (*models.State, error) {
	f.record("Load")
	return f.mutState, f.mutErr
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]models.User, error) {
	f.record("ListUsers")
	return f.users, f.usersErr
}

func (f *fakeAPI) CreateUser(ctx context.Context, req models.CreateUserRequest) error {
	f.record("CreateUser", req)
	return f.userErr
}

func (f *fakeAPI) DeleteUser(ctx context.Context, username string) error {
	f.record("DeleteUser", username)
	return f.userErr
}

func (f *fakeAPI) ResetPassword(ctx context.Context, username, password string) error {
	f.record("ResetPassword", username, password)
	return f.userErr
}

func (f *fakeAPI) ChangePassword(ctx context.Context, current, next string) error {
	f.record("ChangePassword", current, next)
	return f.userErr
}

type fakeConfirmer struct {
	answer  bool
	prompts []string
}

func (f *fakeConfirmer) Confirm(ctx context.Context, prompt string) bool {
	f.prompts = append(f.prompts, prompt)
	return f.answer
}

type fakePrefs struct {
	values map[string][]byte
	setErr error
}

func (f *fakePrefs) Get(ctx context.Context, key string) ([]byte, error) {
	return f.values[key], nil
}

func (f *fakePrefs) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.values == nil {
		f.values = map[string][]byte{}
	}
	f.values[key] = value
	return nil
}

// notifications collects banner messages.
type notifications struct {
	mu   sync.Mutex
	list []Notification
}

func (n *notifications) add(x Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.list = append(n.list, x)
}

func (n *notifications) last() Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.list) == 0 {
		return Notification{}
	}
	return n.list[len(n.list)-1]
}

func (n *notifications) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.list)
}
