package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gopost/internal/pkg/clock"
	"github.com/shandysiswandi/gopost/internal/pkg/goerror"
	"github.com/shandysiswandi/gopost/internal/pkg/goroutine"
	"github.com/shandysiswandi/gopost/internal/pkg/instrument"
	"github.com/shandysiswandi/gopost/internal/pkg/validator"
	postentity "github.com/shandysiswandi/gopost/internal/post/entity"
	"github.com/shandysiswandi/gopost/internal/shared/event"
	"github.com/shandysiswandi/gopost/internal/user/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]entity.User
	err    error
	calls  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]entity.User{}}
}

func (f *fakeRepo) taken(username string, except int64) bool {
	for id, u := range f.users {
		if id != except && u.Username == username {
			return true
		}
	}
	return false
}

func (f *fakeRepo) CreateUser(_ context.Context, in entity.NewUser) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.taken(in.Username, 0) {
		return nil, goerror.ErrConflict
	}
	f.nextID++
	u := entity.User{
		ID:          f.nextID,
		Username:    in.Username,
		Email:       in.Email,
		FullName:    in.FullName,
		DateOfBirth: in.DateOfBirth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.users[u.ID] = u
	return &u, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &u, nil
}

func (f *fakeRepo) UpdateUserByID(_ context.Context, id int64, in entity.UserPatch) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	if in.Username != nil && f.taken(*in.Username, id) {
		return nil, goerror.ErrConflict
	}
	u.Username = lo.FromPtrOr(in.Username, u.Username)
	if in.Email != nil {
		u.Email = in.Email
	}
	if in.FullName != nil {
		u.FullName = in.FullName
	}
	if in.DateOfBirth != nil {
		u.DateOfBirth = in.DateOfBirth
	}
	f.users[id] = u
	return &u, nil
}

func (f *fakeRepo) DeleteUserByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	delete(f.users, id)
	return &u, nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []UserEvent
}

func (f *fakeMessaging) PublishUserEvent(_ context.Context, ev UserEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

type fakePosts struct {
	posts map[int64][]postentity.Post
	err   error
}

func (f *fakePosts) ListPostsByUserID(_ context.Context, userID int64) ([]postentity.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.posts[userID], nil
}

type fixture struct {
	uc    *Usecase
	repo  *fakeRepo
	msg   *fakeMessaging
	posts *fakePosts
	gm    *goroutine.Manager
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	v, err := validator.NewV10()
	require.NoError(t, err)

	f := fixture{
		repo:  newFakeRepo(),
		msg:   &fakeMessaging{},
		posts: &fakePosts{posts: map[int64][]postentity.Post{}},
		gm:    goroutine.NewManager(8),
	}
	f.uc = New(Dependency{
		RepoDB:        f.repo,
		RepoMessaging: f.msg,
		Posts:         f.posts,
		Validator:     v,
		Clock:         clock.Fixed(now),
		Instrument:    instrument.NewNoop(),
		Goroutine:     f.gm,
	})
	return f
}

func codeOf(t *testing.T, err error) (goerror.Code, string) {
	t.Helper()

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr), "want *goerror.Error, got %v", err)
	return gerr.Code(), gerr.Msg()
}

func TestCreateUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		in       CreateUserInput
		wantCode goerror.Code
		wantMsg  string
	}{
		{
			name:     "username missing",
			in:       CreateUserInput{Email: lo.ToPtr("a@b.co")},
			wantCode: goerror.CodeMissingField,
			wantMsg:  "Username is required",
		},
		{
			name:     "username empty",
			in:       CreateUserInput{Username: lo.ToPtr(""), Email: lo.ToPtr("a@b.co")},
			wantCode: goerror.CodeMissingField,
			wantMsg:  "Username is required",
		},
		{
			name:     "nothing supplied reports username first",
			in:       CreateUserInput{},
			wantCode: goerror.CodeMissingField,
			wantMsg:  "Username is required",
		},
		{
			name:     "email missing",
			in:       CreateUserInput{Username: lo.ToPtr("alice")},
			wantCode: goerror.CodeMissingField,
			wantMsg:  "Email is required",
		},
		{
			name:     "one letter username with bad email",
			in:       CreateUserInput{Username: lo.ToPtr("a"), Email: lo.ToPtr("bad")},
			wantCode: goerror.CodeInvalidField,
			wantMsg:  "Email format incorrect",
		},
		{
			name:     "email without tld",
			in:       CreateUserInput{Username: lo.ToPtr("alice"), Email: lo.ToPtr("alice@example")},
			wantCode: goerror.CodeInvalidField,
			wantMsg:  "Email format incorrect",
		},
		{
			name:     "email tld too long",
			in:       CreateUserInput{Username: lo.ToPtr("alice"), Email: lo.ToPtr("alice@example.museum")},
			wantCode: goerror.CodeInvalidField,
			wantMsg:  "Email format incorrect",
		},
		{
			name:     "email with plus",
			in:       CreateUserInput{Username: lo.ToPtr("alice"), Email: lo.ToPtr("alice+x@example.com")},
			wantCode: goerror.CodeInvalidField,
			wantMsg:  "Email format incorrect",
		},
		{
			name: "date of birth unreadable",
			in: CreateUserInput{
				Username:    lo.ToPtr("alice"),
				Email:       lo.ToPtr("alice@example.com"),
				DateOfBirth: lo.ToPtr("02/04/1990"),
			},
			wantCode: goerror.CodeInvalidField,
			wantMsg:  "Date of birth format incorrect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			user, err := f.uc.CreateUser(context.Background(), tt.in)
			assert.Nil(t, user)
			code, msg := codeOf(t, err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Zero(t, f.repo.calls, "storage must not be touched on validation failure")
		})
	}
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)

	user, err := f.uc.CreateUser(context.Background(), CreateUserInput{
		Username:    lo.ToPtr("alice"),
		FullName:    lo.ToPtr("Alice Doe"),
		Email:       lo.ToPtr("alice.doe@example.com"),
		DateOfBirth: lo.ToPtr("1990-04-02"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice Doe", lo.FromPtr(user.FullName))
	require.NotNil(t, user.DateOfBirth)
	assert.Equal(t, time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC), *user.DateOfBirth)

	require.NoError(t, f.gm.Wait())
	assert.Equal(t, []UserEvent{{Name: event.UserCreated, UserID: 1, OccurredAt: now}}, f.msg.events)
}

func TestCreateUser_RFC3339DateOfBirth(t *testing.T) {
	f := newFixture(t)

	user, err := f.uc.CreateUser(context.Background(), CreateUserInput{
		Username:    lo.ToPtr("alice"),
		Email:       lo.ToPtr("alice@example.com"),
		DateOfBirth: lo.ToPtr("1990-04-02T10:00:00+07:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 4, 2, 3, 0, 0, 0, time.UTC), *user.DateOfBirth)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	f := newFixture(t)
	in := CreateUserInput{Username: lo.ToPtr("alice"), Email: lo.ToPtr("alice@example.com")}

	_, err := f.uc.CreateUser(context.Background(), in)
	require.NoError(t, err)

	_, err = f.uc.CreateUser(context.Background(), in)
	code, msg := codeOf(t, err)
	assert.Equal(t, goerror.CodeInvalidField, code)
	assert.Equal(t, "Unique field required: username", msg)
}

func TestCreateUser_RepoFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.err = errors.New("connection refused")

	_, err := f.uc.CreateUser(context.Background(), CreateUserInput{Username: lo.ToPtr("a"), Email: lo.ToPtr("a@b.co")})
	code, _ := codeOf(t, err)
	assert.Equal(t, goerror.CodeInternal, code)
	assert.ErrorIs(t, err, f.repo.err)
}

func TestGetUserByID(t *testing.T) {
	f := newFixture(t)
	f.repo.users[1] = entity.User{ID: 1, Username: "alice"}

	user, err := f.uc.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	user, err = f.uc.GetUserByID(context.Background(), 2)
	assert.NoError(t, err)
	assert.Nil(t, user)

	f.repo.err = errors.New("boom")
	_, err = f.uc.GetUserByID(context.Background(), 1)
	code, _ := codeOf(t, err)
	assert.Equal(t, goerror.CodeInternal, code)
}

func TestUpdateUserByID_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      UpdateUserInput
		wantMsg string
	}{
		{name: "empty username", in: UpdateUserInput{Username: lo.ToPtr("")}, wantMsg: "Username cannot be empty"},
		{name: "bad email", in: UpdateUserInput{Email: lo.ToPtr("nope")}, wantMsg: "Email format incorrect"},
		{name: "empty email", in: UpdateUserInput{Email: lo.ToPtr("")}, wantMsg: "Email format incorrect"},
		{name: "bad date", in: UpdateUserInput{DateOfBirth: lo.ToPtr("yesterday")}, wantMsg: "Date of birth format incorrect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.uc.UpdateUserByID(context.Background(), 1, tt.in)
			code, msg := codeOf(t, err)
			assert.Equal(t, goerror.CodeInvalidField, code)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Zero(t, f.repo.calls)
		})
	}
}

func TestUpdateUserByID(t *testing.T) {
	f := newFixture(t)
	f.repo.users[1] = entity.User{ID: 1, Username: "alice", Email: lo.ToPtr("alice@example.com")}
	f.repo.users[2] = entity.User{ID: 2, Username: "bob"}

	user, err := f.uc.UpdateUserByID(context.Background(), 1, UpdateUserInput{FullName: lo.ToPtr("Alice")})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username, "absent fields are left alone")
	assert.Equal(t, "Alice", lo.FromPtr(user.FullName))

	user, err = f.uc.UpdateUserByID(context.Background(), 9, UpdateUserInput{FullName: lo.ToPtr("x")})
	assert.NoError(t, err)
	assert.Nil(t, user)

	_, err = f.uc.UpdateUserByID(context.Background(), 2, UpdateUserInput{Username: lo.ToPtr("alice")})
	code, msg := codeOf(t, err)
	assert.Equal(t, goerror.CodeInvalidField, code)
	assert.Equal(t, "Unique field required: username", msg)

	require.NoError(t, f.gm.Wait())
	assert.Equal(t, []UserEvent{{Name: event.UserUpdated, UserID: 1, OccurredAt: now}}, f.msg.events)
}

func TestDeleteUserByID(t *testing.T) {
	f := newFixture(t)
	f.repo.users[3] = entity.User{ID: 3, Username: "carol"}

	user, err := f.uc.DeleteUserByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)

	_, err = f.uc.DeleteUserByID(context.Background(), 3)
	code, msg := codeOf(t, err)
	assert.Equal(t, goerror.CodeNoRecord, code)
	assert.Equal(t, "No user by id found", msg)

	f.repo.err = errors.New("boom")
	_, err = f.uc.DeleteUserByID(context.Background(), 3)
	code, _ = codeOf(t, err)
	assert.Equal(t, goerror.CodeInternal, code)

	require.NoError(t, f.gm.Wait())
	assert.Equal(t, []UserEvent{{Name: event.UserDeleted, UserID: 3, OccurredAt: now}}, f.msg.events)
}

func TestGetUserPosts(t *testing.T) {
	f := newFixture(t)
	f.posts.posts[1] = []postentity.Post{{ID: 1, UserID: 1}, {ID: 4, UserID: 1}}

	posts, err := f.uc.GetUserPosts(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	posts, err = f.uc.GetUserPosts(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, posts)

	f.posts.err = errors.New("boom")
	_, err = f.uc.GetUserPosts(context.Background(), 1)
	assert.ErrorIs(t, err, f.posts.err)
	assert.True(t, goerror.HasCode(err, goerror.CodeInternal))
}
