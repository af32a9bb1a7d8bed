package loja

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// AuthState pairs the account collection with the session. CurrentUser is
// a weak reference materialized as a copy: the authoritative record lives
// in Users, and every mutation touching that record re-syncs the copy in
// the same transition.
type AuthState struct {
	CurrentUser *User  `json:"currentUser"`
	Users       []User `json:"users"`
}

func defaultAuthState() AuthState {
	return AuthState{}
}

// Login authenticates against the Users collection. Email matching is
// case-insensitive, password matching is exact.
type Login struct {
	Email    string
	Password string
}

// Name implements Action.
func (Login) Name() string { return "auth/login" }

// Logout clears the session. Always succeeds.
type Logout struct{}

// Name implements Action.
func (Logout) Name() string { return "auth/logout" }

// AddUser appends a new account. The id ("u_" + unix millis) and creation
// timestamp are assigned by the reducer. Email uniqueness is not checked;
// duplicate emails are permitted by inherited behavior.
type AddUser struct {
	UserName string
	Email    string
	Password string
	Role     Role
	Avatar   string
}

// Name implements Action.
func (AddUser) Name() string { return "users/add" }

// UpdateUser replaces the matching record by id; unknown ids are no-ops.
// When the updated id equals the session's id, the session copy is
// replaced in the same transition.
type UpdateUser struct {
	User User
}

// Name implements Action.
func (UpdateUser) Name() string { return "users/update" }

// UpdateProfile is UpdateUser initiated by the account owner. Identical
// invariant handling; the distinct name lets the dispatch boundary gate
// the two differently.
type UpdateProfile struct {
	User User
}

// Name implements Action.
func (UpdateProfile) Name() string { return "auth/updateProfile" }

// DeleteUser removes the record; deleting the session's own user also
// clears the session (forced logout).
type DeleteUser struct {
	ID string
}

// Name implements Action.
func (DeleteUser) Name() string { return "users/delete" }

func reduceAuth(st AuthState, action Action, now func() time.Time) (AuthState, any, bool, error) {
	switch a := action.(type) {
	case Login:
		user, err := authenticate(st.Users, a.Email, a.Password)
		if err != nil {
			return st, nil, true, err
		}
		st.CurrentUser = &user
		return st, user, true, nil
	case Logout:
		st.CurrentUser = nil
		return st, nil, true, nil
	case AddUser:
		ts := now()
		user := User{
			ID:        fmt.Sprintf("u_%d", ts.UnixMilli()),
			Name:      a.UserName,
			Email:     a.Email,
			Password:  a.Password,
			Role:      a.Role,
			Avatar:    a.Avatar,
			CreatedAt: ts.Format(time.RFC3339),
		}
		st.Users = append(append([]User(nil), st.Users...), user)
		return st, user, true, nil
	case UpdateUser:
		return replaceUser(st, a.User), nil, true, nil
	case UpdateProfile:
		return replaceUser(st, a.User), nil, true, nil
	case DeleteUser:
		users := make([]User, 0, len(st.Users))
		for _, u := range st.Users {
			if u.ID != a.ID {
				users = append(users, u)
			}
		}
		st.Users = users
		if st.CurrentUser != nil && st.CurrentUser.ID == a.ID {
			st.CurrentUser = nil
		}
		return st, nil, true, nil
	}
	return st, nil, false, nil
}

// replaceUser swaps the record matching user.ID and re-syncs the session
// copy when it points at the same id. Unknown ids leave st untouched.
func replaceUser(st AuthState, user User) AuthState {
	idx := -1
	for i, u := range st.Users {
		if u.ID == user.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return st
	}
	users := append([]User(nil), st.Users...)
	users[idx] = user
	st.Users = users
	if st.CurrentUser != nil && st.CurrentUser.ID == user.ID {
		st.CurrentUser = &user
	}
	return st
}

// authenticate looks a user up by case-insensitive email. The first match
// wins, which is also the inherited tie-break for duplicate emails.
func authenticate(users []User, email, password string) (User, error) {
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			if u.Password != password {
				return User{}, ErrInvalidCredentials
			}
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// Login dispatches an authentication attempt and returns the matched user.
func (s *Store) Login(ctx context.Context, email, password string) (User, error) {
	res, err := s.do(ctx, Login{Email: email, Password: password})
	if err != nil {
		return User{}, err
	}
	user, _ := res.(User)
	return user, nil
}

// CurrentUser returns the session user, if any.
func (s *Store) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Auth.CurrentUser == nil {
		return User{}, false
	}
	return *s.state.Auth.CurrentUser, true
}

// Users returns a copy of the account collection.
func (s *Store) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]User(nil), s.state.Auth.Users...)
}

// UserByID looks an account up by id.
func (s *Store) UserByID(id string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.state.Auth.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
