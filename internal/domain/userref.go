package domain

import "encoding/json"

const unknownUserName = "Unknown User"

// UserRef ссылка на пользователя: либо найденная запись, либо только id,
// если строки в users уже нет (ссылки на пользователей слабые).
type UserRef struct {
	id   string
	user *User
}

func KnownUser(u User) UserRef {
	return UserRef{id: u.ID, user: &u}
}

func UnknownUser(id string) UserRef {
	return UserRef{id: id}
}

func (r UserRef) ID() string {
	return r.id
}

// User возвращает пользователя и false, если ссылка не разрешилась.
func (r UserRef) User() (User, bool) {
	if r.user == nil {
		return User{}, false
	}
	return *r.user, true
}

type userRefJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Unknown   bool   `json:"unknown,omitempty"`
}

func (r UserRef) MarshalJSON() ([]byte, error) {
	if u, ok := r.User(); ok {
		return json.Marshal(userRefJSON{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL})
	}
	return json.Marshal(userRefJSON{ID: r.id, Name: unknownUserName, Unknown: true})
}
