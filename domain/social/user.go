package social

import "slices"

// User is a member of the social graph.
type User struct {
	ID         string   `json:"id" yaml:"id" dynamodbav:"id"`
	Name       string   `json:"name" yaml:"name" dynamodbav:"name"`
	Location   string   `json:"location" yaml:"location" dynamodbav:"location"`
	Schools    []string `json:"schools" yaml:"schools" dynamodbav:"schools"`
	Workplaces []string `json:"workplaces" yaml:"workplaces" dynamodbav:"workplaces"`
	Groups     []string `json:"groups" yaml:"groups" dynamodbav:"groups"`
	Friends    []string `json:"friends" yaml:"friends" dynamodbav:"friends"`
}

// IsFriend reports whether id is in the user's friend set.
func (u *User) IsFriend(id string) bool {
	return slices.Contains(u.Friends, id)
}

func (u *User) addFriend(id string) {
	if !u.IsFriend(id) {
		u.Friends = append(u.Friends, id)
	}
}

func (u *User) removeFriend(id string) {
	u.Friends = slices.DeleteFunc(u.Friends, func(f string) bool { return f == id })
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	u.Schools = slices.Clone(u.Schools)
	u.Workplaces = slices.Clone(u.Workplaces)
	u.Groups = slices.Clone(u.Groups)
	u.Friends = slices.Clone(u.Friends)
	return u
}

// Friendship is an undirected friend edge as stored in snapshots.
type Friendship struct {
	UserID   string `json:"user_id" yaml:"user_id" dynamodbav:"user_id"`
	FriendID string `json:"friend_id" yaml:"friend_id" dynamodbav:"friend_id"`
}
