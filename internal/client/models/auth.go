package models

// User is the authenticated account as returned by the login endpoint.
type User struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// LoginResult is the loginResult object of a successful login.
type LoginResult struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

func (r LoginResult) User() User {
	return User{UserID: r.UserID, Name: r.Name}
}
