package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username       string             `json:"username" bson:"username" validate:"required"`
	Email          string             `json:"email" bson:"email" validate:"required,email"`
	Password       string             `json:"-" bson:"password"`
	Name           string             `json:"name" bson:"name" validate:"required"`
	Role           string             `json:"role" bson:"role"`
	Directorate    *string            `json:"directorate" bson:"directorate"`
	SubDirectorate *string            `json:"sub_directorate" bson:"sub_directorate"`
	Division       *string            `json:"division" bson:"division"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// Identity is the authenticated caller's projection used for authorization
// decisions. It carries no password material.
type Identity struct {
	ID             primitive.ObjectID `json:"id"`
	Username       string             `json:"username"`
	Email          string             `json:"email"`
	Name           string             `json:"name"`
	Role           string             `json:"role"`
	Directorate    *string            `json:"directorate"`
	SubDirectorate *string            `json:"sub_directorate"`
	Division       *string            `json:"division"`
}

func (u *User) Identity() Identity {
	return Identity{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		Directorate:    u.Directorate,
		SubDirectorate: u.SubDirectorate,
		Division:       u.Division,
	}
}

func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}

// UserFilter narrows List results; nil fields are not applied.
type UserFilter struct {
	Role           *string
	Directorate    *string
	SubDirectorate *string
	Search         *string // case-insensitive match on name, username, email
}
