package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusActive      = 1
	StatusDeactivated = 2

	RoleAdmin    = 1
	RoleCustomer = 2

	DefaultProfileImage = "defaultuserpic.png"
)

// User nunca expone el hash de la contraseña en JSON.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	Password     string             `json:"-" bson:"password"`
	StatusID     int                `json:"status_id" bson:"status_id"`
	RoleID       int                `json:"role_id" bson:"role_id"`
	ProfileImage string             `json:"profileImage" bson:"profileImage"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

func (u *User) IsActive() bool { return u.StatusID != StatusDeactivated }
func (u *User) IsAdmin() bool  { return u.RoleID == RoleAdmin }

// RegisterInput es el cuerpo de POST /api/register. status_id y role_id se
// aceptan por compatibilidad pero el servidor los fija.
type RegisterInput struct {
	Name         string `json:"name"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,max=72"`
	StatusID     int    `json:"status_id"`
	RoleID       int    `json:"role_id"`
	ProfileImage string `json:"profileImage"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserUpdate es el cuerpo de PUT /api/users/:id. Password vacío conserva
// el hash actual.
type UserUpdate struct {
	Name         string `json:"name"`
	Email        string `json:"email" binding:"required,email"`
	StatusID     int    `json:"status_id" binding:"oneof=1 2"`
	RoleID       int    `json:"role_id" binding:"oneof=1 2"`
	ProfileImage string `json:"profileImage"`
	Password     string `json:"password" binding:"omitempty,max=72"`
}
