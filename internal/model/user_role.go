package model

const RoleOwner = "owner"

type UserRole struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Ctime  int64  `json:"ctime"`
}
