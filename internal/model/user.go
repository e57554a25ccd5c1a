package model

import "strings"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type Address struct {
	ID        string `json:"id" bson:"id"`
	Division  string `json:"division" bson:"division"`
	District  string `json:"district" bson:"district"`
	Upazila   string `json:"upazila" bson:"upazila"`
	Details   string `json:"details" bson:"details"`
	IsDefault bool   `json:"isDefault" bson:"isDefault"`
}

type User struct {
	BaseModel         `bson:",inline"`
	Name              string    `json:"name" bson:"name"`
	Email             string    `json:"email" bson:"email"`
	Phone             string    `json:"phone" bson:"phone"`
	PasswordHash      string    `json:"-" bson:"passwordHash"`
	Role              Role      `json:"role" bson:"role"`
	ProfilePictureURL string    `json:"profilePictureUrl" bson:"profilePictureUrl"`
	Addresses         []Address `json:"addresses" bson:"addresses"`
	Orders            []Order   `json:"orders" bson:"orders"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultAddress returns the default address, else the first one, else nil.
func (u *User) DefaultAddress() *Address {
	for i := range u.Addresses {
		if u.Addresses[i].IsDefault {
			return &u.Addresses[i]
		}
	}
	if len(u.Addresses) > 0 {
		return &u.Addresses[0]
	}
	return nil
}

func (u *User) FindAddress(id string) *Address {
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			return &u.Addresses[i]
		}
	}
	return nil
}

func (u *User) FindOrder(id string) *Order {
	for i := range u.Orders {
		if u.Orders[i].ID == id {
			return &u.Orders[i]
		}
	}
	return nil
}
