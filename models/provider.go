package models

import "time"

// ProviderProfile holds the public-facing provider fields.
type ProviderProfile struct {
	Name      string `bson:"name" json:"name"`
	Specialty string `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Status    string `bson:"status,omitempty" json:"status,omitempty"`
}

// Security carries credentials. Plaintext fields are request/response only
// and never stored; hashes are stored and never serialized out.
type Security struct {
	Password     string `bson:"-" json:"password,omitempty"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	Token        string `bson:"-" json:"token,omitempty"`
	TokenHash    string `bson:"tokenHash,omitempty" json:"-"`
}

// Provider owns a ScheduleConfig; the engine reads it, the provider API
// replaces it wholesale.
type Provider struct {
	ID             string          `bson:"id" json:"id"`
	Profile        ProviderProfile `bson:"profile" json:"profile"`
	Security       Security        `bson:"security" json:"security,omitzero"`
	ScheduleConfig ScheduleConfig  `bson:"scheduleConfig" json:"scheduleConfig"`
	CreatedAt      time.Time       `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt      time.Time       `bson:"updatedAt" json:"updatedAt,omitzero"`
}
