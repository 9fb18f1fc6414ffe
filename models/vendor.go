package models

import "time"

// Package is a priced service offering in a vendor's catalog. The core only
// reads package prices; catalog CRUD belongs to the vendor subsystem.
type Package struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64 `bson:"price" json:"price"`
}

// Vendor is a service provider profile. Only the fields the core needs for
// authorization, pricing and notification display are modeled here.
type Vendor struct {
	ID           string    `bson:"id" json:"id"`
	BusinessName string    `bson:"business_name" json:"businessName"`
	Email        string    `bson:"email" json:"email"`
	Category     string    `bson:"category,omitempty" json:"category,omitempty"`
	Packages     []Package `bson:"packages,omitempty" json:"packages,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// PackageByID returns the catalog package with the given id, if present.
func (v *Vendor) PackageByID(id string) (Package, bool) {
	for _, p := range v.Packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}
