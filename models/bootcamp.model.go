package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Careers a bootcamp may list
var ValidCareers = []string{
	"Web Development",
	"UI/UX",
	"Mobile Development",
	"Data Science",
	"Network Operator",
	"Business",
	"Other",
}

// Location is a GeoJSON-style point derived from the bootcamp address at
// creation time. The raw address itself is never persisted.
type Location struct {
	Longitude        float64 `json:"longitude"`
	Latitude         float64 `json:"latitude"`
	FormattedAddress string  `json:"formattedAddress"`
	Street           string  `json:"street"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	Zipcode          string  `json:"zipcode"`
	Country          string  `json:"country"`
}

type Bootcamp struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`

	// Address is accepted on create only; it is geocoded into Location
	// and then discarded.
	Address string `json:"address,omitempty" gorm:"-"`

	Location Location `json:"location" gorm:"embedded;embeddedPrefix:location_"`

	Careers datatypes.JSONSlice[string] `json:"careers"`

	AverageRating float64 `json:"averageRating"`
	AverageCost   int     `json:"averageCost"` // derived, ceil of mean course tuition
	Photo         string  `json:"photo" gorm:"default:'no-photo.jpg'"`

	Housing       bool `json:"housing" gorm:"default:false"`
	JobAssistance bool `json:"jobAssistance" gorm:"default:false"`
	JobGuarantee  bool `json:"jobGuarantee" gorm:"default:false"`
	AcceptGi      bool `json:"acceptGi" gorm:"default:false"`

	UserID  uint     `json:"user"`
	Courses []Course `json:"courses,omitempty" gorm:"foreignKey:BootcampID"`
}
