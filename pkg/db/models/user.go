package models

import "time"

// Country is a selectable user country, identified by its ISO 3166 codes
type Country struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:text;not null"`
	ISO2 string `gorm:"column:iso2;type:text;not null;uniqueIndex"`
	ISO3 string `gorm:"column:iso3;type:text;not null"`
}

func (Country) TableName() string {
	return "t_country"
}

// User represents a registered user and recipe author
type User struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"type:text"`
	LastName  string `gorm:"type:text"`
	Email     string `gorm:"type:text;not null;uniqueIndex"`
	Language  string `gorm:"type:text"`
	CountryID *uint  `gorm:"index"`

	FirstCreated time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	LastAdapted  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string {
	return "t_user"
}
