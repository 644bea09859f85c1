package employee

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

type Employee struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EmployeeCode      string         `gorm:"column:employee_code"`
	FirstName         string         `gorm:"column:first_name"`
	LastName          string         `gorm:"column:last_name"`
	Email             string         `gorm:"column:email"`
	Phone             *string        `gorm:"column:phone"`
	Department        string         `gorm:"column:department"`
	Position          string         `gorm:"column:position"`
	Salary            *float64       `gorm:"column:salary"`
	HireDate          time.Time      `gorm:"column:hire_date;type:date"`
	Status            string         `gorm:"column:status"`
	ManagerID         *uuid.UUID     `gorm:"column:manager_id;type:uuid"`
	DateOfBirth       *time.Time     `gorm:"column:date_of_birth;type:date"`
	Gender            *string        `gorm:"column:gender"`
	Address           *string        `gorm:"column:address"`
	City              *string        `gorm:"column:city"`
	State             *string        `gorm:"column:state"`
	ZipCode           *string        `gorm:"column:zip_code"`
	Country           *string        `gorm:"column:country"`
	EmergencyContact  *string        `gorm:"column:emergency_contact"`
	EmergencyPhone    *string        `gorm:"column:emergency_phone"`
	Skills            pq.StringArray `gorm:"column:skills;type:text[]"`
	Experience        *int           `gorm:"column:experience"`
	Education         *string        `gorm:"column:education"`
	Certifications    pq.StringArray `gorm:"column:certifications;type:text[]"`
	PerformanceRating *float64       `gorm:"column:performance_rating"`
	AvatarURL         *string        `gorm:"column:avatar_url"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// AgeAt returns whole years between the birth date and now, counting a year
// as 365.25 days. Nil when the birth date is unknown.
func (e Employee) AgeAt(now time.Time) *int {
	if e.DateOfBirth == nil {
		return nil
	}
	days := now.Sub(*e.DateOfBirth).Hours() / 24
	age := int(math.Floor(days / 365.25))
	return &age
}
