package gql

import (
	"strings"

	"go-hrgql/internal/auth"
	"go-hrgql/internal/employee"

	graphql "github.com/graph-gophers/graphql-go"
)

type employeeInput struct {
	EmployeeCode      string
	FirstName         string
	LastName          string
	Email             string
	Phone             *string
	DateOfBirth       *DateTime
	Gender            *string
	Department        string
	Position          string
	Salary            *float64
	HireDate          DateTime
	ManagerID         *graphql.ID
	Status            string
	Address           *string
	City              *string
	State             *string
	ZipCode           *string
	Country           *string
	EmergencyContact  *string
	EmergencyPhone    *string
	Skills            []string
	Experience        *int32
	Education         *string
	Certifications    []string
	PerformanceRating *float64
	AvatarURL         *string
}

type employeeUpdateInput struct {
	EmployeeCode      *string
	FirstName         *string
	LastName          *string
	Email             *string
	Phone             *string
	DateOfBirth       *DateTime
	Gender            *string
	Department        *string
	Position          *string
	Salary            *float64
	HireDate          *DateTime
	ManagerID         *graphql.ID
	Status            *string
	Address           *string
	City              *string
	State             *string
	ZipCode           *string
	Country           *string
	EmergencyContact  *string
	EmergencyPhone    *string
	Skills            *[]string
	Experience        *int32
	Education         *string
	Certifications    *[]string
	PerformanceRating *float64
	AvatarURL         *string
}

type employeeFiltersInput struct {
	Search            *string
	Department        *string
	Position          *string
	Status            *string
	ManagerID         *graphql.ID
	Gender            *string
	City              *string
	State             *string
	Country           *string
	MinAge            *int32
	MaxAge            *int32
	MinSalary         *float64
	MaxSalary         *float64
	MinExperience     *int32
	MaxExperience     *int32
	HiredAfter        *DateTime
	HiredBefore       *DateTime
	HasManager        *bool
	Skills            *[]string
	PerformanceRating *float64
}

type loginInput struct {
	Email    string
	Password string
}

type registerInput struct {
	Email    string
	Password string
	Role     string
}

// enumIn maps an API enum value to its stored form.
func enumIn(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.ToLower(*v)
	return &s
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

func idString(v *graphql.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func idStrings(ids []graphql.ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

func (in employeeInput) toRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		EmployeeCode:      in.EmployeeCode,
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             in.Email,
		Phone:             in.Phone,
		DateOfBirth:       in.DateOfBirth.timePtr(),
		Gender:            enumIn(in.Gender),
		Department:        in.Department,
		Position:          in.Position,
		Salary:            in.Salary,
		HireDate:          in.HireDate.Time,
		ManagerID:         idString(in.ManagerID),
		Address:           in.Address,
		City:              in.City,
		State:             in.State,
		ZipCode:           in.ZipCode,
		Country:           in.Country,
		EmergencyContact:  in.EmergencyContact,
		EmergencyPhone:    in.EmergencyPhone,
		Skills:            orEmpty(in.Skills),
		Experience:        intPtr(in.Experience),
		Education:         in.Education,
		Certifications:    orEmpty(in.Certifications),
		PerformanceRating: in.PerformanceRating,
		Status:            strings.ToLower(in.Status),
		AvatarURL:         in.AvatarURL,
	}
}

func (in employeeUpdateInput) toRequest() employee.UpdateEmployeeRequest {
	return employee.UpdateEmployeeRequest{
		EmployeeCode:      in.EmployeeCode,
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             in.Email,
		Phone:             in.Phone,
		DateOfBirth:       in.DateOfBirth.timePtr(),
		Gender:            enumIn(in.Gender),
		Department:        in.Department,
		Position:          in.Position,
		Salary:            in.Salary,
		HireDate:          in.HireDate.timePtr(),
		ManagerID:         idString(in.ManagerID),
		Status:            enumIn(in.Status),
		Address:           in.Address,
		City:              in.City,
		State:             in.State,
		ZipCode:           in.ZipCode,
		Country:           in.Country,
		EmergencyContact:  in.EmergencyContact,
		EmergencyPhone:    in.EmergencyPhone,
		Skills:            in.Skills,
		Experience:        intPtr(in.Experience),
		Education:         in.Education,
		Certifications:    in.Certifications,
		PerformanceRating: in.PerformanceRating,
		AvatarURL:         in.AvatarURL,
	}
}

func (in *employeeFiltersInput) toFilter() employee.EmployeeFilter {
	if in == nil {
		return employee.EmployeeFilter{}
	}
	f := employee.EmployeeFilter{
		Search:            in.Search,
		Department:        in.Department,
		Position:          in.Position,
		Status:            enumIn(in.Status),
		ManagerID:         idString(in.ManagerID),
		Gender:            enumIn(in.Gender),
		City:              in.City,
		State:             in.State,
		Country:           in.Country,
		MinAge:            intPtr(in.MinAge),
		MaxAge:            intPtr(in.MaxAge),
		MinSalary:         in.MinSalary,
		MaxSalary:         in.MaxSalary,
		MinExperience:     intPtr(in.MinExperience),
		MaxExperience:     intPtr(in.MaxExperience),
		HiredAfter:        in.HiredAfter.timePtr(),
		HiredBefore:       in.HiredBefore.timePtr(),
		HasManager:        in.HasManager,
		PerformanceRating: in.PerformanceRating,
	}
	if in.Skills != nil {
		f.Skills = *in.Skills
	}
	return f
}

func (in registerInput) toRequest() auth.RegisterRequest {
	return auth.RegisterRequest{
		Email:    in.Email,
		Password: in.Password,
		Role:     strings.ToLower(in.Role),
	}
}
