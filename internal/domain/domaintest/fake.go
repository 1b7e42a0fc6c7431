// Package domaintest generates realistic employee and client records for tests.
package domaintest

import (
	"fmt"

	"github.com/fisto/crm-sync/internal/domain"
	"github.com/jaswdr/faker"
)

var designations = domain.DesignationCodes()

// Employee returns a random employee with the given id.
func Employee(f faker.Faker, id string) domain.Employee {
	person := f.Person()
	e := domain.Employee{
		ID:             id,
		Name:           person.Name(),
		Designation:    f.RandomStringElement(designations),
		JobRole:        domain.RoleOnrole,
		WorkingStatus:  domain.StatusActive,
		Gender:         f.RandomStringElement([]string{"male", "female", "other"}),
		PersonalEmail:  f.Internet().Email(),
		OfficeEmail:    f.Internet().CompanyEmail(),
		PersonalNumber: f.Numerify("9#########"),
		OfficeNumber:   f.Numerify("044-########"),
		Address:        f.Address().Address(),
		DateOfBirth:    fmt.Sprintf("19%02d-%02d-%02d", f.IntBetween(70, 99), f.IntBetween(1, 12), f.IntBetween(1, 28)),
		CreatedAt:      fmt.Sprintf("2024-%02d-%02d 10:00:00", f.IntBetween(1, 12), f.IntBetween(1, 28)),
	}
	if f.Bool() {
		e.JobRole = domain.RoleIntern
		e.StartDate = "2024-01-01"
		e.EndDate = "2024-07-01"
		e.Duration = "6 months"
	} else {
		e.JoinDate = fmt.Sprintf("20%02d-%02d-01", f.IntBetween(10, 24), f.IntBetween(1, 12))
	}
	if f.IntBetween(0, 3) == 0 {
		e.WorkingStatus = domain.StatusInactive
	}
	return e
}

// Employees returns n random employees with unique ids EMP0001, EMP0002, ...
func Employees(f faker.Faker, n int) []domain.Employee {
	out := make([]domain.Employee, n)
	for i := range out {
		out[i] = Employee(f, fmt.Sprintf("EMP%04d", i+1))
	}
	return out
}

// Client returns a random client with all required fields set.
func Client(f faker.Faker) domain.Client {
	return domain.Client{
		CustomerID:   f.Numerify("CUST###"),
		CompanyName:  f.Company().Name(),
		CustomerName: f.Person().Name(),
		CreatedDate:  "2024-03-05",
		PhoneNo:      f.Numerify("98########"),
		MailID:       f.Internet().Email(),
	}
}
