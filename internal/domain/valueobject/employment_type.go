package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// EmploymentType – immutable value object
// ---------------------------------------------------------------------------

// EmploymentType classifies the applicant's income source.
type EmploymentType struct {
	value string
}

const (
	employmentSalaried     = "salaried"
	employmentSelfEmployed = "self_employed"
)

var (
	EmploymentTypeSalaried     = EmploymentType{value: employmentSalaried}
	EmploymentTypeSelfEmployed = EmploymentType{value: employmentSelfEmployed}
)

var validEmploymentTypes = map[string]EmploymentType{
	employmentSalaried:     EmploymentTypeSalaried,
	employmentSelfEmployed: EmploymentTypeSelfEmployed,
}

// NewEmploymentType creates an EmploymentType from a raw string.
func NewEmploymentType(s string) (EmploymentType, error) {
	v, ok := validEmploymentTypes[s]
	if !ok {
		return EmploymentType{}, fmt.Errorf("invalid employment type: %q", s)
	}
	return v, nil
}

// String returns the string representation.
func (e EmploymentType) String() string { return e.value }

// IsZero returns true when not initialised.
func (e EmploymentType) IsZero() bool { return e.value == "" }

// IsSelfEmployed reports whether the applicant is self-employed.
func (e EmploymentType) IsSelfEmployed() bool { return e.value == employmentSelfEmployed }
