package search

import (
	"fmt"
	"testing"

	"github.com/fisto/crm-sync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var ravi = domain.Employee{
	ID:             "EMP0042",
	Name:           "Ravi Kumar",
	Designation:    "HR",
	JobRole:        domain.RoleIntern,
	WorkingStatus:  domain.StatusActive,
	PersonalEmail:  "ravi.k@example.com",
	OfficeEmail:    "ravi@fist-o.com",
	PersonalNumber: "9876543210",
	Address:        "12 Anna Salai, Chennai",
}

func TestSubstringProvider(t *testing.T) {
	p := NewSubstringProvider()

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"emp0042", true},
		{"KUMAR", true},
		{"example.com", true},
		{"fist-o", false},
		{"chennai", false},
		{"9876", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Match(ravi, tt.query))
		})
	}
	assert.Equal(t, "substring", p.Name())
}

func TestSubstringProviderOptions(t *testing.T) {
	p := NewSubstringProvider(WithCaseInsensitive(false), WithFields(FieldAddress, FieldPhone, FieldDesignation))

	assert.True(t, p.Match(ravi, "Chennai"))
	assert.False(t, p.Match(ravi, "chennai"))
	assert.True(t, p.Match(ravi, "9876"))
	assert.True(t, p.Match(ravi, "Human Resource"))
	assert.False(t, p.Match(ravi, "Ravi"))
}

func TestSubstringProviderUnknownFieldIgnored(t *testing.T) {
	p := NewSubstringProvider(WithFields("salary"))
	assert.False(t, p.Match(ravi, "ravi"))
	assert.True(t, p.Match(ravi, ""))
}

func TestRegexProvider(t *testing.T) {
	p := NewRegexProvider()

	assert.True(t, p.Match(ravi, "^emp\\d+$"))
	assert.True(t, p.Match(ravi, "kumar$"))
	assert.False(t, p.Match(ravi, "^kumar"))
	assert.True(t, p.Match(ravi, ""))
	assert.Equal(t, "regex", p.Name())
}

func TestRegexProviderInvalidPatternMatchesNothing(t *testing.T) {
	p := NewRegexProvider().(*RegexProvider)
	assert.False(t, p.Match(ravi, "ravi("))
	assert.False(t, p.Match(ravi, "ravi("), "cached failure path")

	require.Contains(t, p.cache, "ravi(")
	assert.Error(t, p.cache["ravi("].err)
	assert.Nil(t, p.cache["ravi("].re)
}

func TestRegexProviderCacheIsBounded(t *testing.T) {
	p := NewRegexProvider().(*RegexProvider)
	for i := 0; i < 3*maxCachedPatterns; i++ {
		p.Match(ravi, fmt.Sprintf("ravi%d", i))
		assert.LessOrEqual(t, len(p.cache), maxCachedPatterns)
	}
	assert.True(t, p.Match(ravi, "^ravi"), "matching still works after a reset")
}

func TestRegexProviderCaseSensitive(t *testing.T) {
	p := NewRegexProvider(WithCaseInsensitive(false))
	assert.False(t, p.Match(ravi, "^ravi kumar"))
	assert.True(t, p.Match(ravi, "^Ravi Kumar"))
}

func TestRegexProviderCachesCompiledPatterns(t *testing.T) {
	p := NewRegexProvider().(*RegexProvider)
	p.Match(ravi, "ravi")
	p.Match(ravi, "ravi")
	p.Match(ravi, "kumar")
	assert.Len(t, p.cache, 2)
}

func TestTokenProvider(t *testing.T) {
	p := NewTokenProvider()

	assert.True(t, p.Match(ravi, ""))
	assert.True(t, p.Match(ravi, "ravi kumar"))
	assert.True(t, p.Match(ravi, "kumar emp00"))
	assert.False(t, p.Match(ravi, "ravi priya"))
	assert.True(t, p.Match(ravi, "role:intern ravi"))
	assert.True(t, p.Match(ravi, "status:Active"))
	assert.False(t, p.Match(ravi, "role:onrole"))
	assert.False(t, p.Match(ravi, "status:inactive ravi"))
	assert.False(t, p.Match(ravi, "role:boss"))
	assert.False(t, p.Match(ravi, "team:north"), "unknown prefixes are plain text")
	assert.Equal(t, "token", p.Name())
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields([]string{" Name ", "", "office_email"})
	require.NoError(t, err)
	assert.Equal(t, []string{FieldName, FieldOfficeEmail}, fields)

	_, err = ParseFields([]string{"name", "salary"})
	assert.ErrorContains(t, err, "salary")

	for _, f := range Fields {
		v := fieldValue(ravi, f)
		if v == "" {
			continue
		}
		assert.True(t, NewSubstringProvider(WithFields(f)).Match(ravi, v), f)
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "substring", "regex", "token", "REGEX"} {
		p, err := New(name)
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}
	_, err := New("fuzzy")
	assert.Error(t, err)
}

func TestProviderAsMatcher(t *testing.T) {
	employees := []domain.Employee{ravi, {ID: "EMP0001", Name: "Priya"}}
	got := domain.FilterEmployeesWith(employees, domain.Filter{Search: "^pri"}, NewRegexProvider())
	require.Len(t, got, 1)
	assert.Equal(t, "EMP0001", got[0].ID)
}

func TestMockProvider(t *testing.T) {
	m := &MockProvider{}
	m.On("Match", ravi, "x").Return(true)
	m.On("Match", mock.Anything, "y").Return(func(e domain.Employee, q string) bool { return e.ID == "none" })
	m.On("Name").Return("mock")

	assert.True(t, m.Match(ravi, "x"))
	assert.False(t, m.Match(ravi, "y"))
	assert.Equal(t, "mock", m.Name())
	m.AssertExpectations(t)
}
