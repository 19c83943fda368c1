package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGenderScheme(t *testing.T) {
	s := DefaultGenderScheme()

	testCases := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"female", "Female", true},
		{" F ", "Female", true},
		{"Woman", "Female", true},
		{"MALE", "Male", true},
		{"m", "Male", true},
		{"non-binary", "Other", true},
		{"Other", "Other", true},
		{"", "", false},
		{"unknown", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := s.Normalize(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
	assert.Equal(t, "Female", s.Diversity)
	assert.Equal(t, []string{"Female", "Male", "Other"}, s.Canonical())
}

func TestLoadGenderSchemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genders.toml")
	content := `
diversity = "Woman"

[values]
Woman = ["w", "female", "f"]
Man = ["man", "male"]
Undisclosed = ["prefer not to say", "-"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := LoadGenderScheme(path)
	require.NoError(t, err)

	got, ok := s.Normalize("Prefer Not To Say")
	assert.True(t, ok)
	assert.Equal(t, "Undisclosed", got)

	got, ok = s.Normalize("F")
	assert.True(t, ok)
	assert.Equal(t, "Woman", got)
	assert.Equal(t, "Woman", s.Diversity)
}

func TestLoadGenderSchemeEmptyPath(t *testing.T) {
	s, err := LoadGenderScheme("")
	require.NoError(t, err)
	assert.Equal(t, "Female", s.Diversity)
}

func TestParseGenderSchemeRejectsBadConfig(t *testing.T) {
	testCases := map[string]string{
		"diversity not defined": `diversity = "X"
[values]
Male = ["m"]`,
		"token mapped twice": `diversity = "Female"
[values]
Female = ["f"]
Male = ["f"]`,
		"no values":   `diversity = "Female"`,
		"broken toml": `diversity = `,
	}

	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseGenderScheme([]byte(content))
			assert.Error(t, err)
		})
	}
}
