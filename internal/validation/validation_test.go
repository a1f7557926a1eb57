package validation

import (
	"strings"
	"testing"

	"campushub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Short Is Fine", "p1", false},
		{"Exactly Max Bytes", strings.Repeat("a", 72), false},
		{"Empty", "", true},
		{"Too Long", strings.Repeat("a", 73), true},
		{"Multibyte Over Limit", strings.Repeat("é", 37), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	// 254 chars total: 64 local + @ + 185 domain label + ".com" (4)
	emailAt254 := strings.Repeat("a", 64) + "@" + strings.Repeat("b", 185) + ".com"
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "test@example.com", false},
		{"Exactly 254 Characters", emailAt254, false},
		{"Too Long", "a" + emailAt254, true},
		{"Invalid Format", "not-an-email", true},
		{"Missing Domain", "user@", true},
		{"Multiple At Symbols", "user@@example.com", true},
		{"Space In Local Part", "user @example.com", true},
		{"Trailing Dot In Domain", "user@example.com.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateName("Alice"))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("x", 101)))
}

func TestValidateYears(t *testing.T) {
	t.Parallel()
	year := func(y int) *int { return &y }

	assert.NoError(t, ValidateYears(nil, nil))
	assert.NoError(t, ValidateYears(year(2022), year(2026)))
	assert.Error(t, ValidateYears(year(2026), year(2022)))
	assert.Error(t, ValidateYears(year(20), nil))
}

func TestValidatePostFields(t *testing.T) {
	t.Parallel()
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }
	diff := func(d models.Difficulty) *models.Difficulty { return &d }

	tests := []struct {
		name        string
		fields      models.PostFields
		requireCore bool
		wantErr     bool
	}{
		{"Complete Create", models.PostFields{Title: str("t"), Description: str("d")}, true, false},
		{"Create Missing Description", models.PostFields{Title: str("t")}, true, true},
		{"Create Blank Title", models.PostFields{Title: str("  "), Description: str("d")}, true, true},
		{"Patch Without Core", models.PostFields{Company: str("Acme")}, false, false},
		{"Patch Blank Description", models.PostFields{Description: str("")}, false, true},
		{"Known Difficulty", models.PostFields{Difficulty: diff(models.DifficultyMediumHard)}, false, false},
		{"Unknown Difficulty", models.PostFields{Difficulty: diff("Brutal")}, false, true},
		{"Negative Rounds", models.PostFields{NumberOfRounds: num(-1)}, false, true},
		{"Zero Problems", models.PostFields{NumberOfProblems: num(0)}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePostFields(tt.fields, tt.requireCore)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
