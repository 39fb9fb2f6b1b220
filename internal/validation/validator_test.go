package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/traitmint/internal/errors"
	"github.com/listenupapp/traitmint/internal/validation"
)

type testCollection struct {
	Count      int      `yaml:"count" validate:"gte=1"`
	Categories []string `yaml:"categories" validate:"min=1,unique,dive,required,excludesall=/\\"`
	Prefix     string   `json:"name_prefix" validate:"required"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(testCollection{
		Count:      10,
		Categories: []string{"background", "hat"},
		Prefix:     "NFT #",
	})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		input     testCollection
		wantField string
		wantMsg   string
	}{
		{
			name:      "zero count",
			input:     testCollection{Count: 0, Categories: []string{"a"}, Prefix: "x"},
			wantField: "testCollection.count",
			wantMsg:   "must be greater than or equal to 1",
		},
		{
			name:      "no categories",
			input:     testCollection{Count: 1, Categories: []string{}, Prefix: "x"},
			wantField: "testCollection.categories",
			wantMsg:   "must have at least 1 entries",
		},
		{
			name:      "duplicate categories",
			input:     testCollection{Count: 1, Categories: []string{"hat", "hat"}, Prefix: "x"},
			wantField: "testCollection.categories",
			wantMsg:   "must not contain duplicates",
		},
		{
			name:      "category with path separator",
			input:     testCollection{Count: 1, Categories: []string{"../hat"}, Prefix: "x"},
			wantField: "testCollection.categories[0]",
			wantMsg:   "must not contain any of /\\",
		},
		{
			name:      "json tag name used when no yaml tag",
			input:     testCollection{Count: 1, Categories: []string{"a"}},
			wantField: "testCollection.name_prefix",
			wantMsg:   "is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField], "details: %v", details)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}
