package services

import (
	"testing"

	"github.com/Dosada05/league-platform/models"
	"github.com/stretchr/testify/assert"
)

func TestIsValidStatusTransition(t *testing.T) {
	tests := []struct {
		name    string
		current models.TournamentStatus
		next    models.TournamentStatus
		want    bool
	}{
		{"soon to registration", models.StatusSoon, models.StatusRegistration, true},
		{"soon to canceled", models.StatusSoon, models.StatusCanceled, true},
		{"soon to active skips registration", models.StatusSoon, models.StatusActive, false},
		{"registration to active", models.StatusRegistration, models.StatusActive, true},
		{"active to completed", models.StatusActive, models.StatusCompleted, true},
		{"active to canceled", models.StatusActive, models.StatusCanceled, true},
		{"completed is terminal", models.StatusCompleted, models.StatusActive, false},
		{"canceled is terminal", models.StatusCanceled, models.StatusRegistration, false},
		{"same status is a no-op", models.StatusActive, models.StatusActive, true},
		{"no going back", models.StatusActive, models.StatusRegistration, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isValidStatusTransition(tt.current, tt.next))
		})
	}
}

func TestGetExtensionFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", ".jpg"},
		{"image/jpg", ".jpg"},
		{"image/png", ".png"},
		{"image/gif", ".gif"},
		{"image/webp", ".webp"},
		{"image/svg+xml", ".svg"},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			got, err := GetExtensionFromContentType(tt.contentType)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := GetExtensionFromContentType("application/pdf")
	assert.Error(t, err)
	_, err = GetExtensionFromContentType("")
	assert.Error(t, err)
}
