package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"foundation/internal/errors"
	"foundation/internal/model"
)

func TestContactService_Submit(t *testing.T) {
	tests := []struct {
		name    string
		input   ContactInput
		wantErr string
	}{
		{
			name: "valid message",
			input: ContactInput{
				Name:    "Sam Okafor",
				Email:   "sam@example.org",
				Subject: "Partnership",
				Message: "We would like to partner on the water program.",
			},
		},
		{
			name: "name too short after sanitization",
			input: ContactInput{
				Name:    "<>",
				Email:   "sam@example.org",
				Message: "We would like to partner on the water program.",
			},
			wantErr: "name must be between 2 and 50 characters",
		},
		{
			name: "invalid email",
			input: ContactInput{
				Name:    "Sam Okafor",
				Email:   "not-an-email",
				Message: "We would like to partner on the water program.",
			},
			wantErr: "invalid email address",
		},
		{
			name: "message too short",
			input: ContactInput{
				Name:    "Sam Okafor",
				Email:   "sam@example.org",
				Message: "hi",
			},
			wantErr: "message must be at least 10 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockContactRepository)
			if tt.wantErr == "" {
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.ContactMessage")).Return(nil)
			}
			svc := NewContactService(repo)

			message, err := svc.Submit(context.Background(), tt.input)

			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.ContactNew, message.Status)
				assert.NotEmpty(t, message.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestContactService_UpdateStatus(t *testing.T) {
	t.Run("moves a message through the inbox", func(t *testing.T) {
		repo := new(MockContactRepository)
		repo.On("FindByID", mock.Anything, "msg-1").
			Return(&model.ContactMessage{ID: "msg-1", Status: model.ContactNew}, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.ContactMessage")).Return(nil)
		svc := NewContactService(repo)

		message, err := svc.UpdateStatus(context.Background(), "msg-1", model.ContactReplied)

		assert.NoError(t, err)
		assert.Equal(t, model.ContactReplied, message.Status)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		svc := NewContactService(new(MockContactRepository))

		_, err := svc.UpdateStatus(context.Background(), "msg-1", "spam")

		var ve *errors.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}
