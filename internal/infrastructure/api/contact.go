package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/contact"
)

// ContactService wraps /contacts
type ContactService struct {
	client    *Client
	validator *contact.Validator
}

// NewContactService creates the contact service
func NewContactService(c *Client) *ContactService {
	return &ContactService{client: c, validator: contact.NewValidator()}
}

// Submit validates the form and sends it. Invalid forms never reach the
// backend.
func (s *ContactService) Submit(ctx context.Context, form contact.Form) Result[contact.Receipt] {
	if err := s.validator.Validate(&form); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			return Fail[contact.Receipt](Validation("Please fill in all required fields", verr.Fields, err))
		}
		return Fail[contact.Receipt](Validation("Please check the form", nil, err))
	}

	res := do[contact.Receipt](ctx, s.client, call{
		op:      "contacts.submit",
		method:  http.MethodPost,
		url:     s.client.endpoints.Contacts.Submit,
		body:    form,
		failMsg: "Failed to send message. Please try again or contact me directly.",
	})
	if res.OK() && !res.Data.Success && res.Data.Message != "" {
		return Fail[contact.Receipt](&Error{Kind: KindHTTP, Status: http.StatusOK, Message: res.Data.Message})
	}
	return res
}
