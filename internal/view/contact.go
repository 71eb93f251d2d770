package view

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Zachkp/portfolio-site/internal/content"
)

// ErrSubmitInFlight is returned when a submission is already running.
var ErrSubmitInFlight = errors.New("contact submission already in flight")

// MessageSender posts a contact message.
type MessageSender interface {
	SubmitMessage(ctx context.Context, msg content.ContactMessage) error
}

// Banner is the outcome banner of the latest submission.
type Banner int

const (
	BannerNone Banner = iota
	BannerSuccess
	BannerError
)

// ContactForm holds the contact form's controlled field values.
type ContactForm struct {
	*Lifetime
	sender MessageSender
	logger *slog.Logger

	values     content.ContactMessage
	submitting bool
	banner     Banner
}

// ContactFormState is a render snapshot of a ContactForm.
type ContactFormState struct {
	Values     content.ContactMessage
	Submitting bool
	Banner     Banner
}

func (s ContactFormState) Success() bool { return s.Banner == BannerSuccess }
func (s ContactFormState) Failure() bool { return s.Banner == BannerError }

func NewContactForm(parent context.Context, sender MessageSender, logger *slog.Logger) *ContactForm {
	return &ContactForm{
		Lifetime: NewLifetime(parent),
		sender:   sender,
		logger:   logger.With(slog.String("view", "contact")),
		values:   content.ContactMessage{Subject: content.SubjectChoices[0].Value},
	}
}

// Load has nothing to fetch; the form is ready as soon as it mounts.
func (f *ContactForm) Load() { f.Settle() }

// SetValues replaces the controlled field values.
func (f *ContactForm) SetValues(msg content.ContactMessage) {
	f.Commit(func() { f.values = msg })
}

// Submit sends msg once. While a submission is running further calls return
// ErrSubmitInFlight without sending. Success clears the fields; failure
// keeps them for the visitor to retry.
func (f *ContactForm) Submit(msg content.ContactMessage) error {
	started := false
	f.Commit(func() {
		if f.submitting {
			return
		}
		f.submitting = true
		f.banner = BannerNone
		f.values = msg
		started = true
	})
	if !started {
		if !f.Mounted() {
			return context.Canceled
		}
		return ErrSubmitInFlight
	}

	// The write outlives an unmount; only the state update is dropped.
	err := f.sender.SubmitMessage(context.WithoutCancel(f.Context()), msg)

	f.Commit(func() {
		f.submitting = false
		if err != nil {
			f.banner = BannerError
			return
		}
		f.banner = BannerSuccess
		f.values = content.ContactMessage{Subject: content.SubjectChoices[0].Value}
	})
	if err != nil {
		f.logger.Warn("contact_submit_failed", slog.Any("error", err))
		return err
	}
	f.logger.Info("contact_submit_succeeded")
	return nil
}

func (f *ContactForm) Snapshot() ContactFormState {
	var s ContactFormState
	f.Read(func() {
		s = ContactFormState{Values: f.values, Submitting: f.submitting, Banner: f.banner}
	})
	return s
}
