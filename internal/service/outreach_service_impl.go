package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/danvoss/stride/internal/domain"
	"github.com/danvoss/stride/internal/llm"
	"github.com/danvoss/stride/internal/repository"
)

const outreachSystemPrompt = `You are a business development assistant writing outreach emails.
Write a short, direct email to the contact described below. Professional but warm, no filler.
Respond with the subject on the first line prefixed "Subject: ", then a blank line, then the body.`

type outreachService struct {
	contacts repository.ContactRepo
	client   llm.Client
	cfg      llm.Config
}

func NewOutreachService(contacts repository.ContactRepo, client llm.Client, cfg llm.Config) OutreachService {
	return &outreachService{contacts: contacts, client: client, cfg: cfg}
}

func (s *outreachService) Draft(ctx context.Context, contactID string, angle string) (*OutreachDraft, error) {
	if !s.cfg.Enabled || s.client == nil {
		return nil, llm.ErrDisabled
	}

	contact, err := s.contacts.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		SystemPrompt: outreachSystemPrompt,
		UserPrompt:   buildOutreachPrompt(contact, angle),
		Temperature:  0.7,
		MaxTokens:    400,
	})
	if err != nil {
		return nil, fmt.Errorf("drafting outreach for %s: %w", contact.Name, err)
	}

	subject, body := splitDraft(resp.Text)
	return &OutreachDraft{
		Subject: subject,
		Body:    body,
		Model:   resp.Model,
	}, nil
}

func buildOutreachPrompt(c *domain.Contact, angle string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contact: %s", c.Name)
	if c.Company != "" {
		fmt.Fprintf(&b, " (%s)", c.Company)
	}
	fmt.Fprintf(&b, "\nPipeline stage: %s\n", c.Stage)
	if c.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", c.Notes)
	}
	if angle != "" {
		fmt.Fprintf(&b, "Angle for this email: %s\n", angle)
	}
	return b.String()
}

// splitDraft separates the "Subject: " first line from the body. If the model
// ignored the format, the whole response becomes the body.
func splitDraft(text string) (subject, body string) {
	text = strings.TrimSpace(text)
	first, rest, found := strings.Cut(text, "\n")
	if !found {
		return "", text
	}
	if after, ok := strings.CutPrefix(strings.TrimSpace(first), "Subject:"); ok {
		return strings.TrimSpace(after), strings.TrimSpace(rest)
	}
	return "", text
}
