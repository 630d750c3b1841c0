package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/akm592/coldreach/internal/contacts"
	"github.com/akm592/coldreach/internal/types"
)

// gmailScopes covers sending and reading replies.
var gmailScopes = []string{gmail.GmailSendScope, gmail.GmailReadonlyScope}

// NewGmailService builds a Gmail client from an OAuth client-secret file
// and a previously provisioned token file. There is no interactive flow;
// a missing token is a setup error surfaced to the operator.
func NewGmailService(ctx context.Context, credentialsFile, tokenFile string) (*gmail.Service, error) {
	client, err := oauthClient(ctx, credentialsFile, tokenFile, gmailScopes)
	if err != nil {
		return nil, fmt.Errorf("gmail auth: %w", err)
	}
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("gmail service: %w", err)
	}
	return svc, nil
}

// oauthClient assembles an authorized HTTP client from the client-secret
// and token files.
func oauthClient(ctx context.Context, credentialsFile, tokenFile string, scopes []string) (*http.Client, error) {
	secret, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("client secret read: %w", err)
	}
	config, err := google.ConfigFromJSON(secret, scopes...)
	if err != nil {
		return nil, fmt.Errorf("client secret parse: %w", err)
	}
	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("token load (provision the OAuth token first): %w", err)
	}
	return config.Client(ctx, tok), nil
}

// GmailMailer sends HTML email with a single attachment via the Gmail API.
type GmailMailer struct {
	svc    *gmail.Service
	sender string
}

// NewGmailMailer builds a mailer sending as the given address.
func NewGmailMailer(svc *gmail.Service, sender string) (*GmailMailer, error) {
	cleaned := contacts.NormalizeEmail(sender)
	if cleaned == "" {
		return nil, fmt.Errorf("invalid sender address %q", sender)
	}
	return &GmailMailer{svc: svc, sender: cleaned}, nil
}

// Send delivers the message, retrying transient failures.
func (m *GmailMailer) Send(ctx context.Context, msg types.OutboundMessage) error {
	to := contacts.NormalizeEmail(msg.To)
	if to == "" {
		return fmt.Errorf("invalid recipient address %q", msg.To)
	}

	raw, err := buildMIMEMessage(m.sender, to, msg.Subject, msg.Body, msg.AttachmentPath)
	if err != nil {
		return err
	}

	return withRetry(ctx, "gmail send", func() error {
		_, err := m.svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
		return err
	})
}

// buildMIMEMessage assembles a multipart/mixed message with an HTML body
// and an optional attachment, returned base64url-encoded as the Gmail API
// requires.
func buildMIMEMessage(from, to, subject, htmlBody, attachmentPath string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	bodyHeader := map[string][]string{
		"Content-Type": {"text/html; charset=UTF-8"},
	}
	bodyPart, err := writer.CreatePart(bodyHeader)
	if err != nil {
		return "", fmt.Errorf("mime body part: %w", err)
	}
	if _, err := bodyPart.Write([]byte(htmlBody)); err != nil {
		return "", fmt.Errorf("mime body write: %w", err)
	}

	if attachmentPath != "" {
		data, err := os.ReadFile(attachmentPath)
		if err != nil {
			return "", fmt.Errorf("attachment read: %w", err)
		}
		name := filepath.Base(attachmentPath)
		attachHeader := map[string][]string{
			"Content-Type":              {"application/octet-stream"},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", name)},
		}
		attachPart, err := writer.CreatePart(attachHeader)
		if err != nil {
			return "", fmt.Errorf("mime attachment part: %w", err)
		}
		if _, err := attachPart.Write([]byte(base64.StdEncoding.EncodeToString(data))); err != nil {
			return "", fmt.Errorf("mime attachment write: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("mime close: %w", err)
	}
	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// GmailReplyChecker detects unread inbox mail from a given sender.
type GmailReplyChecker struct {
	svc *gmail.Service
}

// NewGmailReplyChecker builds a reply checker over the service.
func NewGmailReplyChecker(svc *gmail.Service) *GmailReplyChecker {
	return &GmailReplyChecker{svc: svc}
}

// Check searches for unread inbox mail from the address and returns the
// newest message's snippet for classification.
func (c *GmailReplyChecker) Check(ctx context.Context, fromEmail string) (string, bool, error) {
	from := contacts.NormalizeEmail(fromEmail)
	if from == "" {
		return "", false, fmt.Errorf("invalid reply address %q", fromEmail)
	}

	query := fmt.Sprintf("from:%s in:inbox is:unread", from)
	var resp *gmail.ListMessagesResponse
	err := withRetry(ctx, "gmail reply check", func() error {
		var innerErr error
		resp, innerErr = c.svc.Users.Messages.List("me").Q(query).MaxResults(1).Context(ctx).Do()
		return innerErr
	})
	if err != nil {
		return "", false, err
	}
	if len(resp.Messages) == 0 {
		return "", false, nil
	}

	msg, err := c.svc.Users.Messages.Get("me", resp.Messages[0].Id).Format("minimal").Context(ctx).Do()
	if err != nil {
		// A reply exists even if its body could not be fetched.
		return "", true, nil
	}
	return msg.Snippet, true, nil
}

// tokenFromFile loads a persisted OAuth token.
func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("token decode: %w", err)
	}
	return tok, nil
}
