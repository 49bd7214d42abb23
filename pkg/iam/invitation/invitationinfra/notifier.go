package invitationinfra

import (
	"context"
	"fmt"

	"github.com/riderota/core/pkg/config"
	"github.com/riderota/core/pkg/iam/invitation"
	"github.com/riderota/core/pkg/jobx"
	"github.com/riderota/core/pkg/logx"
	"github.com/riderota/core/pkg/notifx"
)

const (
	// JobTypeInvitationEmail is the jobx type carrying an invitation email.
	JobTypeInvitationEmail = "invitation.email"

	TemplateInvitation = "invitation"
)

const invitationSubject = `You're invited to join {{.Tenant}} on Riderota`

const invitationHTML = `<p>Hello,</p>
<p>You have been invited to join <strong>{{.Tenant}}</strong> as {{.Role}}.</p>
{{if .WelcomeMessage}}<blockquote>{{.WelcomeMessage}}</blockquote>{{end}}
<p><a href="{{.AcceptURL}}">Accept your invitation</a></p>
<p>This link expires on {{.ExpiresAt}}.</p>`

// EmailData is rendered into the invitation template.
type EmailData struct {
	Tenant         string
	Role           string
	WelcomeMessage string
	AcceptURL      string
	ExpiresAt      string
}

// ============================================================================
// Direct notifier
// ============================================================================

// EmailNotifier sends the invitation email synchronously.
type EmailNotifier struct {
	mailer     *notifx.Client
	rootDomain string
	acceptPath string
}

// NewEmailNotifier registers the invitation template on mailer.
func NewEmailNotifier(mailer *notifx.Client, rootDomain string, cfg config.InvitationConfig) (*EmailNotifier, error) {
	if err := mailer.RegisterTemplate(TemplateInvitation, invitationSubject, invitationHTML); err != nil {
		return nil, err
	}
	return &EmailNotifier{
		mailer:     mailer,
		rootDomain: rootDomain,
		acceptPath: cfg.AcceptURLPath,
	}, nil
}

// AcceptURL is the link an invitee opens. It points at the invitation's own
// tenant subdomain.
func (n *EmailNotifier) AcceptURL(inv *invitation.Invitation) string {
	return fmt.Sprintf("https://%s.%s%s/%s", inv.TenantSlug, n.rootDomain, n.acceptPath, inv.Token)
}

func (n *EmailNotifier) InvitationCreated(ctx context.Context, inv *invitation.Invitation) error {
	data := EmailData{
		Tenant:    inv.TenantSlug.String(),
		Role:      inv.Role.String(),
		AcceptURL: n.AcceptURL(inv),
		ExpiresAt: inv.ExpiresAt.UTC().Format("Jan 2, 2006 15:04 MST"),
	}
	if inv.WelcomeMessage != nil {
		data.WelcomeMessage = *inv.WelcomeMessage
	}

	return n.mailer.SendTemplatedEmail(ctx, TemplateInvitation, data,
		notifx.EmailMessage{To: []string{inv.Email}},
		notifx.WithTags(map[string]string{"kind": "invitation", "tenant": inv.TenantSlug.String()}))
}

// ============================================================================
// Queued notifier
// ============================================================================

// QueuedNotifier defers the email to a jobx worker.
type QueuedNotifier struct {
	jobs  jobx.Enqueuer
	queue string
}

func NewQueuedNotifier(jobs jobx.Enqueuer, queue string) *QueuedNotifier {
	return &QueuedNotifier{jobs: jobs, queue: queue}
}

// The job carries the whole invitation, token included, so the worker never
// reads it back from a repository that only returns unredeemed rows.
func (n *QueuedNotifier) InvitationCreated(ctx context.Context, inv *invitation.Invitation) error {
	job, err := jobx.NewJob(JobTypeInvitationEmail, n.queue, payload{
		Invitation: *inv,
		Token:      inv.Token,
	})
	if err != nil {
		return err
	}

	id, err := n.jobs.Enqueue(ctx, job)
	if err != nil {
		return err
	}
	logx.WithContext(ctx).WithFields(logx.Fields{
		"job_id":        id,
		"invitation_id": inv.ID,
	}).Debug("invitation email queued")
	return nil
}

// Invitation.Token is hidden from JSON, so it travels separately.
type payload struct {
	Invitation invitation.Invitation `json:"invitation"`
	Token      string                `json:"token"`
}

// RegisterEmailJob makes client deliver queued invitation emails through
// direct.
func RegisterEmailJob(client *jobx.Client, direct invitation.Notifier) {
	client.Register(JobTypeInvitationEmail, func(ctx context.Context, job *jobx.JobInfo) error {
		var p payload
		if err := job.Decode(&p); err != nil {
			return err
		}
		inv := p.Invitation
		inv.Token = p.Token
		return direct.InvitationCreated(ctx, &inv)
	})
}
