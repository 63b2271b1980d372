package notify

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-gift-backend/internal/domain"
)

// notifications counts dispatch outcomes by result.
var notifications = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gift_notifications_total",
		Help: "Total number of like notification dispatch attempts by outcome.",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(notifications)
}

// Notification is the payload handed to the email transport when a gift
// with a sender email is liked.
type Notification struct {
	RecipientName string
	SenderName    string
	SenderEmail   string
	GiftURL       string
}

// LikeNotifier composes and sends the "your gift was liked" email.
// It implements the services.Notifier contract.
type LikeNotifier struct {
	// Mailer is the underlying email transport.
	Mailer Mailer
}

// GiftLiked builds the notification for the given gift and hands it to the
// mailer. The caller decides whether a notification is owed (sender email
// present) and derives giftURL; this component only composes and sends.
func (n *LikeNotifier) GiftLiked(ctx context.Context, gift *domain.Gift, giftURL string) error {
	p := Notification{
		RecipientName: gift.RecipientName,
		SenderName:    gift.SenderName,
		SenderEmail:   gift.SenderEmail,
		GiftURL:       giftURL,
	}

	body, err := RenderEmail(p)
	if err != nil {
		notifications.WithLabelValues("failed").Inc()
		return fmt.Errorf("notify: render email: %w", err)
	}

	if err := n.Mailer.Send(ctx, p.SenderEmail, Subject(p), body); err != nil {
		notifications.WithLabelValues("failed").Inc()
		return err
	}
	notifications.WithLabelValues("sent").Inc()
	log.Debug().Str("to", p.SenderEmail).Str("gift_url", p.GiftURL).Msg("like notification sent")
	return nil
}

// Subject returns the notification subject line.
func Subject(p Notification) string {
	return fmt.Sprintf("%s loved your Christmas message! ❤️", p.RecipientName)
}

// RenderEmail produces the HTML body for a like notification. Names are
// HTML-escaped by the template engine; the gift URL lands in an href.
func RenderEmail(p Notification) (string, error) {
	var sb strings.Builder
	if err := emailTmpl.Execute(&sb, p); err != nil {
		return "", err
	}
	return sb.String(), nil
}

var emailTmpl = template.Must(template.New("like-notification").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: 'Arial', sans-serif; background-color: #FFF8E1; margin: 0; padding: 0; }
      .container { max-width: 600px; margin: 40px auto; background: white; border-radius: 16px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
      .header { background: linear-gradient(135deg, #2E7D32, #C62828); padding: 40px 20px; text-align: center; }
      .header h1 { color: white; margin: 0; font-size: 28px; }
      .content { padding: 40px 30px; }
      .message { font-size: 18px; line-height: 1.6; color: #333; margin-bottom: 30px; }
      .button { display: inline-block; background: linear-gradient(135deg, #2E7D32, #C62828); color: white; padding: 16px 32px; text-decoration: none; border-radius: 8px; font-weight: bold; margin: 20px 0; }
      .footer { background: #f5f5f5; padding: 20px; text-align: center; color: #666; font-size: 14px; }
      .heart { color: #C62828; font-size: 24px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>🎄 Great News! 🎄</h1>
      </div>
      <div class="content">
        <p class="message">
          Hi {{.SenderName}},
        </p>
        <p class="message">
          <strong>{{.RecipientName}}</strong> just liked your personalized Christmas message! <span class="heart">❤️</span>
        </p>
        <p class="message">
          Your heartfelt words brought joy to their holiday season. Thank you for spreading Christmas cheer!
        </p>
        <center>
          <a href="{{.GiftURL}}" class="button">View Your Gift Page</a>
        </center>
      </div>
      <div class="footer">
        <p>Made with ❤️ for Christmas</p>
        <p>Spreading love, joy, and festive cheer</p>
      </div>
    </div>
  </body>
</html>
`))
