package notification

import "fmt"

// notificationSubject is the subject line for the ready-to-publish email.
const notificationSubject = "Dein LinkedIn-Post ist bereit 🚀"

// buildEmailBody renders the HTML notification for an employee whose post
// is waiting in the linked document.
func buildEmailBody(employeeName, docURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif;
      line-height: 1.6;
      color: #1e293b;
      max-width: 600px;
      margin: 0 auto;
      padding: 20px;
    }
    .header {
      text-align: center;
      padding: 20px 0;
      border-bottom: 1px solid #e2e8f0;
    }
    .content {
      padding: 30px 0;
    }
    .button {
      display: inline-block;
      background-color: #3b82f6;
      color: white;
      padding: 12px 24px;
      text-decoration: none;
      border-radius: 8px;
      font-weight: 500;
      margin: 20px 0;
    }
    .footer {
      text-align: center;
      padding-top: 20px;
      border-top: 1px solid #e2e8f0;
      color: #64748b;
      font-size: 14px;
    }
  </style>
</head>
<body>
  <div class="header">
    <h1>🚀 Dein LinkedIn-Post ist bereit</h1>
  </div>

  <div class="content">
    <p>Hallo %s,</p>

    <p>Ein neuer LinkedIn-Post wurde für dich vorbereitet und wartet auf deine Veröffentlichung.</p>

    <p>
      <a href="%s" class="button">📄 Dokument öffnen</a>
    </p>

    <p>Bitte prüfe den Text und poste ihn auf LinkedIn.</p>

    <p>Viele Grüsse<br>Dein Content-Team</p>
  </div>

  <div class="footer">
    <p>Diese E-Mail wurde automatisch von FIVE LI Content Flow generiert.</p>
  </div>
</body>
</html>
`, employeeName, docURL)
}
