package mailer

import (
	"fmt"
	"html"
	"strings"
)

const divider = "============================================================"

// plainTextBody renders the text/plain part of a digest email.
func plainTextBody(data DigestEmail) string {
	lines := []string{
		fmt.Sprintf("Cognition Digest - %s", data.Title),
		"",
		divider,
		"",
		"📝 KEY POINTS:",
		"",
	}
	for i, point := range data.KeyPoints {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, point))
	}
	lines = append(lines,
		"",
		divider,
		"",
		fmt.Sprintf("📊 Word Count: %d", data.WordCount),
		fmt.Sprintf("🌐 Language: %s", data.Language),
		fmt.Sprintf("📍 Source: %s", data.Source),
	)

	if data.URL != "" {
		lines = append(lines, fmt.Sprintf("🔗 URL: %s", data.URL))
	} else if data.VideoID != "" {
		lines = append(lines, fmt.Sprintf("🎥 Video ID: %s", data.VideoID))
	}

	if data.FullText != "" {
		lines = append(lines, "", divider, "", "📄 FULL SUMMARY:", "", data.FullText)
	}

	lines = append(lines,
		"",
		divider,
		"",
		fmt.Sprintf("Report ID: %s", data.ReportID),
		"",
		"---",
		"Powered by Cognition Digest",
		"https://cognition-digest.com",
	)

	return strings.Join(lines, "\n")
}

// htmlBody renders the text/html part of a digest email.
func htmlBody(data DigestEmail) string {
	var points strings.Builder
	for i, point := range data.KeyPoints {
		fmt.Fprintf(&points, `
      <li style="margin-bottom: 12px; line-height: 1.6;">
        <strong style="color: #667eea;">%d.</strong> %s
      </li>`, i+1, html.EscapeString(point))
	}

	fullText := ""
	if data.FullText != "" {
		fullText = fmt.Sprintf(`
          <tr>
            <td style="padding: 0 30px 30px 30px;">
              <h3 style="margin: 0 0 15px 0; color: #333; font-size: 18px;">
                📄 Full Summary
              </h3>
              <div style="background-color: #ffffff; border: 1px solid #e0e0e0; padding: 20px; border-radius: 8px; line-height: 1.8; color: #555;">
                %s
              </div>
            </td>
          </tr>`,
			strings.ReplaceAll(html.EscapeString(data.FullText), "\n", "<br>"))
	}

	sourceURL := ""
	if data.URL != "" {
		escaped := html.EscapeString(data.URL)
		sourceURL = fmt.Sprintf(`
                <tr>
                  <td colspan="2" style="color: #666; font-size: 14px; padding-top: 8px;">
                    <strong>🔗 Source URL:</strong><br>
                    <a href="%s" style="color: #667eea; text-decoration: none;">%s</a>
                  </td>
                </tr>`, escaped, escaped)
	}

	return strings.TrimSpace(fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background-color: #f5f5f5;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f5f5f5; padding: 40px 20px;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 12px; box-shadow: 0 4px 6px rgba(0,0,0,0.1); overflow: hidden;">

          <tr>
            <td style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 40px 30px; text-align: center;">
              <h1 style="margin: 0; color: #ffffff; font-size: 28px; font-weight: 600;">
                📊 Cognition Digest
              </h1>
              <p style="margin: 10px 0 0 0; color: #ffffff; opacity: 0.9; font-size: 14px;">
                Your AI-Powered Content Summary
              </p>
            </td>
          </tr>

          <tr>
            <td style="padding: 30px 30px 20px 30px;">
              <h2 style="margin: 0; color: #333; font-size: 24px; line-height: 1.4;">%s</h2>
            </td>
          </tr>

          <tr>
            <td style="padding: 0 30px 30px 30px;">
              <div style="background-color: #f8f9fa; border-left: 4px solid #667eea; padding: 20px; border-radius: 8px;">
                <h3 style="margin: 0 0 15px 0; color: #667eea; font-size: 18px;">
                  🔑 Key Points
                </h3>
                <ul style="margin: 0; padding-left: 20px; list-style: none;">%s
                </ul>
              </div>
            </td>
          </tr>
%s
          <tr>
            <td style="padding: 0 30px 30px 30px;">
              <table width="100%%" cellpadding="8" cellspacing="0" style="border-top: 1px solid #e0e0e0; padding-top: 20px;">
                <tr>
                  <td style="color: #666; font-size: 14px;">
                    <strong>📊 Word Count:</strong> %d
                  </td>
                  <td style="color: #666; font-size: 14px;">
                    <strong>🌐 Language:</strong> %s
                  </td>
                </tr>
                <tr>
                  <td style="color: #666; font-size: 14px;">
                    <strong>📍 Source:</strong> %s
                  </td>
                  <td style="color: #666; font-size: 14px;">
                    <strong>🆔 Report ID:</strong> %s
                  </td>
                </tr>%s
              </table>
            </td>
          </tr>

          <tr>
            <td style="background-color: #f8f9fa; padding: 30px; text-align: center; border-top: 1px solid #e0e0e0;">
              <p style="margin: 0 0 10px 0; color: #666; font-size: 14px;">
                Powered by <strong style="color: #667eea;">Cognition Digest</strong>
              </p>
              <p style="margin: 0; color: #999; font-size: 12px;">
                AI-powered content summarization for the modern era
              </p>
            </td>
          </tr>

        </table>
      </td>
    </tr>
  </table>
</body>
</html>`,
		html.EscapeString(data.Title),
		html.EscapeString(data.Title),
		points.String(),
		fullText,
		data.WordCount,
		strings.ToUpper(data.Language),
		html.EscapeString(data.Source),
		html.EscapeString(data.ReportID),
		sourceURL,
	))
}
