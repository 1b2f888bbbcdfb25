package templates

import (
	"fmt"
	"html"
)

// RenderCampaignReminderEmail generates the HTML for the day-before campaign
// reminder email.
func RenderCampaignReminderEmail(name, campaignTitle, startTime, location string) string {
	safeName := html.EscapeString(name)
	safeTitle := html.EscapeString(campaignTitle)
	safeStart := html.EscapeString(startTime)
	safeLocation := html.EscapeString(location)

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Campaign Reminder - Bersihin</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4faf4; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #34d399 0%%, #059669 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #1f2937; line-height: 1.6; font-size: 15px; }
    .detail-box { background: rgba(5, 150, 105, 0.08); border: 1px solid rgba(5, 150, 105, 0.25); border-radius: 12px; padding: 20px; margin: 20px 0; }
    .detail-box h3 { color: #059669; margin-top: 0; font-size: 16px; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid rgba(0,0,0,0.08); }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>🌱 Your cleanup is tomorrow!</h1>
    </div>
    <div class="content">
      <h2>Hi %s,</h2>
      <p>This is a reminder that the campaign <strong>%s</strong> you joined starts tomorrow.</p>
      <div class="detail-box">
        <h3>📍 Details</h3>
        <p style="margin-bottom: 0;">Starts: <strong>%s</strong><br>Location: <strong>%s</strong></p>
      </div>
      <p>Bring gloves and a bottle of water. See you there!</p>
    </div>
    <div class="footer">
      <p>Bersihin &middot; keep your neighborhood clean</p>
    </div>
  </div>
</body>
</html>`, safeName, safeTitle, safeStart, safeLocation)
}

// RenderCampaignCompletedEmail generates the HTML for the thank-you email
// sent once a campaign the profile joined has finished.
func RenderCampaignCompletedEmail(name, campaignTitle string, expAwarded int64) string {
	safeName := html.EscapeString(name)
	safeTitle := html.EscapeString(campaignTitle)

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Campaign Complete - Bersihin</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4faf4; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #34d399 0%%, #059669 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #1f2937; line-height: 1.6; font-size: 15px; }
    .exp-badge { display: inline-block; background: #059669; color: #fff; padding: 10px 22px; border-radius: 999px; font-weight: 700; margin-top: 10px; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid rgba(0,0,0,0.08); }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>🎉 Thank you for cleaning up!</h1>
    </div>
    <div class="content">
      <h2>Hi %s,</h2>
      <p>The campaign <strong>%s</strong> is complete. Thanks for showing up and making a difference.</p>
      <p><span class="exp-badge">+%d EXP</span></p>
    </div>
    <div class="footer">
      <p>Bersihin &middot; keep your neighborhood clean</p>
    </div>
  </div>
</body>
</html>`, safeName, safeTitle, expAwarded)
}
