// Package scheduler runs the periodic background jobs that keep campaigns
// moving through their lifecycle.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/bersihin/bersihin-api/cache"
	"github.com/bersihin/bersihin-api/databases"
	"github.com/bersihin/bersihin-api/models"
	"github.com/bersihin/bersihin-api/rewards"
	templates "github.com/bersihin/bersihin-api/templates/html"
)

// Scheduler handles periodic background jobs for campaigns
type Scheduler struct {
	cron       *cron.Cron
	CDB        databases.CampaignDatabase
	PartDB     databases.ParticipantDatabase
	ProfDB     databases.ProfileDatabase
	Rewards    *rewards.Service
	Cache      *cache.Cache
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	cDB databases.CampaignDatabase,
	partDB databases.ParticipantDatabase,
	profDB databases.ProfileDatabase,
	rewardSvc *rewards.Service,
	campaignCache *cache.Cache,
) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		CDB:        cDB,
		PartDB:     partDB,
		ProfDB:     profDB,
		Rewards:    rewardSvc,
		Cache:      campaignCache,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Move campaigns through upcoming -> ongoing -> completed every 5 minutes
	_, err := s.cron.AddFunc("@every 5m", s.transitionCampaigns)
	if err != nil {
		zap.S().Errorw("failed to register campaign transition job", "error", err)
	}

	// Send day-before reminder emails daily at 9 AM UTC
	_, err = s.cron.AddFunc("0 9 * * *", s.sendReminders)
	if err != nil {
		zap.S().Errorw("failed to register reminder job", "error", err)
	}

	// Drop expired campaign cache entries every minute
	_, err = s.cron.AddFunc("@every 1m", s.sweepCache)
	if err != nil {
		zap.S().Errorw("failed to register cache sweep job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Campaign scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Campaign scheduler stopped")
}

// transitionCampaigns flips campaign statuses based on their start and end
// times. Completing a campaign also pays out the completion reward to every
// participant.
func (s *Scheduler) transitionCampaigns() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := primitive.NewDateTimeFromTime(time.Now())
	changed := 0

	// upcoming -> ongoing once the start time has passed
	started, err := s.CDB.Find(ctx, bson.M{
		"status":    models.CampaignUpcoming,
		"startTime": bson.M{"$lte": now},
	})
	if err != nil {
		zap.S().Errorw("failed to find campaigns due to start", "error", err)
		return
	}
	for _, campaign := range started {
		_, err := s.CDB.UpdateOne(ctx,
			bson.M{"_id": campaign.ID, "status": models.CampaignUpcoming},
			bson.M{"$set": bson.M{"status": models.CampaignOngoing}},
		)
		if err != nil {
			zap.S().Errorw("failed to start campaign", "error", err, "campaignId", campaign.ID.Hex())
			continue
		}
		changed++
	}

	// ongoing -> completed once the end time has passed
	ended, err := s.CDB.Find(ctx, bson.M{
		"status":  models.CampaignOngoing,
		"endTime": bson.M{"$lte": now},
	})
	if err != nil {
		zap.S().Errorw("failed to find campaigns due to complete", "error", err)
		return
	}
	for _, campaign := range ended {
		res, err := s.CDB.UpdateOne(ctx,
			bson.M{"_id": campaign.ID, "status": models.CampaignOngoing},
			bson.M{"$set": bson.M{"status": models.CampaignCompleted}},
		)
		if err != nil {
			zap.S().Errorw("failed to complete campaign", "error", err, "campaignId", campaign.ID.Hex())
			continue
		}
		changed++

		// The status guard on the filter means only the instance that won the
		// update pays out; a second instance matches zero rows.
		if res.ModifiedCount > 0 {
			s.awardCompletion(ctx, campaign)
		}
	}

	if changed > 0 {
		s.Cache.InvalidateAll()
		zap.S().Infow("Campaign transitions applied",
			"instance", s.instanceID,
			"transitions", changed,
		)
	}
}

// awardCompletion grants the completion reward to every participant of the
// campaign and sends each a thank-you email.
func (s *Scheduler) awardCompletion(ctx context.Context, campaign models.Campaign) {
	participants, err := s.PartDB.FindByCampaign(ctx, campaign.ID)
	if err != nil {
		zap.S().Errorw("failed to list participants for completion awards",
			"error", err, "campaignId", campaign.ID.Hex())
		return
	}

	for _, p := range participants {
		newExp, err := s.Rewards.Award(ctx, p.ProfileID, rewards.ActionCompleteCampaign)
		if err != nil {
			zap.S().Warnw("completion award failed",
				"error", err,
				"campaignId", campaign.ID.Hex(),
				"profileId", p.ProfileID,
			)
			continue
		}
		zap.S().Debugw("completion exp awarded",
			"campaignId", campaign.ID.Hex(),
			"profileId", p.ProfileID,
			"newExp", newExp,
		)
		// the send outlives the job context; keep it alive past the job's
		// cancel, bounded on its own deadline
		emailCtx, emailCancel := context.WithTimeout(context.WithoutCancel(ctx), time.Minute)
		go func(profileID string) {
			defer emailCancel()
			s.sendCompletionEmail(emailCtx, profileID, campaign)
		}(p.ProfileID)
	}

	zap.S().Infow("Campaign completion awards processed",
		"campaignId", campaign.ID.Hex(),
		"participants", len(participants),
	)
}

// sendReminders emails everyone joined to a campaign starting within the next
// 24 hours. The reminderSent flag keeps the daily run from double-sending.
func (s *Scheduler) sendReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now()
	oneDayFromNow := now.Add(24 * time.Hour)

	upcoming, err := s.CDB.Find(ctx, bson.M{
		"status": models.CampaignUpcoming,
		"startTime": bson.M{
			"$gt": primitive.NewDateTimeFromTime(now),
			"$lt": primitive.NewDateTimeFromTime(oneDayFromNow),
		},
		"reminderSent": false,
	})
	if err != nil {
		zap.S().Errorw("failed to find campaigns needing reminders", "error", err)
		return
	}

	sent := 0
	for _, campaign := range upcoming {
		participants, err := s.PartDB.FindByCampaign(ctx, campaign.ID)
		if err != nil {
			zap.S().Errorw("failed to list participants for reminder",
				"error", err, "campaignId", campaign.ID.Hex())
			continue
		}

		for _, p := range participants {
			s.sendReminderEmail(ctx, p.ProfileID, campaign)
			sent++
		}

		_, err = s.CDB.UpdateOne(ctx, bson.M{"_id": campaign.ID}, bson.M{
			"$set": bson.M{"reminderSent": true},
		})
		if err != nil {
			zap.S().Errorw("failed to mark reminder sent",
				"error", err, "campaignId", campaign.ID.Hex())
		}
	}

	zap.S().Infow("Reminder processing complete",
		"instance", s.instanceID,
		"campaigns", len(upcoming),
		"remindersSent", sent,
	)
}

// sweepCache drops expired campaign list entries so memory does not grow with
// stale keys between reads.
func (s *Scheduler) sweepCache() {
	if dropped := s.Cache.Sweep(); dropped > 0 {
		zap.S().Debugw("campaign cache swept", "dropped", dropped)
	}
}

// --- Email Helper Functions ---

func (s *Scheduler) sendEmail(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("Bersihin", "no-reply@bersihin.app")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}

func (s *Scheduler) getProfileEmail(ctx context.Context, profileID string) (email, name string) {
	id, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return "", ""
	}
	profile, err := s.ProfDB.FindOne(ctx, bson.M{"_id": id})
	if err != nil || profile.Email == "" {
		return "", ""
	}
	return profile.Email, profile.Name
}

func (s *Scheduler) sendReminderEmail(ctx context.Context, profileID string, campaign models.Campaign) {
	email, name := s.getProfileEmail(ctx, profileID)
	if email == "" {
		return
	}

	subject := "Reminder: " + campaign.Title + " starts tomorrow - Bersihin"
	startLabel := campaign.StartTime.Time().Format("Monday, 2 Jan 2006 15:04 MST")
	htmlContent := templates.RenderCampaignReminderEmail(name, campaign.Title, startLabel, campaign.LocationLabel)
	plainText := "The campaign " + campaign.Title + " you joined starts tomorrow at " + startLabel + "."

	if err := s.sendEmail(email, name, subject, htmlContent, plainText); err != nil {
		zap.S().Errorw("failed to send reminder email",
			"error", err,
			"campaignId", campaign.ID.Hex(),
			"profileId", profileID,
		)
	}
}

func (s *Scheduler) sendCompletionEmail(ctx context.Context, profileID string, campaign models.Campaign) {
	email, name := s.getProfileEmail(ctx, profileID)
	if email == "" {
		return
	}

	subject := "Thank you for joining " + campaign.Title + " - Bersihin"
	htmlContent := templates.RenderCampaignCompletedEmail(name, campaign.Title, rewards.Points[rewards.ActionCompleteCampaign])
	plainText := "The campaign " + campaign.Title + " is complete. Thanks for taking part!"

	if err := s.sendEmail(email, name, subject, htmlContent, plainText); err != nil {
		zap.S().Errorw("failed to send completion email",
			"error", err,
			"campaignId", campaign.ID.Hex(),
			"profileId", profileID,
		)
	}
}
