package notification

import (
	"context"
	"restaurant-backend/internal/adapter/metrics"
	"restaurant-backend/internal/core/domain/models"
	"restaurant-backend/internal/core/domain/types"
	"restaurant-backend/internal/core/port"
	"restaurant-backend/pkg/logger"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	log      logger.Logger
	whatsapp port.WhatsAppSender
	fcm      port.PushSender
	pushover port.SwitchablePushSender
	now      func() time.Time
}

func NewNotificationService(whatsapp port.WhatsAppSender, fcm port.PushSender, pushover port.SwitchablePushSender, log logger.Logger) *Service {
	return &Service{
		log:      log,
		whatsapp: whatsapp,
		fcm:      fcm,
		pushover: pushover,
		now:      time.Now,
	}
}

// ValidateConfig reports which channels have complete configuration.
func (svc *Service) ValidateConfig() map[string]bool {
	return map[string]bool{
		models.ChannelWhatsApp: svc.whatsapp.Configured(),
		models.ChannelFCM:      svc.fcm.Configured(),
		models.ChannelPushover: svc.pushover.Enabled() && svc.pushover.Configured(),
	}
}

func (svc *Service) anyConfigured() bool {
	for _, ok := range svc.ValidateConfig() {
		if ok {
			return true
		}
	}
	return false
}

type attempt struct {
	channel string
	send    func(ctx context.Context) models.NotificationResult
}

// SendUnified fans the message out to every applicable channel and waits for all of them.
// A failing channel never prevents the others from being attempted.
func (svc *Service) SendUnified(ctx context.Context, req models.UnifiedRequest) (models.UnifiedNotificationOutcome, error) {
	if !svc.anyConfigured() {
		svc.log.Warn(ctx, types.ActionNoChannels, "no notification services are configured")
		return models.UnifiedNotificationOutcome{}, models.ErrorNoChannelsConfigured
	}

	title := req.Title
	if title == "" {
		title = models.DefaultNotificationTitle
	}

	attempts := []attempt{
		{
			channel: models.ChannelWhatsApp,
			send: func(ctx context.Context) models.NotificationResult {
				return svc.whatsapp.SendWhatsApp(ctx, req.Message, req.ToNumber)
			},
		},
		{
			channel: models.ChannelFCM,
			send: func(ctx context.Context) models.NotificationResult {
				return svc.fcm.SendPush(ctx, title, req.Message, req.FCMToken)
			},
		},
	}
	if svc.pushover.Enabled() {
		attempts = append(attempts, attempt{
			channel: models.ChannelPushover,
			send: func(ctx context.Context) models.NotificationResult {
				return svc.pushover.SendPush(ctx, title, req.Message, "")
			},
		})
	}

	services, overall := svc.run(ctx, attempts)

	outcome := models.UnifiedNotificationOutcome{
		OverallSuccess: overall,
		Services:       services,
		Timestamp:      svc.now().UTC(),
	}
	svc.log.Info(ctx, types.ActionFanOutCompleted, "unified notification finished",
		"overall_success", overall,
		"channels", len(services),
	)
	return outcome, nil
}

// SendWhatsApp sends through the Twilio channel only.
func (svc *Service) SendWhatsApp(ctx context.Context, message, toNumber string) models.NotificationResult {
	res := svc.whatsapp.SendWhatsApp(ctx, message, toNumber)
	metrics.ObserveNotification(models.ChannelWhatsApp, res.Success)
	return res
}

// SendPush sends through FCM and, when enabled, Pushover.
func (svc *Service) SendPush(ctx context.Context, title, body, fcmToken string) models.PushOutcome {
	if title == "" {
		title = models.DefaultNotificationTitle
	}

	attempts := []attempt{
		{
			channel: models.ChannelFCM,
			send: func(ctx context.Context) models.NotificationResult {
				return svc.fcm.SendPush(ctx, title, body, fcmToken)
			},
		},
	}
	if svc.pushover.Enabled() {
		attempts = append(attempts, attempt{
			channel: models.ChannelPushover,
			send: func(ctx context.Context) models.NotificationResult {
				return svc.pushover.SendPush(ctx, title, body, "")
			},
		})
	}

	services, overall := svc.run(ctx, attempts)
	return models.PushOutcome{Success: overall, Services: services}
}

// run executes every attempt concurrently and joins on all of them.
func (svc *Service) run(ctx context.Context, attempts []attempt) (map[string]models.NotificationResult, bool) {
	var (
		mu       sync.Mutex
		services = make(map[string]models.NotificationResult, len(attempts))
		overall  bool
	)

	// Workers never return an error so one channel cannot cancel its siblings.
	var g errgroup.Group
	for _, a := range attempts {
		a := a
		g.Go(func() error {
			res := a.send(ctx)
			if res.Service == "" {
				res.Service = a.channel
			}
			metrics.ObserveNotification(a.channel, res.Success)

			mu.Lock()
			services[a.channel] = res
			overall = overall || res.Success
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return services, overall
}
