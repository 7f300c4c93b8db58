package services

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"main/model"
	"main/utils"

	"github.com/SherClockHolmes/webpush-go"
)

// PushPayload is the notification body the service worker renders.
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
	Badge string `json:"badge"`
	URL   string `json:"url"`
}

// PushSender delivers web-push messages signed with the configured VAPID keys.
type PushSender struct {
	VapidPublicKey  string
	VapidPrivateKey string
	Subject         string
}

func NewPushSender(publicKey, privateKey, subject string) *PushSender {
	if subject == "" {
		subject = "mailto:admin@example.com"
	}
	return &PushSender{
		VapidPublicKey:  publicKey,
		VapidPrivateKey: privateKey,
		Subject:         subject,
	}
}

// Configured reports whether VAPID keys are present.
func (p *PushSender) Configured() bool {
	return p.VapidPublicKey != "" && p.VapidPrivateKey != ""
}

func (p *PushSender) Send(sub *model.PushSubscription, payload PushPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := webpush.SendNotification(body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.Keys.P256dh,
			Auth:   sub.Keys.Auth,
		},
	}, &webpush.Options{
		Subscriber:      p.Subject,
		VAPIDPublicKey:  p.VapidPublicKey,
		VAPIDPrivateKey: p.VapidPrivateKey,
		TTL:             60,
	})
	if err != nil {
		utils.TrackPushDelivery("failed")
		return err
	}
	defer resp.Body.Close()
	utils.TrackPushDelivery("sent")
	return nil
}

// SubscriptionSource lists the stored push subscriptions.
type SubscriptionSource interface {
	ListSubscriptions(ctx context.Context) ([]*model.PushSubscription, error)
}

// PushNotifier fans a fired reminder out to every stored subscription.
type PushNotifier struct {
	Sender        *PushSender
	Subscriptions SubscriptionSource
}

func (n *PushNotifier) Notify(task *model.Task, body string) {
	if !n.Sender.Configured() {
		log.Printf("reminder due for task %d but push is not configured", task.ID)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	subs, err := n.Subscriptions.ListSubscriptions(ctx)
	if err != nil {
		log.Printf("push: listing subscriptions: %v", err)
		return
	}
	payload := PushPayload{
		Title: "Nhắc nhở công việc!",
		Body:  body,
		Icon:  "/images/android-chrome-192x192.png",
		Badge: "/images/android-chrome-192x192.png",
		URL:   "/dashboard",
	}
	for _, sub := range subs {
		if err := n.Sender.Send(sub, payload); err != nil {
			log.Printf("push: send to %s: %v", sub.Endpoint, err)
		}
	}
}

// pushHorizon caps how far ahead client-requested push jobs are armed.
const pushHorizon = 7 * 24 * time.Hour

// PushScheduler arms one-shot push deliveries for a specific subscription, the
// way the old serverless scheduler did: a new schedule request for the same
// endpoint replaces everything previously armed for it. Timers are in-memory
// only; there is no durability or retry.
type PushScheduler struct {
	mu     sync.Mutex
	jobs   map[string][]*time.Timer
	sender *PushSender
}

func NewPushScheduler(sender *PushSender) *PushScheduler {
	return &PushScheduler{
		jobs:   make(map[string][]*time.Timer),
		sender: sender,
	}
}

// Schedule replaces the armed jobs for the subscription's endpoint and arms a
// due-time delivery per task, plus an early delivery for tasks carrying a
// positive reminder offset. Returns how many deliveries were armed.
func (ps *PushScheduler) Schedule(sub *model.PushSubscription, tasks []*model.Task, settings *model.Settings) int {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for _, t := range ps.jobs[sub.Endpoint] {
		t.Stop()
	}
	ps.jobs[sub.Endpoint] = nil

	now := time.Now()
	for _, task := range tasks {
		due, ok := task.DueTime()
		if !ok || task.Completed {
			continue
		}

		at := DeferForQuietHours(due, settings)
		if d := at.Sub(now); d > 0 && d < pushHorizon {
			ps.arm(sub, d, PushPayload{
				Title: "Nhắc nhở công việc!",
				Body:  `Đã đến hạn: "` + task.Text + `"`,
				Icon:  "/images/android-chrome-192x192.png",
				Badge: "/images/android-chrome-192x192.png",
				URL:   "/dashboard",
			})
		}

		if task.ReminderMinutes == nil || *task.ReminderMinutes <= 0 {
			continue
		}
		early, _ := NotifyAt(task, settings)
		if d := early.Sub(now); d > 0 && d < pushHorizon {
			minutes := *task.ReminderMinutes
			ps.arm(sub, d, PushPayload{
				Title: "Sắp đến hạn",
				Body:  `Còn ` + strconv.Itoa(minutes) + ` phút: "` + task.Text + `"`,
				Icon:  "/images/android-chrome-192x192.png",
				Badge: "/images/android-chrome-192x192.png",
				URL:   "/dashboard",
			})
		}
	}
	return len(ps.jobs[sub.Endpoint])
}

func (ps *PushScheduler) arm(sub *model.PushSubscription, d time.Duration, payload PushPayload) {
	subCopy := *sub
	timer := time.AfterFunc(d, func() {
		if err := ps.sender.Send(&subCopy, payload); err != nil {
			log.Printf("push: scheduled send: %v", err)
		}
	})
	ps.jobs[sub.Endpoint] = append(ps.jobs[sub.Endpoint], timer)
}
