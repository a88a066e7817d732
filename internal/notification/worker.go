package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"fleet-maintenance-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool fans overdue-vehicle alerts out to push subscribers. Jobs are
// vehicle ids dispatched by the status refresh.
type WorkerPool struct {
	size    int
	jobs    chan string
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan string, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Alert worker %d started", id)
	for {
		select {
		case vehicleID := <-wp.jobs:
			log.Printf("Alert worker %d processing vehicle %s", id, vehicleID)
			wp.notifyVehicleSubscribers(ctx, vehicleID)
		case <-ctx.Done():
			log.Printf("Alert worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an alert job for a vehicle.
func (wp *WorkerPool) Dispatch(vehicleID string) {
	wp.jobs <- vehicleID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan string {
	return wp.jobs
}

// notifyVehicleSubscribers fetches the vehicle's subscriptions and pushes an
// overdue alert to each.
func (wp *WorkerPool) notifyVehicleSubscribers(ctx context.Context, vehicleID string) {
	var subscriptions []model.AlertSubscription
	err := wp.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for vehicle %s: %v", vehicleID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	var overdue int64
	err = wp.db.WithContext(ctx).Model(&model.MaintenanceItem{}).
		Where("vehicle_id = ? AND status = ?", vehicleID, model.StatusOverdue).
		Count(&overdue).Error
	if err != nil {
		log.Printf("Error counting overdue items for vehicle %s: %v", vehicleID, err)
		return
	}

	log.Printf("Sending %d alerts for vehicle %s", len(subscriptions), vehicleID)
	message := fmt.Sprintf("Vehicle %s has %d overdue maintenance item(s)", vehicleID, overdue)
	for _, sub := range subscriptions {
		wp.sendAlert(ctx, sub, []byte(message))
	}
}

func (wp *WorkerPool) sendAlert(ctx context.Context, sub model.AlertSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending alert to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// 410 Gone means the browser dropped the subscription.
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).
			Delete(&model.AlertSubscription{}, "endpoint = ?", sub.Endpoint).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
