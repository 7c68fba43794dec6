package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/ponder/ponder-api/internal/database"
	"github.com/ponder/ponder-api/internal/models"
	"google.golang.org/api/option"
)

// PushService delivers stored notifications to the user's device via
// Firebase Cloud Messaging
type PushService struct {
	client *messaging.Client
}

// Global push service instance
var Push *PushService

// InitPush initializes the Firebase push notification service.
// Returns nil gracefully if no service account is configured (dev mode).
func InitPush(serviceAccountPath string) error {
	if serviceAccountPath == "" {
		log.Println("FCM: No service account configured, push notifications disabled")
		Push = &PushService{client: nil}
		return nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		log.Printf("FCM: Failed to initialize Firebase app: %v", err)
		Push = &PushService{client: nil}
		return nil
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("FCM: Failed to get messaging client: %v", err)
		Push = &PushService{client: nil}
		return nil
	}

	Push = &PushService{client: client}
	log.Println("FCM: Push notifications enabled")
	return nil
}

// SendNotification delivers a persisted notification to its user's device.
// The notification's type and metadata become the FCM data payload so the
// client can navigate straight to the decision. No-op if push is not
// configured or the user has no FCM token.
func (p *PushService) SendNotification(n *models.Notification) {
	if p.client == nil || n == nil {
		return
	}

	var user models.User
	if err := database.DB.Select("fcm_token").First(&user, n.UserID).Error; err != nil {
		return
	}
	if user.FCMToken == "" {
		return
	}

	data := map[string]string{"type": n.Type}
	if n.Metadata != nil {
		var meta map[string]interface{}
		if err := json.Unmarshal([]byte(*n.Metadata), &meta); err == nil {
			for k, v := range meta {
				data[k] = fmt.Sprintf("%v", v)
			}
		}
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: data,
	}

	if _, err := p.client.Send(context.Background(), msg); err != nil {
		log.Printf("FCM: Failed to send to user %s: %v", n.UserID, err)
	}
}
