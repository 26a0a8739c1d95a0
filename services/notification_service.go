package services

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/itsAdil45/HajveryStoreBackend/config"
	"github.com/itsAdil45/HajveryStoreBackend/models"
)

// Notifier sends a push notification to one device token. Failures are the
// caller's to swallow; delivery is best-effort by contract.
type Notifier interface {
	Send(ctx context.Context, token, title, body string) error
}

type FirebaseNotifier struct {
	client *messaging.Client
}

var notifier Notifier

func InitNotifier(ctx context.Context) error {
	credentialsPath := os.Getenv("FIREBASE_CREDENTIALS_FILE")
	if credentialsPath == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_FILE not set in environment")
	}

	fn, err := NewFirebaseNotifier(ctx, credentialsPath)
	if err != nil {
		return err
	}
	notifier = fn
	return nil
}

func GetNotifier() Notifier {
	return notifier
}

func NewFirebaseNotifier(ctx context.Context, credentialsPath string) (*FirebaseNotifier, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &FirebaseNotifier{client: client}, nil
}

// Send pushes a notification to a single device token
func (s *FirebaseNotifier) Send(ctx context.Context, token, title, body string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}

	_, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

// NotifyAdmins pushes a notification to every admin that has registered an
// FCM token. Send failures are logged and swallowed - a lost push must never
// fail the operation that triggered it.
func NotifyAdmins(ctx context.Context, n Notifier, title, body string) {
	if n == nil {
		return
	}

	var admins []models.User
	if err := config.StoreGorm.WithContext(ctx).
		Select("id, fcm_token").
		Where("role = ? AND fcm_token IS NOT NULL", models.RoleAdmin).
		Find(&admins).Error; err != nil {
		log.Printf("❌ Failed to fetch admin FCM tokens: %v", err)
		return
	}

	for _, admin := range admins {
		if admin.FCMToken == nil || *admin.FCMToken == "" {
			continue
		}
		if err := n.Send(ctx, *admin.FCMToken, title, body); err != nil {
			log.Printf("❌ Error sending FCM notification to admin %s: %v", admin.ID, err)
		} else {
			log.Printf("✅ Notification sent to admin %s", admin.ID)
		}
	}
}

// NotifyUser pushes a notification to one user's device, if registered.
// Best-effort: failures are logged, never returned.
func NotifyUser(ctx context.Context, n Notifier, userID string, title, body string) {
	if n == nil {
		return
	}

	var user models.User
	if err := config.StoreGorm.WithContext(ctx).
		Select("id, fcm_token").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		log.Printf("❌ Failed to fetch user for notification: %v", err)
		return
	}

	if user.FCMToken == nil || *user.FCMToken == "" {
		return
	}

	if err := n.Send(ctx, *user.FCMToken, title, body); err != nil {
		log.Printf("❌ Error sending FCM notification: %v", err)
	} else {
		log.Printf("✅ Notification sent to user %s", user.ID)
	}
}
