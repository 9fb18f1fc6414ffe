package models

// EmailDeliveryPayload is the queue payload for the email worker. It carries
// everything needed to render and send the message so the worker does not
// have to re-read the notification row.
type EmailDeliveryPayload struct {
	NotificationID string           `json:"notificationId"`
	UserID         string           `json:"userId"`
	Email          string           `json:"email"`
	Name           string           `json:"name"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Body           string           `json:"body"`
	Link           string           `json:"link,omitempty"`
}
