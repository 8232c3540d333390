package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names handled by the delivery worker.
const (
	TypeSendEmail = "notification:email"
	TypeSendSMS   = "notification:sms"
)

// EmailPayload carries one outbound booking notification email.
type EmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"firstName"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`

	// Booking context rendered into the email body.
	ServiceDate string `json:"serviceDate,omitempty"`
	ServiceTime string `json:"serviceTime,omitempty"`
	ServiceName string `json:"serviceName,omitempty"`
	Address     string `json:"address,omitempty"`
}

// SMSPayload carries one outbound booking notification SMS.
type SMSPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// NewEmailTask builds the asynq task for an email send.
func NewEmailTask(payload EmailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendEmail, b), nil
}

// NewSMSTask builds the asynq task for an SMS send.
func NewSMSTask(payload SMSPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendSMS, b), nil
}
