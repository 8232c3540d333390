package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"servicehub/config"
	"servicehub/services/notification"
	"servicehub/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// NewTaskClient returns an asynq client bound to the queue database.
// Services enqueue email and SMS delivery tasks through it.
func NewTaskClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

// InitDeliveryWorker runs the async delivery worker in background. It drains
// queued notification tasks and hands them to the configured senders.
func InitDeliveryWorker(email notification.EmailSender, sms notification.SMSSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendEmail, handleEmailTask(email))
	mux.HandleFunc(tasks.TypeSendSMS, handleSMSTask(sms))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[DeliveryWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DeliveryWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[DeliveryWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleEmailTask(sender notification.EmailSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[DeliveryWorker] 🔴 Invalid email payload: %v", err)
			return err
		}

		sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		details := notification.BookingDetails{
			ServiceDate: p.ServiceDate,
			ServiceTime: p.ServiceTime,
			ServiceName: p.ServiceName,
			Address:     p.Address,
		}
		if err := sender.SendBookingNotificationEmail(sendCtx, p.To, p.FirstName, p.Subject, p.Body, details); err != nil {
			log.Printf("[DeliveryWorker] ❌ Failed to send email to %s: %v", p.To, err)
			return err
		}
		return nil
	}
}

func handleSMSTask(sender notification.SMSSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.SMSPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[DeliveryWorker] 🔴 Invalid SMS payload: %v", err)
			return err
		}

		sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := sender.SendBookingNotification(sendCtx, p.To, p.Message); err != nil {
			log.Printf("[DeliveryWorker] ❌ Failed to send SMS to %s: %v", p.To, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[DeliveryWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
