// Package cron runs the background asynq worker that dispatches scheduled
// campaigns when their date arrives.
package cron

import (
	"context"
	"encoding/json"
	"time"

	"bossmaids/config"
	"bossmaids/models"
	"bossmaids/services/campaigns"
	"bossmaids/services/tasks"
	"bossmaids/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitCampaignWorker runs the async worker in background.
func InitCampaignWorker(campaignSvc campaigns.CampaignService) {
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
	mux.HandleFunc(tasks.TypeCampaignDispatch, handleCampaignDispatch(campaignSvc))

	go monitorRedisConnection()

	go func() {
		logger := utils.GetLogger()
		logger.Info("Starting campaign worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("Campaign worker failed to start",
					zap.Int("attempt", attempts), zap.Int("max", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("Campaign worker exhausted retry attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleCampaignDispatch(campaignSvc campaigns.CampaignService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.CampaignDispatchPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("Invalid campaign dispatch payload", zap.Error(err))
			return err
		}

		utils.GetLogger().Info("Dispatching scheduled campaign",
			zap.String("campaignID", p.CampaignID), zap.String("userID", p.UserID))

		if _, err := campaignSvc.SendCampaign(ctx, p.CampaignID); err != nil {
			utils.GetLogger().Error("Scheduled campaign dispatch failed",
				zap.String("campaignID", p.CampaignID), zap.Error(err))
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
			utils.GetLogger().Warn("Queue Redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
