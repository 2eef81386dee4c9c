package realtime

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedis creates a new Redis client
func NewRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	logrus.WithField("addr", addr).Info("redis client dibuat")
	return rdb
}

// PublishToUser mengirim payload notifikasi ke channel per-user di redis,
// supaya instance lain (atau consumer eksternal) ikut menerima event.
func PublishToUser(ctx context.Context, rdb *redis.Client, userID uint, payload []byte) {
	if rdb == nil {
		return
	}
	channel := fmt.Sprintf("notifications:%d", userID)
	if err := rdb.Publish(ctx, channel, payload).Err(); err != nil {
		logrus.WithError(err).WithField("channel", channel).Warn("gagal publish notifikasi")
	}
}
