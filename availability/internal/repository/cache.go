package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Astemirdum/rental-service/availability/internal/domain"
	"github.com/Astemirdum/rental-service/availability/internal/model"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const equipmentKeyPrefix = "availability:equipment:"

// cachedRepository serves equipment rows from redis. Bookings are always
// read from postgres. Cache failures are logged and fall through.
type cachedRepository struct {
	Repository
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewCachedRepository(repo Repository, rdb *redis.Client, ttl time.Duration, log *zap.Logger) Repository {
	return &cachedRepository{
		Repository: repo,
		rdb:        rdb,
		ttl:        ttl,
		log:        log.Named("cache"),
	}
}

func equipmentKey(id string) string {
	return equipmentKeyPrefix + id
}

func (r *cachedRepository) GetEquipment(ctx context.Context, id string) (model.Equipment, error) {
	data, err := r.rdb.Get(ctx, equipmentKey(id)).Bytes()
	switch {
	case err == nil:
		var eq model.Equipment
		if err := json.Unmarshal(data, &eq); err == nil {
			return eq, nil
		}
		r.log.Warn("drop corrupt cache entry", zap.String("id", id))
	case !errors.Is(err, redis.Nil):
		r.log.Warn("cache get", zap.String("id", id), zap.Error(err))
	}

	eq, err := r.Repository.GetEquipment(ctx, id)
	if err != nil {
		return model.Equipment{}, err
	}
	if data, err := json.Marshal(eq); err == nil {
		if err := r.rdb.Set(ctx, equipmentKey(id), data, r.ttl).Err(); err != nil {
			r.log.Warn("cache set", zap.String("id", id), zap.Error(err))
		}
	}
	return eq, nil
}

func (r *cachedRepository) UpdateEquipmentStatus(ctx context.Context, id string, status domain.EquipmentStatus) error {
	if err := r.Repository.UpdateEquipmentStatus(ctx, id, status); err != nil {
		return err
	}
	if err := r.rdb.Del(ctx, equipmentKey(id)).Err(); err != nil {
		r.log.Warn("cache invalidate", zap.String("id", id), zap.Error(err))
	}
	return nil
}
