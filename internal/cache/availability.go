package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache de leitura da disponibilidade do dia. Apenas o caminho de
// leitura usa o cache; a decisão de booking sempre reconsulta o banco
// dentro do lock. Staleness curto é aceitável aqui.
type Availability struct {
	rdb *redis.Client
	log *zap.SugaredLogger
	ttl time.Duration
}

func NewAvailability(rdb *redis.Client, log *zap.SugaredLogger) *Availability {
	return &Availability{
		rdb: rdb,
		log: log,
		ttl: 60 * time.Second,
	}
}

func key(barbershopID uint, date string) string {
	return fmt.Sprintf("availability:%d:%s", barbershopID, date)
}

// Get retorna false em miss ou erro; erro de cache nunca quebra a leitura
func (a *Availability) Get(ctx context.Context, barbershopID uint, date string, out any) bool {
	if a == nil || a.rdb == nil {
		return false
	}

	raw, err := a.rdb.Get(ctx, key(barbershopID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			a.log.Warnw("availability cache get failed", "err", err)
		}
		return false
	}

	return json.Unmarshal(raw, out) == nil
}

func (a *Availability) Set(ctx context.Context, barbershopID uint, date string, value any) {
	if a == nil || a.rdb == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := a.rdb.Set(ctx, key(barbershopID, date), raw, a.ttl).Err(); err != nil {
		a.log.Warnw("availability cache set failed", "err", err)
	}
}

// InvalidateDay é best effort, chamado após qualquer escrita que muda
// a agenda de um dia
func (a *Availability) InvalidateDay(ctx context.Context, barbershopID uint, date string) {
	if a == nil || a.rdb == nil {
		return
	}
	if err := a.rdb.Del(ctx, key(barbershopID, date)).Err(); err != nil {
		a.log.Warnw("availability cache invalidate failed", "err", err)
	}
}
