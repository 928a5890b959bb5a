package pkg

import (
	"github.com/go-redis/redis/v8"
	"golang.org/x/net/context"
)

var (
	Rdb *redis.Client
	Ctx = context.Background()
)

// InitRedis conecta no Redis do endereço dado. Endereço vazio desliga o
// cache: o cliente volta nil e quem consome decide o fallback.
func InitRedis(redisAddr string) *redis.Client {
	if redisAddr == "" {
		return nil
	}

	Rdb = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	_, err := Rdb.Ping(Ctx).Result()
	if err != nil {
		panic("Não foi possível conectar ao Redis: " + err.Error())
	}
	return Rdb
}
