// Package cache guarda el catálogo de productos en Redis. El catálogo
// es de lectura intensiva y cambia poco; cada miss cae a Postgres.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const TTLCatalogo = 5 * time.Minute

var client *redis.Client

// Init conecta a Redis si hay dirección configurada. Sin Redis el
// sistema funciona igual, solo que cada lectura va a la base.
func Init(addr string) {
	if addr == "" {
		return
	}

	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] No se pudo conectar a Redis (%s), catálogo sin caché: %v", addr, err)
		return
	}

	client = c
	log.Println("Conexión a Redis exitosa.")
}

// Get devuelve el valor cacheado o "" si no hay caché o no existe la clave.
func Get(ctx context.Context, key string) string {
	if client == nil {
		return ""
	}
	val, err := client.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

// Set guarda un valor con el TTL del catálogo. Los errores se ignoran:
// la caché nunca puede voltear una respuesta.
func Set(ctx context.Context, key, val string) {
	if client == nil {
		return
	}
	_ = client.Set(ctx, key, val, TTLCatalogo).Err()
}

// Invalidate borra claves después de una mutación del catálogo.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	_ = client.Del(ctx, keys...).Err()
}
