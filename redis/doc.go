// Package redis wraps go-redis with the service's logging, config and
// component lifecycle.
//
// TypedStore stores JSON values under a key prefix and backs the user
// lookup cache:
//
//	store := redis.NewTypedStore[user.Record](client, "authgate:user")
//	rec, err := store.Load(ctx, "alice") // (nil, nil) on miss
package redis
