// Package redis provides Redis-backed storage for collections.
//
// Every collection is one string key holding the JSON document:
//
//	<prefix>collection:<name>
//
// The default prefix is "kernelplay:". A TTL can be set so that scratch data
// expires on its own.
//
// # Basic Usage
//
//	s := redis.NewRedisCollectionStore(redis.RedisOptions{
//		Addr:   "localhost:6379",
//		Prefix: "playground:",
//		TTL:    24 * time.Hour,
//	})
//	defer s.Close()
//
//	tasks, err := s.Load(ctx, "todolist/todo")
//	if errors.Is(err, store.ErrNotFound) {
//		// key does not exist
//	}
//
// Tests run against github.com/alicebob/miniredis/v2.
package redis
