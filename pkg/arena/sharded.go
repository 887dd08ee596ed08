package arena

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrHibernateShards is returned when one or more shards fail during a
// parallel Serialize across a ShardedAllocator.
var ErrHibernateShards = errors.New("arena: failed to serialize shards")

// ErrBootShards is returned when one or more shards fail during a parallel
// Deserialize across a ShardedAllocator.
var ErrBootShards = errors.New("arena: failed to deserialize shards")

// minHibernationThreshold is the floor used when a caller-requested
// threshold divides down to zero across shards.
const minHibernationThreshold = 1000

// ShardedAllocator fans a key space out across N independent Allocators,
// so callers holding many trees can reduce hibernation and lock contention
// by partitioning ahead of the tree layer rather than sharing one Allocator.
type ShardedAllocator struct {
	shards []*Allocator
}

// NewShardedAllocator creates a ShardedAllocator with shardCount shards. The
// requested hibernationThreshold is spread across shards as evenly as
// integer division allows: the remainder is handed to the first shards one
// at a time rather than floored away, so no single shard is shorted more
// than one unit relative to its neighbors.
func NewShardedAllocator(shardCount, hibernationThreshold int) *ShardedAllocator {
	if shardCount <= 0 {
		shardCount = 1
	}

	shards := make([]*Allocator, shardCount)

	base, remainder := 0, 0
	if hibernationThreshold > 0 {
		base, remainder = hibernationThreshold/shardCount, hibernationThreshold%shardCount
	}

	for idx := range shards {
		shards[idx] = NewAllocator()

		if hibernationThreshold <= 0 {
			continue
		}

		threshold := base
		if idx < remainder {
			threshold++
		}

		if threshold == 0 {
			threshold = minHibernationThreshold
		}

		shards[idx].HibernationThreshold = threshold
	}

	return &ShardedAllocator{shards: shards}
}

// Shard returns the allocator owning key, chosen by FNV-1a hash.
func (sa *ShardedAllocator) Shard(key string) *Allocator {
	hasher := fnv.New32a()
	hasher.Write([]byte(key)) //nolint:errcheck // fnv.Write never errors.

	return sa.shards[hasher.Sum32()%uint32(len(sa.shards))]
}

// Shards returns every underlying allocator.
func (sa *ShardedAllocator) Shards() []*Allocator { return sa.shards }

// Hibernate hibernates every shard concurrently, forcing hibernation below
// threshold so a caller can shrink the whole allocator set on demand.
func (sa *ShardedAllocator) Hibernate() {
	var wg sync.WaitGroup

	wg.Add(len(sa.shards))

	for _, shard := range sa.shards {
		go func(a *Allocator) {
			defer wg.Done()

			threshold := a.HibernationThreshold
			a.HibernationThreshold = 0
			a.Hibernate()
			a.HibernationThreshold = threshold
		}(shard)
	}

	wg.Wait()
}

// Boot boots every shard concurrently.
func (sa *ShardedAllocator) Boot() {
	var wg sync.WaitGroup

	wg.Add(len(sa.shards))

	for _, shard := range sa.shards {
		go func(a *Allocator) {
			defer wg.Done()

			a.Boot()
		}(shard)
	}

	wg.Wait()
}

// shardPath names the on-disk file for one shard of basePath.
func shardPath(basePath string, idx int) string {
	return fmt.Sprintf("%s.shard.%03d", basePath, idx)
}

// Serialize writes every hibernated shard to disk concurrently. Resident
// shards (not yet hibernated) are skipped. Serialize waits for every shard
// to finish and, if any failed, reports the first error encountered.
func (sa *ShardedAllocator) Serialize(basePath string) error {
	var eg errgroup.Group

	for idx, shard := range sa.shards {
		shardIdx, a := idx, shard

		eg.Go(func() error {
			if a.storage != nil {
				return nil
			}

			return a.Serialize(shardPath(basePath, shardIdx))
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrHibernateShards, err)
	}

	return nil
}

// Deserialize reads every shard from disk concurrently. It waits for every
// shard to finish and, if any failed, reports the first error encountered.
func (sa *ShardedAllocator) Deserialize(basePath string) error {
	var eg errgroup.Group

	for idx, shard := range sa.shards {
		shardIdx, a := idx, shard

		eg.Go(func() error {
			return a.Deserialize(shardPath(basePath, shardIdx))
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrBootShards, err)
	}

	return nil
}
