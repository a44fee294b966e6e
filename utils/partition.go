package utils

// PartitionMap splits a global extent of MaxIndex cells into ParallelDegree
// contiguous buckets of near-equal size, with any remainder spread over the
// first buckets. It is used to lay out rank column-ranges over the global x
// extent.
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int
}

func NewPartitionMap(parallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: parallelDegree,
		Partitions:     make([][2]int, parallelDegree),
	}
	for n := 0; n < parallelDegree; n++ {
		pm.Partitions[n] = pm.split(n)
	}
	return
}

func (pm *PartitionMap) split(bucket int) (r [2]int) {
	var (
		size      = pm.MaxIndex / pm.ParallelDegree
		remainder = pm.MaxIndex % pm.ParallelDegree
		startAdd, endAdd int
	)
	if remainder != 0 {
		if bucket+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = bucket
			endAdd = 1
		}
	}
	r[0] = bucket*size + startAdd
	r[1] = r[0] + size + endAdd
	return
}

func (pm *PartitionMap) GetBucketRange(bucket int) (min, max int) {
	return pm.Partitions[bucket][0], pm.Partitions[bucket][1]
}

func (pm *PartitionMap) GetBucketDimension(bucket int) int {
	min, max := pm.GetBucketRange(bucket)
	return max - min
}
