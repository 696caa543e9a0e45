package model

import "hash/fnv"

const (
	hashOffset uint64 = 14695981039346656037
	hashPrime  uint64 = 1099511628211
)

// mix folds x into the running hash h.
func mix(h, x uint64) uint64 {
	return (h ^ x) * hashPrime
}

func mixString(h uint64, s string) uint64 {
	f := fnv.New64a()
	_, _ = f.Write([]byte(s))
	return mix(h, f.Sum64())
}

func mixBool(h uint64, b bool) uint64 {
	if b {
		return mix(h, 1)
	}
	return mix(h, 0)
}
