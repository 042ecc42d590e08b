package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func counter(yield func(int, string) bool) {
	for n := 0; ; n++ {
		if !yield(n, "x") {
			return
		}
	}
}

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1}
	b := map[string]int{"b": 2, "c": 3}

	all := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, all)

	// Early stop from the consumer.
	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestIterSeq2Limit(t *testing.T) {
	assert := assert.New(t)

	var keys []int
	for key := range IterSeq2Limit(counter, 4) {
		keys = append(keys, key)
	}
	assert.Equal([]int{0, 1, 2, 3}, keys)

	keys = nil
	for key := range IterSeq2Limit(counter, 0) {
		keys = append(keys, key)
	}
	assert.Nil(keys)

	short := maps.Collect(IterSeq2Limit(maps.All(map[int]string{1: "one"}), 10))
	assert.Equal(map[int]string{1: "one"}, short)
}
