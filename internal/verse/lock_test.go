package verse

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocksSerializeSameKey(t *testing.T) {
	l := NewLocks()
	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("kjv|JHN.3|16")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, l.size())
}

func TestLockAllReleasesEverything(t *testing.T) {
	l := NewLocks()

	unlock := l.LockAll([]string{"b", "a", "b"})
	assert.Equal(t, 2, l.size())
	unlock()

	assert.Equal(t, 0, l.size())
}

func TestSet(t *testing.T) {
	s := NewSet("3", "1")
	s.Add("2")
	s.Remove("3")

	assert.True(t, s.Has("1"))
	assert.False(t, s.Has("3"))
	assert.True(t, s.Any([]string{"9", "2"}))
	assert.False(t, s.Any([]string{"9"}))
	assert.Equal(t, []string{"1", "2"}, s.Sorted())
}
