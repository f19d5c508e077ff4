// ABOUTME: Tests for the in-memory account registry.
// ABOUTME: Covers upsert semantics, lookup errors, and concurrent access.

package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAccount(email string) Account {
	return Account{
		Email:     email,
		Password:  "hunter22",
		Name:      "tester",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestRegistry_PutAndGet(t *testing.T) {
	reg := NewRegistry()
	acct := testAccount("a@example.com")
	reg.Put(acct)

	got, err := reg.Get("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, acct, got)
	assert.True(t, reg.Has("a@example.com"))
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_GetMissing(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("nobody@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccountNotFound))
	assert.False(t, reg.Has("nobody@example.com"))
}

func TestRegistry_PutOverwrites(t *testing.T) {
	reg := NewRegistry()
	reg.Put(testAccount("a@example.com"))

	replacement := testAccount("a@example.com")
	replacement.Password = "different"
	replacement.Name = "replaced"
	reg.Put(replacement)

	got, err := reg.Get("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "different", got.Password)
	assert.Equal(t, "replaced", got.Name)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_PutIfAbsent(t *testing.T) {
	reg := NewRegistry()

	ok := reg.PutIfAbsent(testAccount("a@example.com"))
	assert.True(t, ok)

	dupe := testAccount("a@example.com")
	dupe.Name = "usurper"
	ok = reg.PutIfAbsent(dupe)
	assert.False(t, ok)

	got, err := reg.Get("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "tester", got.Name)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_EmailsSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Put(testAccount("c@example.com"))
	reg.Put(testAccount("a@example.com"))
	reg.Put(testAccount("b@example.com"))

	assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, reg.Emails())
}

func TestRegistry_EmailsEmpty(t *testing.T) {
	reg := NewRegistry()
	assert.Empty(t, reg.Emails())
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_ConcurrentPut(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			email := fmt.Sprintf("user%d@example.com", n)
			reg.Put(testAccount(email))
			reg.Has(email)
			reg.Len()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, reg.Len())
	assert.Len(t, reg.Emails(), 50)
}
