// ABOUTME: In-memory account registry keyed by email address.
// ABOUTME: All access is serialized through a single mutex.

package store

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrAccountNotFound is returned when no account exists for an email.
var ErrAccountNotFound = errors.New("account not found")

// Account is a registered user record. Email is the registry key and is
// never mutated after creation. Password is stored exactly as supplied;
// this is a demo surface and performs no hashing.
type Account struct {
	Email     string
	Password  string
	Name      string
	CreatedAt time.Time
}

// Registry is the process-wide account store. It holds one Account per
// email and grows without bound for the lifetime of the process.
type Registry struct {
	mu       sync.Mutex
	accounts map[string]Account
}

// NewRegistry creates an empty account registry.
func NewRegistry() *Registry {
	return &Registry{
		accounts: make(map[string]Account),
	}
}

// Has reports whether an account exists for the given email.
func (r *Registry) Has(email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.accounts[email]
	return ok
}

// Get returns the account for the given email, or ErrAccountNotFound.
func (r *Registry) Get(email string) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, ok := r.accounts[email]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return acct, nil
}

// Put stores the account under its email, overwriting any existing record.
func (r *Registry) Put(acct Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[acct.Email] = acct
}

// PutIfAbsent stores the account only if no record exists for its email.
// The check and insert happen under one lock acquisition so concurrent
// signups for the same email cannot both succeed.
func (r *Registry) PutIfAbsent(acct Account) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[acct.Email]; ok {
		return false
	}
	r.accounts[acct.Email] = acct
	return true
}

// Len returns the number of registered accounts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// Emails returns all registered emails in sorted order.
func (r *Registry) Emails() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	emails := make([]string, 0, len(r.accounts))
	for email := range r.accounts {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}
