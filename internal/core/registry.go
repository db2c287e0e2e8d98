package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrDuplicateClient is returned when adding a client whose name already
	// exists in either the predefined or the custom set.
	ErrDuplicateClient = errors.New("client already exists")
	// ErrInvalidInput is returned for blank client names or addresses.
	ErrInvalidInput = errors.New("invalid input")
)

// Client is one registry entry. Custom marks operator-added clients, which
// are the only ones that can be removed.
type Client struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Custom  bool   `json:"custom"`
}

// registryFile is the on-disk shape: two name-to-address maps plus the
// monotonic invoice counter, persisted as a single JSON document.
type registryFile struct {
	Predefined        map[string]string `json:"predefined"`
	Custom            map[string]string `json:"custom"`
	NextInvoiceNumber int               `json:"next_invoice_number"`
}

func defaultRegistry() registryFile {
	return registryFile{
		Predefined: map[string]string{
			"Unilever Master - GCC":    "Dubai Internet City\nDubai, UAE",
			"AXE MALE DEODORANT 20":    "Jebel Ali Free Zone\nDubai, UAE",
			"Yazle Media":              "Dubai Media City\nDubai, UAE",
			"Emirates Marketing Group": "Sheikh Zayed Road\nDubai, UAE",
			"Dubai Media Corporation":  "Oud Metha Road\nDubai, UAE",
			"ABC Trading LLC":          "Al Quoz Industrial Area\nDubai, UAE",
			"XYZ Distribution Company": "Mussafah\nAbu Dhabi, UAE",
		},
		Custom:            map[string]string{},
		NextInvoiceNumber: 1,
	}
}

// Registry is the persistent client list and invoice counter. Every mutation
// is written back to disk before returning so a crash never loses an
// operator-added client or replays an invoice number.
type Registry struct {
	path string

	mu   sync.Mutex
	data registryFile
}

// NewRegistry loads the registry at path, seeding it with the default client
// set when the file does not exist yet.
func NewRegistry(path string) (*Registry, error) {
	r := &Registry{path: path}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) load() error {
	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		r.data = defaultRegistry()
		return writeRegistryFile(r.path, r.data)
	}
	if err != nil {
		return fmt.Errorf("read client registry %s: %w", r.path, err)
	}

	var data registryFile
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupt registry resets to the seed rather than blocking every
		// invoice; the broken file is still on disk until the next mutation.
		log.Printf("client registry %s unreadable, using defaults: %v", r.path, err)
		r.data = defaultRegistry()
		return nil
	}
	if data.Predefined == nil {
		data.Predefined = defaultRegistry().Predefined
	}
	if data.Custom == nil {
		data.Custom = map[string]string{}
	}
	if data.NextInvoiceNumber < 1 {
		data.NextInvoiceNumber = 1
	}
	r.data = data
	return nil
}

func writeRegistryFile(path string, data registryFile) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode client registry: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write client registry %s: %w", path, err)
	}
	return nil
}

func (r *Registry) save() error {
	return writeRegistryFile(r.path, r.data)
}

func sortedClients(m map[string]string, custom bool) []Client {
	clients := make([]Client, 0, len(m))
	for name, addr := range m {
		clients = append(clients, Client{Name: name, Address: addr, Custom: custom})
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Name < clients[j].Name })
	return clients
}

// All returns every client, predefined first, each group sorted by name.
func (r *Registry) All() []Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append(sortedClients(r.data.Predefined, false), sortedClients(r.data.Custom, true)...)
}

// Predefined returns the built-in clients sorted by name.
func (r *Registry) Predefined() []Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedClients(r.data.Predefined, false)
}

// Custom returns the operator-added clients sorted by name.
func (r *Registry) Custom() []Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedClients(r.data.Custom, true)
}

// AddCustom stores a new custom client and persists the registry. Names must
// be unique across both the predefined and custom sets.
func (r *Registry) AddCustom(name, address string) error {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" || address == "" {
		return fmt.Errorf("client name and address are required: %w", ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data.Predefined[name]; ok {
		return fmt.Errorf("client %q: %w", name, ErrDuplicateClient)
	}
	if _, ok := r.data.Custom[name]; ok {
		return fmt.Errorf("client %q: %w", name, ErrDuplicateClient)
	}

	r.data.Custom[name] = address
	return r.save()
}

// RemoveCustom deletes a custom client and reports whether it existed.
// Predefined clients cannot be removed.
func (r *Registry) RemoveCustom(name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data.Custom[name]; !ok {
		return false, nil
	}
	delete(r.data.Custom, name)
	if err := r.save(); err != nil {
		return false, err
	}
	return true, nil
}

// AddressOf looks up a client's address by exact name in either set.
func (r *Registry) AddressOf(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if addr, ok := r.data.Custom[name]; ok {
		return addr, true
	}
	addr, ok := r.data.Predefined[name]
	return addr, ok
}

// NextInvoiceNumber returns the current counter value zero-padded to three
// digits without consuming it. Repeated calls yield the same value until
// AdvanceInvoiceNumber is called.
func (r *Registry) NextInvoiceNumber() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("%03d", r.data.NextInvoiceNumber)
}

// AdvanceInvoiceNumber consumes the current counter value after a successful
// save and persists the increment.
func (r *Registry) AdvanceInvoiceNumber() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.NextInvoiceNumber++
	return r.save()
}
