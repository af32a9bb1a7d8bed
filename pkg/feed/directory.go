package feed

import (
	"context"
	"math/rand"
	"net/http"
	"strings"
	"time"

	loja "github.com/lucasSanto5s/LojaOnline"
)

// DefaultDirectoryURL is the public contact directory source.
const DefaultDirectoryURL = "https://jsonplaceholder.typicode.com/users"

// maxBackdate bounds how far in the past a synthesized creation date may
// land.
const maxBackdate = 5 * 365 * 24 * time.Hour

// directoryPerson is the wire shape of one directory entry.
type directoryPerson struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address struct {
		Street string `json:"street"`
		Suite  string `json:"suite"`
		City   string `json:"city"`
	} `json:"address"`
}

// DirectoryFeed fetches contact records and maps them onto loja.Client.
// The source carries neither status nor creation date, so both are
// synthesized: roughly four in five records come back activated, and
// creation dates are back-dated up to five years.
type DirectoryFeed struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration

	// Rand drives the synthesized fields; nil uses the shared source.
	Rand *rand.Rand
	// Now anchors the back-dating; nil uses time.Now.
	Now func() time.Time
}

// NewDirectoryFeed builds a feed against url, or the public default when
// url is empty.
func NewDirectoryFeed(url string) *DirectoryFeed {
	if url == "" {
		url = DefaultDirectoryURL
	}
	return &DirectoryFeed{URL: url, Timeout: DefaultTimeout}
}

// Fetch returns the mapped directory.
func (f *DirectoryFeed) Fetch(ctx context.Context) ([]loja.Client, error) {
	var people []directoryPerson
	if err := getJSON(ctx, f.Client, f.Timeout, f.URL, &people); err != nil {
		return nil, wrapErr("directory", err)
	}

	clients := make([]loja.Client, 0, len(people))
	for _, p := range people {
		clients = append(clients, f.mapPerson(p))
	}
	return clients, nil
}

func (f *DirectoryFeed) mapPerson(p directoryPerson) loja.Client {
	first, last := splitName(p.Name)

	status := loja.StatusDeactivated
	if f.random() > 0.2 {
		status = loja.StatusActivated
	}

	return loja.Client{
		ID:        p.ID,
		FirstName: first,
		LastName:  last,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   joinAddress(p.Address.Street, p.Address.Suite, p.Address.City),
		Status:    status,
		CreatedAt: f.pastDate().Format(time.RFC3339),
	}
}

func (f *DirectoryFeed) random() float64 {
	if f.Rand != nil {
		return f.Rand.Float64()
	}
	return rand.Float64()
}

func (f *DirectoryFeed) pastDate() time.Time {
	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}
	offset := time.Duration(f.random() * float64(maxBackdate))
	return now.Add(-offset)
}

// splitName takes the first whitespace-separated token as the first name
// and the remainder as the last name.
func splitName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func joinAddress(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
